package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the donation API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Donation Inventory API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "Donation Inventory API", "description": "A REST API for managing donation inventory", "version": "1.0.0" },
  "components": {
    "schemas": {
      "DonationCreate": {
        "type": "object",
        "required": ["donor_name", "donation_type", "amount", "date"],
        "properties": {
          "donor_name": {"type": "string"},
          "donation_type": {"type": "string"},
          "amount": {"type": "number", "exclusiveMinimum": true, "minimum": 0},
          "date": {"type": "string", "format": "date"}
        }
      },
      "DonationUpdate": {
        "type": "object",
        "properties": {
          "donor_name": {"type": "string"},
          "donation_type": {"type": "string"},
          "amount": {"type": "number", "exclusiveMinimum": true, "minimum": 0},
          "date": {"type": "string", "format": "date"}
        }
      },
      "DonationResponse": {
        "type": "object",
        "properties": {
          "id": {"type": "integer"},
          "donor_name": {"type": "string"},
          "donation_type": {"type": "string"},
          "amount": {"type": "number"},
          "date": {"type": "string", "format": "date"}
        }
      }
    }
  },
  "paths": {
    "/": { "get": { "summary": "Root endpoint", "responses": { "200": { "description": "service metadata" } } } },
    "/donations": {
      "get": { "summary": "Get all donations", "responses": { "200": { "description": "donation list", "content": { "application/json": { "schema": {"type": "array", "items": {"$ref": "#/components/schemas/DonationResponse"}}}}}}},
      "post": { "summary": "Create new donation", "requestBody": { "content": { "application/json": { "schema": {"$ref": "#/components/schemas/DonationCreate"}}}}, "responses": { "201": { "description": "created" }, "422": { "description": "validation error" } } }
    },
    "/donations/{id}": {
      "get": { "summary": "Get donation by ID", "responses": { "200": { "description": "donation" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update existing donation", "requestBody": { "content": { "application/json": { "schema": {"$ref": "#/components/schemas/DonationUpdate"}}}}, "responses": { "200": { "description": "updated" }, "404": { "description": "not found" }, "422": { "description": "validation error" } } },
      "delete": { "summary": "Delete donation", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/donations/stats/summary": { "get": { "summary": "Get donation statistics", "responses": { "200": { "description": "summary" } } } },
    "/donations/snapshots": { "post": { "summary": "Export a snapshot to object storage", "responses": { "201": { "description": "snapshot written" }, "503": { "description": "object storage not configured" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
