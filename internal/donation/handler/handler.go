package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/donation-inventory/api/internal/donation"
	"github.com/donation-inventory/api/internal/donation/service"
	"github.com/donation-inventory/api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Snapshotter persists a point-in-time export of the donation set and
// returns where it can be fetched from.
type Snapshotter interface {
	Save(ctx context.Context, list []*donation.Donation, summary donation.Summary) (key string, url string, err error)
}

// Handler serves the donation endpoints.
type Handler struct {
	svc       *service.Service
	snapshots Snapshotter
}

// New builds a Handler. snapshots may be nil, in which case the snapshot
// endpoint answers 503.
func New(svc *service.Service, snapshots Snapshotter) *Handler {
	useJSONFieldNames()
	return &Handler{svc: svc, snapshots: snapshots}
}

// RegisterDonationRoutes wires the donation API into r.
func RegisterDonationRoutes(r gin.IRouter, svc *service.Service, snapshots Snapshotter) {
	New(svc, snapshots).Register(r)
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/donations", h.List)
	r.POST("/donations", h.Create)
	r.GET("/donations/stats/summary", h.Stats)
	r.POST("/donations/snapshots", h.Snapshot)
	r.GET("/donations/:id", h.Get)
	r.PUT("/donations/:id", h.Update)
	r.DELETE("/donations/:id", h.Delete)
}

// Root returns service metadata and the endpoint listing.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Donation Inventory API",
		"version": Version,
		"endpoints": gin.H{
			"GET /donations":               "List all donations",
			"GET /donations/{id}":          "Get a single donation by ID",
			"POST /donations":              "Create a new donation",
			"PUT /donations/{id}":          "Update an existing donation",
			"DELETE /donations/{id}":       "Delete a donation",
			"GET /donations/stats/summary": "Get donation statistics",
			"POST /donations/snapshots":    "Export a snapshot to object storage",
		},
	})
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeInternal(c, "list donations", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(list))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get donation", id, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(d))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, bindErrors(err))
		return
	}
	d, err := req.toDonation()
	if err != nil {
		writeValidation(c, []FieldError{{Type: "date_from_datetime_parsing", Loc: []string{"body", "date"}, Msg: err.Error()}})
		return
	}
	if err := h.svc.Create(c.Request.Context(), d); err != nil {
		writeInternal(c, "create donation", err)
		return
	}
	metrics.DonationMutations.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, toResponse(d))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidation(c, bindErrors(err))
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		writeValidation(c, []FieldError{{Type: "date_from_datetime_parsing", Loc: []string{"body", "date"}, Msg: err.Error()}})
		return
	}
	d, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, "update donation", id, err)
		return
	}
	metrics.DonationMutations.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, toResponse(d))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete donation", id, err)
		return
	}
	metrics.DonationMutations.WithLabelValues("delete").Inc()
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Donation with ID %d has been deleted successfully", id)})
}

func (h *Handler) Stats(c *gin.Context) {
	s, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeInternal(c, "donation stats", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Snapshot exports every donation plus the summary to object storage.
func (h *Handler) Snapshot(c *gin.Context) {
	if h.snapshots == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Snapshot storage is not configured"})
		return
	}
	ctx := c.Request.Context()
	list, err := h.svc.List(ctx)
	if err != nil {
		writeInternal(c, "list donations", err)
		return
	}
	key, url, err := h.snapshots.Save(ctx, list, donation.Summarize(list))
	if err != nil {
		writeInternal(c, "save snapshot", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key, "url": url, "total_donations": len(list)})
}

func (h *Handler) fail(c *gin.Context, op string, id int64, err error) {
	if service.IsNotFound(err) {
		writeNotFound(c, id)
		return
	}
	writeInternal(c, op, err)
}

func pathID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeValidation(c, pathIDError(raw))
		return 0, false
	}
	return id, true
}
