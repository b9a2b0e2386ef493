package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/donation-inventory/api/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of a 422 response body.
type FieldError struct {
	Type string   `json:"type"`
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator errors report json names (donor_name)
// instead of Go field names (DonorName).
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

func notFoundDetail(id int64) string {
	return fmt.Sprintf("Donation with ID %d not found", id)
}

func writeNotFound(c *gin.Context, id int64) {
	c.JSON(http.StatusNotFound, gin.H{"detail": notFoundDetail(id)})
}

func writeValidation(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": errs})
}

func writeInternal(c *gin.Context, op string, err error) {
	logger.Errorf("%s %s: %s failed: %v", c.Request.Method, c.Request.URL.Path, op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
}

func pathIDError(raw string) []FieldError {
	return []FieldError{{
		Type: "int_parsing",
		Loc:  []string{"path", "donation_id"},
		Msg:  fmt.Sprintf("Input should be a valid integer, unable to parse string as an integer: %q", raw),
	}}
}

// bindErrors converts a ShouldBindJSON error into field-level details.
func bindErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError(fe))
		}
		return out
	}

	var amountErr *amountParseError
	if errors.As(err, &amountErr) {
		return []FieldError{{
			Type: "float_parsing",
			Loc:  []string{"body", "amount"},
			Msg:  "Input should be a valid number, " + amountErr.Error(),
		}}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []FieldError{{
			Type: typeErr.Value + "_type",
			Loc:  []string{"body", typeErr.Field},
			Msg:  fmt.Sprintf("Input should be a valid %s", describeKind(typeErr.Type)),
		}}
	}

	if errors.Is(err, io.EOF) {
		return []FieldError{{Type: "missing", Loc: []string{"body"}, Msg: "Field required"}}
	}

	return []FieldError{{Type: "json_invalid", Loc: []string{"body"}, Msg: "JSON decode error: " + err.Error()}}
}

func fieldError(fe validator.FieldError) FieldError {
	loc := []string{"body", fe.Field()}
	switch fe.Tag() {
	case "required":
		return FieldError{Type: "missing", Loc: loc, Msg: "Field required"}
	case "gt":
		return FieldError{Type: "greater_than", Loc: loc, Msg: "Input should be greater than " + fe.Param()}
	case "datetime":
		return FieldError{Type: "date_from_datetime_parsing", Loc: loc, Msg: "Input should be a valid date in YYYY-MM-DD format"}
	default:
		return FieldError{Type: fe.Tag(), Loc: loc, Msg: fe.Error()}
	}
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int64:
		return "integer"
	default:
		return t.Kind().String()
	}
}
