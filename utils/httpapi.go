package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ValidationError carries a per-field error set for malformed input.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// FieldErrors flattens a gin binding error into a field -> message map.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				out[field] = "this field is required"
			case "email":
				out[field] = "must be a valid email address"
			case "oneof":
				out[field] = "must be one of: " + fe.Param()
			case "min", "gte":
				out[field] = "must be at least " + fe.Param()
			case "max", "lte":
				out[field] = "must be at most " + fe.Param()
			default:
				out[field] = fmt.Sprintf("failed %s validation", fe.Tag())
			}
		}
		return out
	}
	out["body"] = err.Error()
	return out
}

// AbortBadRequest renders a validation failure as a structured per-field
// error set.
func AbortBadRequest(c *gin.Context, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": FieldErrors(err)})
}

// AbortForError maps service errors onto the response taxonomy: validation
// failures become 400s with field maps, missing rows become 404s (never
// 403, to avoid confirming other users' data exists), everything else 500.
func AbortForError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
