package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/Marga-Ghale/ora-identity-services/internal/api/middleware"
	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/models"
	"github.com/Marga-Ghale/ora-identity-services/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ============================================
// Error Mapping
// ============================================

// respondError maps a service error onto a status and body. Upstream detail
// is logged and never written to the response.
func respondError(c *gin.Context, op string, err error) {
	var vErr *service.ValidationError
	var nfErr *service.NotFoundError
	var rErr *service.RemoteError

	switch {
	case errors.As(err, &vErr):
		abortWith(c, http.StatusBadRequest, "Invalid request", vErr.Message)
	case errors.As(err, &nfErr):
		abortWith(c, http.StatusNotFound, nfErr.Resource+" not found", nfErr.Error())
	case errors.As(err, &rErr):
		logger.L().Errorw("Management API call failed", "op", op, "error", err, "requestId", middleware.GetRequestID(c))
		abortWith(c, http.StatusInternalServerError, "Service error", "An error occurred processing your request")
	default:
		logger.L().Errorw("Unexpected error", "op", op, "error", err, "requestId", middleware.GetRequestID(c))
		abortWith(c, http.StatusInternalServerError, "Internal error", "An unexpected error occurred")
	}
	_ = c.Error(err)
}

// respondBindError reports a body or query that could not be bound.
func respondBindError(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		abortWith(c, http.StatusBadRequest, "Validation failed", formatValidationErrors(vErrs))
		return
	}
	abortWith(c, http.StatusBadRequest, "Validation failed", "Malformed request: "+err.Error())
}

func abortWith(c *gin.Context, status int, title, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: title, Message: message})
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fieldPath(fe)+" "+describeTag(fe))
	}
	return strings.Join(msgs, ", ")
}

// fieldPath drops the top-level struct name: "RelationRequest.relations[1].target"
// becomes "relations[1].target".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "userid":
		return "must be 1-128 characters of letters, digits, '_' or '-'"
	case "imageid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}
