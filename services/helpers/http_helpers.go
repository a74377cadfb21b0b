package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/models"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// SetCaller stores the resolved caller on the request context
func SetCaller(c *gin.Context, caller models.Caller) {
	c.Set(callerKey, caller)
}

// CallerFromContext returns the caller set by the auth middleware, or an anonymous caller
func CallerFromContext(c *gin.Context) models.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(models.Caller); ok {
			return caller
		}
	}
	return models.Caller{}
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	message := biddingerrors.Reason(err)
	switch biddingerrors.KindOf(err) {
	case biddingerrors.KindUnauthenticated:
		return http.StatusUnauthorized, message
	case biddingerrors.KindUnauthorized:
		return http.StatusForbidden, message
	case biddingerrors.KindNotFound:
		return http.StatusNotFound, message
	case biddingerrors.KindValidation:
		return http.StatusBadRequest, message
	case biddingerrors.KindConflict:
		return http.StatusConflict, message
	default:
		return http.StatusInternalServerError, message
	}
}

// HandleServiceError sends the mapped error response. Store failures only expose the generic reason.
func HandleServiceError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	shown := err
	if status == http.StatusInternalServerError {
		shown = errors.New(message)
	}
	utils.JSONError(c, status, shown, message)

	logFields := map[string]any{"handler": handlerName, "status": status, "error": err.Error()}
	for k, v := range fields {
		logFields[k] = v
	}
	utils.Warn(handlerName+": request failed", logFields)
}

// ParseIDParam reads a positive integer path parameter. It writes a 400 and returns false otherwise.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid %s %q", name, raw), "invalid "+name)
		return 0, false
	}
	return id, true
}

// PageFromQuery reads ?page= with the given page size. Missing or bad values mean
// the first page, and pages past models.MaxPage are clamped to it.
func PageFromQuery(c *gin.Context, size int) models.PageRequest {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return models.PageRequest{Page: min(page, models.MaxPage), Size: size}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
