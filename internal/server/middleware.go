package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/metrics"
	"auction-hub/internal/models"
	"auction-hub/services/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

// TokenResolver turns a session token into the caller it belongs to
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (models.Caller, error)
}

// RequestLoggerMiddleware logs incoming requests with timing and records the latency metric
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = utils.GenerateID()
	}
	c.Header(requestIDHeader, requestID)

	c.Next() // process request

	elapsed := time.Since(start)
	status := c.Writer.Status()
	metrics.ObserveRequest(c.Request.Method, c.FullPath(), status, elapsed)

	utils.Info("HTTP Request", map[string]any{
		"request_id": requestID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     status,
		"latency":    elapsed.String(),
		"client_ip":  c.ClientIP(),
	})
}

// Authenticate resolves the caller from a Bearer token or the session cookie.
// A missing or invalid token leaves the request anonymous.
func Authenticate(resolver TokenResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if v, err := c.Cookie(cookieName); err == nil {
				token = v
			}
		}
		if token == "" {
			c.Next()
			return
		}

		caller, err := resolver.ResolveToken(c.Request.Context(), token)
		switch {
		case err == nil:
			helpers.SetCaller(c, caller)
		case biddingerrors.KindOf(err) == biddingerrors.KindUnauthenticated:
			utils.Debug("ignoring invalid session token", map[string]any{"error": err.Error()})
		default:
			utils.Error("could not resolve session", map[string]any{"error": err.Error()})
			utils.AbortWithError(c, http.StatusInternalServerError, errors.New(biddingerrors.Reason(err)), "could not resolve session")
			return
		}
		c.Next()
	}
}

// RequireLogin rejects anonymous callers
func RequireLogin(c *gin.Context) {
	if !helpers.CallerFromContext(c).Authenticated() {
		utils.AbortWithError(c, http.StatusUnauthorized, biddingerrors.ErrUnauthenticated, biddingerrors.ErrUnauthenticated.Error())
		return
	}
	c.Next()
}

// RequireAdmin rejects callers without the admin flag
func RequireAdmin(c *gin.Context) {
	caller := helpers.CallerFromContext(c)
	if !caller.Authenticated() {
		utils.AbortWithError(c, http.StatusUnauthorized, biddingerrors.ErrUnauthenticated, biddingerrors.ErrUnauthenticated.Error())
		return
	}
	if !caller.Admin {
		utils.AbortWithError(c, http.StatusForbidden, biddingerrors.ErrAdminRequired, biddingerrors.ErrAdminRequired.Error())
		return
	}
	c.Next()
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
