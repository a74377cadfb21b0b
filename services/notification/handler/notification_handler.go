package handler

//go:generate mockgen -source=notification_handler.go -destination=mock_notification_handler.go -package=handler

import (
	"context"
	"net/http"

	"auction-hub/internal/models"
	"auction-hub/services/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

type NotificationServiceInterface interface {
	Summary(ctx context.Context, caller models.Caller) (models.NotificationSummary, error)
	MarkAllRead(ctx context.Context, caller models.Caller) error
}

type NotificationHandler struct {
	service NotificationServiceInterface
}

func NewNotificationHandler(service NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// SummaryHandler handles GET /api/notifications/summary
func (h *NotificationHandler) SummaryHandler(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), helpers.CallerFromContext(c))
	if err != nil {
		helpers.HandleServiceError(c, "SummaryHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, summary, "notifications retrieved successfully")
}

// MarkReadHandler handles POST /api/notifications/mark-read
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), helpers.CallerFromContext(c)); err != nil {
		helpers.HandleServiceError(c, "MarkReadHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "notifications marked as read")
}
