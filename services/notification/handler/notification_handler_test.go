package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-hub/internal/models"
	"auction-hub/services/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestNotificationHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := models.Caller{UserID: 21, Name: "lou", Verified: true}
	mockService := NewMockNotificationServiceInterface(ctrl)
	handler := NewNotificationHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { helpers.SetCaller(c, user) })
	router.GET("/api/notifications/summary", handler.SummaryHandler)
	router.POST("/api/notifications/mark-read", handler.MarkReadHandler)

	t.Run("summary", func(t *testing.T) {
		mockService.EXPECT().Summary(gomock.Any(), user).Return(models.NotificationSummary{
			UnreadCount: 1,
			Notifications: []models.Notification{
				{ID: 4, UserID: 21, Message: "You have been outbid on Lamp", Link: "/auction/3"},
				{ID: 2, UserID: 21, Message: "Welcome", IsRead: true},
			},
		}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notifications/summary", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, 1.0, data["unread_count"])
		require.Len(t, data["notifications"].([]any), 2)
	})

	t.Run("summary_store_failure", func(t *testing.T) {
		mockService.EXPECT().Summary(gomock.Any(), user).Return(models.NotificationSummary{}, errors.New("closed"))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notifications/summary", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotContains(t, w.Body.String(), "closed")
	})

	t.Run("mark_read", func(t *testing.T) {
		mockService.EXPECT().MarkAllRead(gomock.Any(), user).Return(nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/notifications/mark-read", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})
}
