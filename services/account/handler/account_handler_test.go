package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/models"
	"auction-hub/services/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var caller = models.Caller{UserID: 7, Name: "ada"}

func newAccountRouter(h *AccountHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/register", h.RegisterHandler)
	router.POST("/api/login", h.LoginHandler)
	router.POST("/api/logout", h.LogoutHandler)

	authed := router.Group("", func(c *gin.Context) { helpers.SetCaller(c, caller) })
	authed.GET("/api/profile", h.ProfileHandler)
	authed.PUT("/api/profile", h.UpdateProfileHandler)
	authed.POST("/api/profile/request-verify", h.RequestVerifyHandler)
	authed.POST("/api/profile/verify-otp", h.VerifyOTPHandler)
	authed.POST("/api/profile/request-email-change-otp", h.RequestEmailChangeHandler)
	return router
}

func sendJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAccountServiceInterface(ctrl)
	router := newAccountRouter(NewAccountHandler(mockService, SessionCookie{Name: "sid", Secure: true}))

	t.Run("success_sets_cookie", func(t *testing.T) {
		mockService.EXPECT().Login(gomock.Any(), "ada@example.com", "secret123").
			Return("tok-123", models.User{ID: 7, Name: "ada", Email: "ada@example.com"}, nil)
		mockService.EXPECT().TokenTTL().Return(2 * time.Hour)

		w := sendJSON(router, http.MethodPost, "/api/login", `{"email":"ada@example.com","password":"secret123"}`)
		require.Equal(t, http.StatusOK, w.Code)

		cookie := findCookie(w, "sid")
		require.NotNil(t, cookie)
		require.Equal(t, "tok-123", cookie.Value)
		require.Equal(t, 7200, cookie.MaxAge)
		require.True(t, cookie.HttpOnly)
		require.True(t, cookie.Secure)
		require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "login successful", resp["message"])
		data := resp["data"].(map[string]any)
		require.Equal(t, "tok-123", data["token"])
		expires, err := time.Parse(time.RFC3339, data["expires_at"].(string))
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(2*time.Hour), expires, time.Minute)
		require.NotContains(t, data["user"].(map[string]any), "PasswordHash")
	})

	t.Run("wrong_password", func(t *testing.T) {
		mockService.EXPECT().Login(gomock.Any(), "ada@example.com", "nope").
			Return("", models.User{}, fmt.Errorf("account: %w", biddingerrors.ErrInvalidCredentials))

		w := sendJSON(router, http.MethodPost, "/api/login", `{"email":"ada@example.com","password":"nope"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Nil(t, findCookie(w, "sid"))
	})

	t.Run("missing_fields", func(t *testing.T) {
		w := sendJSON(router, http.MethodPost, "/api/login", `{"email":"ada@example.com"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("logout_clears_cookie", func(t *testing.T) {
		w := sendJSON(router, http.MethodPost, "/api/logout", "")
		require.Equal(t, http.StatusOK, w.Code)
		cookie := findCookie(w, "sid")
		require.NotNil(t, cookie)
		require.Empty(t, cookie.Value)
		require.Negative(t, cookie.MaxAge)
	})
}

func TestAccountHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAccountServiceInterface(ctrl)
	router := newAccountRouter(NewAccountHandler(mockService, SessionCookie{Name: "sid"}))

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "register",
			method: http.MethodPost,
			path:   "/api/register",
			body:   `{"name":"ada","email":"ada@example.com","password":"secret123"}`,
			mockSetup: func() {
				mockService.EXPECT().Register(gomock.Any(), "ada", "ada@example.com", "secret123").
					Return(models.User{ID: 7, Name: "ada", Email: "ada@example.com"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "registration successful",
		},
		{
			name:   "register_duplicate",
			method: http.MethodPost,
			path:   "/api/register",
			body:   `{"name":"bea","email":"taken@example.com","password":"secret123"}`,
			mockSetup: func() {
				mockService.EXPECT().Register(gomock.Any(), "bea", "taken@example.com", "secret123").
					Return(models.User{}, fmt.Errorf("account: %w", biddingerrors.ErrEmailExists))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "email already registered",
		},
		{
			name:   "register_weak_password",
			method: http.MethodPost,
			path:   "/api/register",
			body:   `{"name":"cy","email":"cy@example.com","password":"abc"}`,
			mockSetup: func() {
				mockService.EXPECT().Register(gomock.Any(), "cy", "cy@example.com", "abc").
					Return(models.User{}, biddingerrors.ErrWeakPassword)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "password must be at least 6 characters",
		},
		{
			name:   "profile",
			method: http.MethodGet,
			path:   "/api/profile",
			mockSetup: func() {
				mockService.EXPECT().Profile(gomock.Any(), caller).Return(models.User{ID: 7, Name: "ada"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "profile retrieved successfully",
		},
		{
			name:   "update_profile_needs_otp",
			method: http.MethodPut,
			path:   "/api/profile",
			body:   `{"name":"ada","email":"new@example.com"}`,
			mockSetup: func() {
				mockService.EXPECT().UpdateProfile(gomock.Any(), caller, "ada", "new@example.com", "").
					Return(models.User{}, biddingerrors.ErrOTPNotRequested)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "please request an OTP first",
		},
		{
			name:   "request_verify",
			method: http.MethodPost,
			path:   "/api/profile/request-verify",
			mockSetup: func() {
				mockService.EXPECT().RequestVerification(gomock.Any(), caller).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "verification code sent",
		},
		{
			name:   "request_verify_mail_down",
			method: http.MethodPost,
			path:   "/api/profile/request-verify",
			mockSetup: func() {
				mockService.EXPECT().RequestVerification(gomock.Any(), caller).Return(biddingerrors.ErrOTPDelivery)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "could not send the verification code",
		},
		{
			name:   "verify_otp",
			method: http.MethodPost,
			path:   "/api/profile/verify-otp",
			body:   `{"otp":"123456"}`,
			mockSetup: func() {
				mockService.EXPECT().VerifyEmail(gomock.Any(), caller, "123456").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "email verified",
		},
		{
			name:   "verify_wrong_otp",
			method: http.MethodPost,
			path:   "/api/profile/verify-otp",
			body:   `{"otp":"000000"}`,
			mockSetup: func() {
				mockService.EXPECT().VerifyEmail(gomock.Any(), caller, "000000").Return(biddingerrors.ErrInvalidOTP)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid or expired OTP",
		},
		{
			name:           "verify_missing_otp",
			method:         http.MethodPost,
			path:           "/api/profile/verify-otp",
			body:           `{}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:   "email_change_otp",
			method: http.MethodPost,
			path:   "/api/profile/request-email-change-otp",
			body:   `{"new_email":"new@example.com"}`,
			mockSetup: func() {
				mockService.EXPECT().RequestEmailChange(gomock.Any(), caller, "new@example.com").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "verification code sent to the new address",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w := sendJSON(router, tc.method, tc.path, tc.body)
			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tc.expectedMsg, resp["message"])
		})
	}
}
