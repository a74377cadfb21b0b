package handler

//go:generate mockgen -source=account_handler.go -destination=mock_account_handler.go -package=handler

import (
	"context"
	"net/http"
	"time"

	"auction-hub/internal/models"
	"auction-hub/services/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (string, models.User, error)
	TokenTTL() time.Duration
	Profile(ctx context.Context, caller models.Caller) (models.User, error)
	UpdateProfile(ctx context.Context, caller models.Caller, name, email, otp string) (models.User, error)
	RequestVerification(ctx context.Context, caller models.Caller) error
	VerifyEmail(ctx context.Context, caller models.Caller, code string) error
	RequestEmailChange(ctx context.Context, caller models.Caller, newEmail string) error
}

// SessionCookie describes the cookie carrying the session token for browsers
type SessionCookie struct {
	Name   string
	Secure bool
}

type AccountHandler struct {
	service AccountServiceInterface
	cookie  SessionCookie
}

func NewAccountHandler(service AccountServiceInterface, cookie SessionCookie) *AccountHandler {
	return &AccountHandler{service: service, cookie: cookie}
}

// RegisterHandler handles POST /api/register
func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	u, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		helpers.HandleServiceError(c, "RegisterHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, u, "registration successful")
}

// LoginHandler handles POST /api/login
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	token, u, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		helpers.HandleServiceError(c, "LoginHandler", err, nil)
		return
	}

	ttl := h.service.TokenTTL()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(ttl.Seconds()), "/", "", h.cookie.Secure, true)

	resp := helpers.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(ttl).UTC().Format(time.RFC3339),
		User:      u,
	}
	utils.JSONResponse(c, http.StatusOK, resp, "login successful")
	helpers.LogSuccess("LoginHandler", "user logged in", map[string]any{"user_id": u.ID})
}

// LogoutHandler handles POST /api/logout
func (h *AccountHandler) LogoutHandler(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	utils.JSONResponse(c, http.StatusOK, nil, "logged out")
}

// ProfileHandler handles GET /api/profile
func (h *AccountHandler) ProfileHandler(c *gin.Context) {
	u, err := h.service.Profile(c.Request.Context(), helpers.CallerFromContext(c))
	if err != nil {
		helpers.HandleServiceError(c, "ProfileHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, u, "profile retrieved successfully")
}

// UpdateProfileHandler handles PUT /api/profile
func (h *AccountHandler) UpdateProfileHandler(c *gin.Context) {
	var req helpers.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateProfileHandler", err)
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), helpers.CallerFromContext(c), req.Name, req.Email, req.OTP)
	if err != nil {
		helpers.HandleServiceError(c, "UpdateProfileHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, u, "profile updated successfully")
}

// RequestVerifyHandler handles POST /api/profile/request-verify
func (h *AccountHandler) RequestVerifyHandler(c *gin.Context) {
	if err := h.service.RequestVerification(c.Request.Context(), helpers.CallerFromContext(c)); err != nil {
		helpers.HandleServiceError(c, "RequestVerifyHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "verification code sent")
}

// VerifyOTPHandler handles POST /api/profile/verify-otp
func (h *AccountHandler) VerifyOTPHandler(c *gin.Context) {
	var req helpers.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "VerifyOTPHandler", err)
		return
	}

	if err := h.service.VerifyEmail(c.Request.Context(), helpers.CallerFromContext(c), req.OTP); err != nil {
		helpers.HandleServiceError(c, "VerifyOTPHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "email verified")
}

// RequestEmailChangeHandler handles POST /api/profile/request-email-change-otp
func (h *AccountHandler) RequestEmailChangeHandler(c *gin.Context) {
	var req helpers.EmailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RequestEmailChangeHandler", err)
		return
	}

	if err := h.service.RequestEmailChange(c.Request.Context(), helpers.CallerFromContext(c), req.NewEmail); err != nil {
		helpers.HandleServiceError(c, "RequestEmailChangeHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "verification code sent to the new address")
}
