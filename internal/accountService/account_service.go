package account

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-hub/internal/auth"
	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/mailer"
	"auction-hub/internal/models"
	"auction-hub/internal/repository"
	"auction-hub/utils"
)

// DefaultOTPTTL is how long a verification code stays valid when none is configured.
const DefaultOTPTTL = 10 * time.Minute

// AccountService handles registration, sessions, email verification and user administration
type AccountService struct {
	users  repository.UserDB
	tokens *auth.JWTManager
	mail   mailer.Sender
	otpTTL time.Duration
	newOTP func() (string, error)
	now    func() time.Time
}

// NewAccountService creates a new AccountService instance
func NewAccountService(users repository.UserDB, tokens *auth.JWTManager, mail mailer.Sender, otpTTL time.Duration) *AccountService {
	if otpTTL <= 0 {
		otpTTL = DefaultOTPTTL
	}
	return &AccountService{
		users:  users,
		tokens: tokens,
		mail:   mail,
		otpTTL: otpTTL,
		newOTP: auth.GenerateOTP,
		now:    time.Now,
	}
}

// TokenTTL is the lifetime of the tokens issued by Login.
func (s *AccountService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account
func (s *AccountService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return models.User{}, fmt.Errorf("service: %w", biddingerrors.ErrMissingFields)
	}
	if len(password) < auth.MinPasswordLength {
		return models.User{}, fmt.Errorf("service: %w", biddingerrors.ErrWeakPassword)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, utils.ServiceError("register", err)
	}
	u := models.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, &u); err != nil {
		return models.User{}, utils.ServiceError("register", err)
	}

	utils.Info("user registered", map[string]any{"user_id": u.ID})
	return u, nil
}

// Login checks the credentials and returns a signed session token
func (s *AccountService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, biddingerrors.ErrUserNotFound) {
		return "", models.User{}, fmt.Errorf("service: %w", biddingerrors.ErrInvalidCredentials)
	}
	if err != nil {
		return "", models.User{}, utils.ServiceError("login", err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return "", models.User{}, fmt.Errorf("service: %w", biddingerrors.ErrInvalidCredentials)
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return "", models.User{}, utils.ServiceError("issue session token", err)
	}
	return token, u, nil
}

// ResolveCaller loads the current identity of userID. A deleted user is unauthenticated.
func (s *AccountService) ResolveCaller(ctx context.Context, userID int64) (models.Caller, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, biddingerrors.ErrUserNotFound) {
		return models.Caller{}, fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}
	if err != nil {
		return models.Caller{}, utils.ServiceError("resolve caller", err)
	}
	return models.Caller{UserID: u.ID, Name: u.Name, Verified: u.EmailVerified, Admin: u.IsAdmin}, nil
}

// ResolveToken validates a session token and loads the caller it belongs to
func (s *AccountService) ResolveToken(ctx context.Context, token string) (models.Caller, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return models.Caller{}, fmt.Errorf("service: %w: %w", biddingerrors.ErrUnauthenticated, err)
	}
	return s.ResolveCaller(ctx, userID)
}

// Profile returns the caller's account
func (s *AccountService) Profile(ctx context.Context, caller models.Caller) (models.User, error) {
	if !caller.Authenticated() {
		return models.User{}, fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}
	u, err := s.users.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return models.User{}, utils.ServiceError("load profile", err)
	}
	return u, nil
}

// RequestVerification sends a one-time code to the caller's address
func (s *AccountService) RequestVerification(ctx context.Context, caller models.Caller) error {
	u, err := s.Profile(ctx, caller)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return nil
	}
	return s.sendCode(ctx, u.ID, u.Email, "")
}

// VerifyEmail marks the caller's email verified when code matches the one sent
func (s *AccountService) VerifyEmail(ctx context.Context, caller models.Caller, code string) error {
	u, err := s.Profile(ctx, caller)
	if err != nil {
		return err
	}
	if u.VerifyCode == "" || u.PendingEmail != "" {
		return fmt.Errorf("service: %w", biddingerrors.ErrOTPNotRequested)
	}
	if err := s.checkCode(u, code); err != nil {
		return err
	}

	if err := s.users.MarkEmailVerified(ctx, u.ID); err != nil {
		return utils.ServiceError("verify email", err)
	}
	utils.Info("email verified", map[string]any{"user_id": u.ID})
	return nil
}

// RequestEmailChange sends a one-time code to newEmail, which UpdateProfile must present
func (s *AccountService) RequestEmailChange(ctx context.Context, caller models.Caller, newEmail string) error {
	if !caller.Authenticated() {
		return fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}
	newEmail = normalizeEmail(newEmail)
	if newEmail == "" {
		return fmt.Errorf("service: %w", biddingerrors.ErrMissingFields)
	}
	if err := s.emailAvailable(ctx, caller.UserID, newEmail); err != nil {
		return err
	}
	return s.sendCode(ctx, caller.UserID, newEmail, newEmail)
}

// UpdateProfile changes the caller's name, and the email when otp matches the code sent for it
func (s *AccountService) UpdateProfile(ctx context.Context, caller models.Caller, name, email, otp string) (models.User, error) {
	u, err := s.Profile(ctx, caller)
	if err != nil {
		return models.User{}, err
	}
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return models.User{}, fmt.Errorf("service: %w", biddingerrors.ErrMissingFields)
	}

	emailChanged := email != u.Email
	if emailChanged {
		if u.VerifyCode == "" || u.PendingEmail != email {
			return models.User{}, fmt.Errorf("service: %w", biddingerrors.ErrOTPNotRequested)
		}
		if err := s.checkCode(u, otp); err != nil {
			return models.User{}, err
		}
		if err := s.emailAvailable(ctx, u.ID, email); err != nil {
			return models.User{}, err
		}
	}

	if err := s.users.UpdateUserProfile(ctx, u.ID, name, email); err != nil {
		return models.User{}, utils.ServiceError("update profile", err)
	}
	if emailChanged {
		if err := s.users.ClearVerifyCode(ctx, u.ID); err != nil {
			return models.User{}, utils.ServiceError("clear email change code", err)
		}
	}
	return s.Profile(ctx, caller)
}

// ListUsers returns every account. Admin only.
func (s *AccountService) ListUsers(ctx context.Context, caller models.Caller) ([]models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, utils.ServiceError("list users", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// ToggleAdmin flips the admin flag of another user. Admin only.
func (s *AccountService) ToggleAdmin(ctx context.Context, caller models.Caller, userID int64) (models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return models.User{}, err
	}
	if userID == caller.UserID {
		return models.User{}, fmt.Errorf("service: %w", biddingerrors.ErrSelfDemotion)
	}

	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, utils.ServiceError(fmt.Sprintf("load user %d", userID), err)
	}
	u.IsAdmin = !u.IsAdmin
	if err := s.users.SetAdmin(ctx, userID, u.IsAdmin); err != nil {
		return models.User{}, utils.ServiceError(fmt.Sprintf("set admin for user %d", userID), err)
	}

	utils.Info("admin status changed", map[string]any{"user_id": userID, "is_admin": u.IsAdmin, "by": caller.UserID})
	return u, nil
}

func (s *AccountService) sendCode(ctx context.Context, userID int64, to, pendingEmail string) error {
	code, err := s.newOTP()
	if err != nil {
		return utils.ServiceError("generate verification code", err)
	}
	if err := s.users.SetVerifyCode(ctx, userID, code, pendingEmail, s.now().Add(s.otpTTL)); err != nil {
		return utils.ServiceError("store verification code", err)
	}
	if err := s.mail.SendOTP(ctx, to, code); err != nil {
		utils.Error("verification code delivery failed", map[string]any{"user_id": userID, "error": err.Error()})
		return fmt.Errorf("service: %w: %w", biddingerrors.ErrOTPDelivery, err)
	}
	return nil
}

func (s *AccountService) checkCode(u models.User, code string) error {
	if u.VerifyCodeExpiresAt == nil || !u.VerifyCodeExpiresAt.After(s.now()) {
		return fmt.Errorf("service: %w - code expired", biddingerrors.ErrInvalidOTP)
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(code)), []byte(u.VerifyCode)) != 1 {
		return fmt.Errorf("service: %w", biddingerrors.ErrInvalidOTP)
	}
	return nil
}

func (s *AccountService) emailAvailable(ctx context.Context, userID int64, email string) error {
	existing, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, biddingerrors.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return utils.ServiceError("check email", err)
	}
	if existing.ID != userID {
		return fmt.Errorf("service: %w", biddingerrors.ErrEmailExists)
	}
	return nil
}

func requireAdmin(caller models.Caller) error {
	if !caller.Authenticated() {
		return fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}
	if !caller.Admin {
		return fmt.Errorf("service: %w", biddingerrors.ErrAdminRequired)
	}
	return nil
}
