package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auction-hub/internal/biddingerrors"
	model "auction-hub/internal/models"
)

const userColumns = `id, name, email, password_hash, created_at, email_verified, is_admin,
    verify_code, verify_code_expires_at, pending_email`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		u         model.User
		createdAt int64
		expiresAt sql.NullInt64
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt, &u.EmailVerified, &u.IsAdmin,
		&u.VerifyCode, &expiresAt, &u.PendingEmail)
	if err != nil {
		return model.User{}, err
	}
	u.CreatedAt = fromNanos(createdAt)
	if expiresAt.Valid {
		t := fromNanos(expiresAt.Int64)
		u.VerifyCodeExpiresAt = &t
	}
	return u, nil
}

// CreateUser inserts user and sets its ID
func (r *SQLiteRepo) CreateUser(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, created_at, email_verified, is_admin)
         VALUES (?, ?, ?, ?, ?, ?)`,
		user.Name, user.Email, user.PasswordHash, toNanos(user.CreatedAt), user.EmailVerified, user.IsAdmin)
	if isUniqueViolation(err) {
		return fmt.Errorf("create user %s: %w", user.Email, biddingerrors.ErrEmailExists)
	}
	if err != nil {
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	user.ID = id
	return nil
}

// GetUserByID returns the user with id
func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("get user %d: %w", id, biddingerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// GetUserByEmail returns the user registered with email
func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("get user %s: %w", email, biddingerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %s: %w", email, err)
	}
	return u, nil
}

// ListUsers returns every user, newest first
func (r *SQLiteRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserProfile sets the display name and email of a user
func (r *SQLiteRepo) UpdateUserProfile(ctx context.Context, id int64, name, email string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET name = ?, email = ? WHERE id = ?`, name, email, id)
	if isUniqueViolation(err) {
		return fmt.Errorf("update user %d: %w", id, biddingerrors.ErrEmailExists)
	}
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("update user %d", id), biddingerrors.ErrUserNotFound)
}

// SetVerifyCode stores a pending one-time code, and the email it confirms when non-empty
func (r *SQLiteRepo) SetVerifyCode(ctx context.Context, id int64, code, pendingEmail string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET verify_code = ?, verify_code_expires_at = ?, pending_email = ? WHERE id = ?`,
		code, toNanos(expiresAt), pendingEmail, id)
	if err != nil {
		return fmt.Errorf("set verify code for user %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("set verify code for user %d", id), biddingerrors.ErrUserNotFound)
}

// ClearVerifyCode drops any pending code
func (r *SQLiteRepo) ClearVerifyCode(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET verify_code = '', verify_code_expires_at = NULL, pending_email = '' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("clear verify code for user %d: %w", id, err)
	}
	return nil
}

// MarkEmailVerified flags the user's email as verified and clears the code
func (r *SQLiteRepo) MarkEmailVerified(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email_verified = 1, verify_code = '', verify_code_expires_at = NULL, pending_email = ''
         WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("verify user %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("verify user %d", id), biddingerrors.ErrUserNotFound)
}

// SetAdmin grants or revokes the admin flag
func (r *SQLiteRepo) SetAdmin(ctx context.Context, id int64, admin bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_admin = ? WHERE id = ?`, admin, id)
	if err != nil {
		return fmt.Errorf("set admin for user %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("set admin for user %d", id), biddingerrors.ErrUserNotFound)
}

func requireAffected(res sql.Result, op string, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	return nil
}
