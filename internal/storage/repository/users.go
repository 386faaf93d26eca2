package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, password_hash, is_active)
			  VALUES ($1, $2, $3)
			  RETURNING uid`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.IsActive).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetActiveUserByEmail возвращает активного пользователя по нормализованному
// email. Отсутствие пользователя не является ошибкой: возвращается (nil, nil).
func (s *Storage) GetActiveUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetActiveUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, is_active, created_at, last_login_at
			  FROM users
			  WHERE LOWER(email) = LOWER($1) AND is_active`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)

	var lastLoginAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash,
		&u.IsActive, &u.CreatedAt, &lastLoginAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if lastLoginAt.Valid {
		u.LastLoginAt = &lastLoginAt.Time
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID или (nil, nil), если его нет.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, is_active, created_at, last_login_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var lastLoginAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash,
		&u.IsActive, &u.CreatedAt, &lastLoginAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if lastLoginAt.Valid {
		u.LastLoginAt = &lastLoginAt.Time
	}
	return u, nil
}

// UpdateLastLogin фиксирует время последнего успешного входа пользователя.
func (s *Storage) UpdateLastLogin(ctx context.Context, userUID string, at time.Time) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET last_login_at = $1
			  WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, at, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
