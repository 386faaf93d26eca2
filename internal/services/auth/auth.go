// Package auth содержит бизнес-логику регистрации, аутентификации
// и проверки токенов сессии.
package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/errs"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/password"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetActiveUserByEmail возвращает активного пользователя по email
	// или (nil, nil), если такого нет.
	GetActiveUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateLastLogin фиксирует время последнего входа.
	UpdateLastLogin(ctx context.Context, userUID string, at time.Time) error
}

// Service отвечает за регистрацию, вход и валидацию токенов сессии.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создаёт новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// NormalizeEmail приводит email к каноническому виду: trim + lowercase.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создаёт нового пользователя.
//
// Несовпадение паролей и нарушение политики сложности — ошибка валидации;
// существующий активный пользователь с тем же email — конфликт.
// Возвращает UID созданного пользователя.
func (s *Service) Register(ctx context.Context, email, rawPassword, confirmPassword string) (string, error) {
	if rawPassword != confirmPassword {
		return "", errs.Validation("passwords do not match")
	}
	if err := password.ValidateStrength(rawPassword); err != nil {
		return "", errs.Validation("password must be at least 8 characters, include an uppercase letter and a number")
	}

	email = NormalizeEmail(email)
	existing, err := s.users.GetActiveUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", errs.Conflict("email already exists")
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}

	s.log.Info("registered new user", slog.String("user_uid", uid))
	return uid, nil
}

// Login проверяет учётные данные и выдаёт токен сессии.
//
// Возвращает токен, срок его действия в секундах и пользователя.
// Отсутствующий пользователь и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, int64, *models.User, error) {
	user, err := s.users.GetActiveUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", 0, nil, err
	}
	if user == nil {
		return "", 0, nil, errs.Auth("invalid credentials")
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", 0, nil, errs.Auth("invalid credentials")
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return "", 0, nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.UID, time.Now().UTC()); err != nil {
		s.log.Warn("failed to update last login", sl.Err(err))
	}

	expiresIn := int64(s.jwtMaker.TTL().Seconds())
	return token, expiresIn, user, nil
}

// ValidateToken проверяет токен сессии и возвращает встроенные в него
// идентификатор пользователя и email. Любая проблема с токеном — ошибка
// аутентификации.
func (s *Service) ValidateToken(_ context.Context, token string) (string, string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", "", errs.Auth("invalid or expired token")
	}
	return claims.Subject, claims.Email, nil
}
