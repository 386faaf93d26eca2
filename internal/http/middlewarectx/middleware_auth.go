// Package middlewarectx содержит HTTP middleware для проверки токенов сессии
// и ограничения частоты запросов.
//
// JWTMiddleware проверяет наличие и валидность токена в заголовке
// Authorization и в случае успеха кладёт в контекст идентификатор и email
// пользователя. Это единственный источник идентичности для всех
// обработчиков: клиентский идентификатор из тела запроса никогда не
// используется, что исключает доступ к чужим данным.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для идентификатора пользователя в контексте.
	UserUID Key = "user_uid"
	// Email — ключ для email пользователя в контексте.
	Email Key = "email"
)

// Service описывает интерфейс сервиса для валидации токена сессии.
type Service interface {
	ValidateToken(ctx context.Context, token string) (userUID, email string, err error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен сессии
// в заголовке Authorization.
//
// Если токен валиден, добавляет идентификатор и email пользователя в контекст
// запроса, иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			userUID, email, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil || userUID == "" {
				if err != nil {
					log.Error("invalid or expired token", sl.Err(err))
				} else {
					log.Error("invalid or expired token")
				}
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), UserUID, userUID)
			ctx = context.WithValue(ctx, Email, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
