// Package errs определяет классификацию доменных ошибок сервиса.
//
// Четыре вида ошибок покрывают все пользовательские сценарии: ошибка
// валидации входных данных, конфликт уникальности, ошибка аутентификации и
// отсутствие сущности. Всё остальное считается внутренней ошибкой и наружу
// отдаётся без деталей.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation — некорректные или нарушающие политику входные данные.
	ErrValidation = errors.New("validation failed")
	// ErrConflict — нарушение уникальности.
	ErrConflict = errors.New("already exists")
	// ErrAuth — отсутствующие или неверные учётные данные либо токен.
	ErrAuth = errors.New("unauthorized")
	// ErrNotFound — сущность отсутствует или принадлежит другому пользователю.
	// Эти два случая намеренно неразличимы, чтобы не раскрывать чужие данные.
	ErrNotFound = errors.New("not found")
)

// Validation оборачивает сообщение в ошибку валидации.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Conflict оборачивает сообщение в ошибку конфликта.
func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// Auth оборачивает сообщение в ошибку аутентификации.
func Auth(msg string) error {
	return fmt.Errorf("%w: %s", ErrAuth, msg)
}

// NotFound оборачивает сообщение в ошибку отсутствия сущности.
func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// HTTPStatus возвращает HTTP-статус, соответствующий виду ошибки.
// Неклассифицированные ошибки отображаются в 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message возвращает текст ошибки, пригодный для показа клиенту.
// Для внутренних ошибок детали скрываются.
func Message(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
