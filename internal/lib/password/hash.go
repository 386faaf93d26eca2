// Package password реализует функции для безопасного хеширования и проверки паролей,
// а также политику сложности пароля при регистрации.
package password

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// GetHash принимает пароль пользователя и возвращает его bcrypt-хэш.
//
// Используется для безопасного хранения паролей в базе данных.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt-хэш с введённым паролем.
// Сравнение выполняется за константное время внутри bcrypt.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ValidateStrength проверяет политику сложности пароля:
// минимум 8 символов, хотя бы одна заглавная буква и одна цифра.
func ValidateStrength(password string) error {
	const op = "password.ValidateStrength"
	if len(password) < 8 {
		return fmt.Errorf("%s: password must be at least 8 characters", op)
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("%s: password must contain an uppercase letter", op)
	}
	if !hasDigit {
		return fmt.Errorf("%s: password must contain a digit", op)
	}
	return nil
}
