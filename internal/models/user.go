// Package models содержит доменные структуры трекера расходов:
// пользователей, категории, расходы и агрегированные сводки,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Пользователи никогда не удаляются физически; деактивация выполняется
// сбросом флага IsActive.
type User struct {
	UID          string     `json:"id"`    // Уникальный идентификатор пользователя
	Email        string     `json:"email"` // Нормализованный (trim + lowercase) email, уникален среди активных
	PasswordHash string     `json:"-"`     // bcrypt-хэш пароля
	IsActive     bool       `json:"-"`     // Флаг активности учётной записи
	CreatedAt    time.Time  `json:"-"`     // Дата регистрации
	LastLoginAt  *time.Time `json:"-"`     // Дата последнего входа, nil если входов не было
}
