package models

import "time"

// Статусы мягкого удаления. Удалённая запись остаётся в хранилище,
// потому что на неё могут ссылаться исторические расходы.
const (
	// StatusActive — запись активна и видна во всех выборках.
	StatusActive = "active"
	// StatusDeleted — запись мягко удалена и скрыта из выборок,
	// но доступна по join из ссылающихся расходов.
	StatusDeleted = "deleted"
)

// Category представляет категорию расходов, принадлежащую одному пользователю.
// Имя уникально без учёта регистра среди активных категорий владельца.
type Category struct {
	ID        string    `json:"id"`         // Уникальный идентификатор категории
	UserUID   string    `json:"-"`          // Идентификатор пользователя-владельца
	Name      string    `json:"name"`       // Имя категории, до 100 символов
	Color     string    `json:"color"`      // Цвет отображения, hex-код вида #FF5733
	CreatedAt time.Time `json:"created_at"` // Дата создания
	Status    string    `json:"-"`          // StatusActive или StatusDeleted
}

// DummyCategory используется для приёма данных создания категории из JSON-запроса.
type DummyCategory struct {
	Name  string `json:"name" validate:"required,max=100"`    // Имя категории
	Color string `json:"color" validate:"required,hexcolor"`  // Цвет в hex-формате
}

// UpdateCategory описывает частичное обновление категории:
// nil-поле означает "оставить прежнее значение".
type UpdateCategory struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}
