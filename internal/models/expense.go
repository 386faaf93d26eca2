package models

import (
	"time"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/money"
)

// Expense представляет транзакцию расхода пользователя.
//
// Ссылка на категорию проверяется при записи (категория должна быть активной
// и принадлежать тому же пользователю), но не блокируется кросс-сущностной
// транзакцией: категорию можно мягко удалить после того, как на неё сослался
// расход, и расход при этом остаётся валидным.
type Expense struct {
	ID          string      `json:"id"`          // Уникальный идентификатор расхода
	UserUID     string      `json:"-"`           // Идентификатор пользователя-владельца
	CategoryID  string      `json:"category_id"` // Идентификатор категории
	Amount      money.Cents `json:"amount"`      // Сумма, строго больше нуля
	Description string      `json:"description"` // Описание, до 500 символов
	SpentOn     time.Time   `json:"date"`        // Дата транзакции
	CreatedAt   time.Time   `json:"created_at"`  // Дата создания записи
	Status      string      `json:"-"`           // StatusActive или StatusDeleted

	// Данные категории, подтягиваемые join-ом при чтении. Заполняются даже
	// для мягко удалённой категории, чтобы исторические расходы сохраняли
	// её имя и цвет.
	CategoryName  string `json:"category_name"`
	CategoryColor string `json:"category_color"`
}

// DummyExpense используется для приёма данных создания расхода из JSON-запроса.
// Дата приходит строкой в формате 2006-01-02; её формат и запрет будущих дат
// проверяет сервис при разборе.
type DummyExpense struct {
	CategoryID  string      `json:"category_id" validate:"required,uuid"`
	Amount      money.Cents `json:"amount" validate:"required,gt=0"`
	Description string      `json:"description" validate:"omitempty,max=500"`
	Date        string      `json:"date" validate:"required"`
}

// UpdateExpense описывает частичное обновление расхода:
// nil-поле означает "оставить прежнее значение".
type UpdateExpense struct {
	CategoryID  *string      `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Amount      *money.Cents `json:"amount,omitempty"`
	Description *string      `json:"description,omitempty" validate:"omitempty,max=500"`
	Date        *string      `json:"date,omitempty"`
}
