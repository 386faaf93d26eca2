package models

import "github.com/magabrotheeeer/expense-tracker/internal/lib/money"

// Summary — производный кешируемый снимок трат пользователя за период.
// Вычисляется по активным расходам при промахе кеша и хранится с TTL;
// при изменении расходов внутри окна TTL снимок намеренно не инвалидируется.
type Summary struct {
	TotalSpending      money.Cents       `json:"total_spending"`      // Сумма всех расходов периода
	AverageTransaction money.Cents       `json:"average_transaction"` // Средний размер транзакции, 0 при отсутствии расходов
	ByCategory         []CategorySummary `json:"by_category"`         // Разбивка по категориям
}

// CategorySummary — итог по одной категории внутри Summary.
type CategorySummary struct {
	CategoryID   string      `json:"category_id"`
	CategoryName string      `json:"category_name"`
	Total        money.Cents `json:"total"`
	Count        int         `json:"count"`
}
