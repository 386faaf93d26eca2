package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// CreateExpense вставляет новую запись расхода и возвращает её ID.
// Существование и принадлежность категории проверяются на уровне сервиса.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense) (string, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO expenses (user_uid, category_id, amount_cents, description, spent_on, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		expense.UserUID, expense.CategoryID, int64(expense.Amount), expense.Description,
		expense.SpentOn, models.StatusActive).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetExpense возвращает активный расход пользователя вместе с данными его
// категории. Категория подтягивается и в мягко удалённом состоянии, чтобы
// исторические записи сохраняли её имя и цвет. Отсутствие — (nil, nil).
func (s *Storage) GetExpense(ctx context.Context, userUID, expenseID string) (*models.Expense, error) {
	const op = "storage.GetExpense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT e.id, e.user_uid, e.category_id, e.amount_cents, e.description,
				  e.spent_on, e.created_at, e.status, c.name, c.color
			  FROM expenses e
			  JOIN categories c ON c.id = e.category_id
			  WHERE e.id = $1 AND e.user_uid = $2 AND e.status = $3`
	row := s.DB.QueryRowContext(ctx, query, expenseID, userUID, models.StatusActive)

	var result models.Expense
	if err := row.Scan(&result.ID, &result.UserUID, &result.CategoryID, &result.Amount,
		&result.Description, &result.SpentOn, &result.CreatedAt, &result.Status,
		&result.CategoryName, &result.CategoryColor); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListExpenses возвращает активные расходы пользователя с данными категорий,
// по дате транзакции по убыванию; id — стабильный вторичный ключ сортировки.
// Необязательные границы start/end включительно ограничивают диапазон дат.
func (s *Storage) ListExpenses(ctx context.Context, userUID string, start, end *time.Time) ([]*models.Expense, error) {
	const op = "storage.ListExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT e.id, e.user_uid, e.category_id, e.amount_cents, e.description,
				  e.spent_on, e.created_at, e.status, c.name, c.color
			  FROM expenses e
			  JOIN categories c ON c.id = e.category_id
			  WHERE e.user_uid = $1
				AND e.status = $2
				AND ($3::date IS NULL OR e.spent_on >= $3)
				AND ($4::date IS NULL OR e.spent_on <= $4)
			  ORDER BY e.spent_on DESC, e.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID, models.StatusActive, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		var item models.Expense
		if err := rows.Scan(&item.ID, &item.UserUID, &item.CategoryID, &item.Amount,
			&item.Description, &item.SpentOn, &item.CreatedAt, &item.Status,
			&item.CategoryName, &item.CategoryColor); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateExpense частично обновляет активный расход пользователя:
// nil-поля сохраняют прежние значения. Возвращает число изменённых строк.
func (s *Storage) UpdateExpense(ctx context.Context, userUID, expenseID string,
	categoryID *string, amountCents *int64, description *string, spentOn *time.Time) (int, error) {
	const op = "storage.UpdateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE expenses
			  SET category_id = COALESCE($1, category_id),
			      amount_cents = COALESCE($2, amount_cents),
			      description = COALESCE($3, description),
			      spent_on = COALESCE($4, spent_on)
			  WHERE id = $5 AND user_uid = $6 AND status = $7`
	result, err := s.DB.ExecContext(ctx, query,
		categoryID, amountCents, description, spentOn, expenseID, userUID, models.StatusActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteExpense мягко удаляет активный расход пользователя и возвращает
// число изменённых строк.
func (s *Storage) DeleteExpense(ctx context.Context, userUID, expenseID string) (int, error) {
	const op = "storage.DeleteExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE expenses
			  SET status = $1
			  WHERE id = $2 AND user_uid = $3 AND status = $4`
	result, err := s.DB.ExecContext(ctx, query,
		models.StatusDeleted, expenseID, userUID, models.StatusActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SumExpenses подсчитывает сумму активных расходов пользователя в копейках
// за необязательный включительный диапазон дат.
func (s *Storage) SumExpenses(ctx context.Context, userUID string, start, end *time.Time) (int64, error) {
	const op = "storage.SumExpenses"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(amount_cents), 0)
			  FROM expenses
			  WHERE user_uid = $1
				AND status = $2
				AND ($3::date IS NULL OR spent_on >= $3)
				AND ($4::date IS NULL OR spent_on <= $4)`
	var total int64
	if err := s.DB.QueryRowContext(ctx, query,
		userUID, models.StatusActive, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
