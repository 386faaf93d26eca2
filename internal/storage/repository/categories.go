package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// CreateCategory вставляет новую категорию и возвращает её ID.
func (s *Storage) CreateCategory(ctx context.Context, category models.Category) (string, error) {
	const op = "storage.CreateCategory"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO categories (user_uid, name, color, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		category.UserUID, category.Name, category.Color, models.StatusActive).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetCategory возвращает активную категорию по ID, принадлежащую пользователю.
// Отсутствие, чужое владение и мягкое удаление неразличимы: (nil, nil).
func (s *Storage) GetCategory(ctx context.Context, userUID, categoryID string) (*models.Category, error) {
	const op = "storage.GetCategory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, color, created_at, status
			  FROM categories
			  WHERE id = $1 AND user_uid = $2 AND status = $3`
	row := s.DB.QueryRowContext(ctx, query, categoryID, userUID, models.StatusActive)

	var result models.Category
	if err := row.Scan(&result.ID, &result.UserUID, &result.Name, &result.Color,
		&result.CreatedAt, &result.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListCategories возвращает активные категории пользователя,
// отсортированные по имени по возрастанию.
func (s *Storage) ListCategories(ctx context.Context, userUID string) ([]*models.Category, error) {
	const op = "storage.ListCategories"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, color, created_at, status
			  FROM categories
			  WHERE user_uid = $1 AND status = $2
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query, userUID, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Category
	for rows.Next() {
		var item models.Category
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Name, &item.Color,
			&item.CreatedAt, &item.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ExistsCategoryName проверяет, есть ли у пользователя активная категория
// с таким именем без учёта регистра. excludeID исключает из проверки саму
// обновляемую категорию (пустая строка — не исключать ничего).
func (s *Storage) ExistsCategoryName(ctx context.Context, userUID, name, excludeID string) (bool, error) {
	const op = "storage.ExistsCategoryName"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
				  SELECT 1 FROM categories
				  WHERE user_uid = $1
					AND LOWER(name) = LOWER($2)
					AND status = $3
					AND ($4 = '' OR id <> $4::uuid)
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query,
		userUID, name, models.StatusActive, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UpdateCategory частично обновляет активную категорию пользователя:
// nil-поля сохраняют прежние значения. Возвращает число изменённых строк.
func (s *Storage) UpdateCategory(ctx context.Context, userUID, categoryID string, name, color *string) (int, error) {
	const op = "storage.UpdateCategory"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE categories
			  SET name = COALESCE($1, name),
			      color = COALESCE($2, color)
			  WHERE id = $3 AND user_uid = $4 AND status = $5`
	result, err := s.DB.ExecContext(ctx, query, name, color, categoryID, userUID, models.StatusActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteCategory мягко удаляет активную категорию пользователя и возвращает
// число изменённых строк. Ссылающиеся расходы не затрагиваются.
func (s *Storage) DeleteCategory(ctx context.Context, userUID, categoryID string) (int, error) {
	const op = "storage.DeleteCategory"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE categories
			  SET status = $1
			  WHERE id = $2 AND user_uid = $3 AND status = $4`
	result, err := s.DB.ExecContext(ctx, query,
		models.StatusDeleted, categoryID, userUID, models.StatusActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
