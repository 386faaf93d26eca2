// Package expense содержит бизнес-логику для управления расходами.
//
// Ссылка расхода на категорию проверяется при каждой записи: категория должна
// существовать, быть активной и принадлежать тому же пользователю. Проверка
// выполняется перед записью без кросс-сущностной блокировки, поэтому мягкое
// удаление категории после создания расхода его не инвалидирует.
package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/errs"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/money"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// Repository определяет методы для работы с расходами в хранилище.
type Repository interface {
	CreateExpense(ctx context.Context, expense models.Expense) (string, error)
	GetExpense(ctx context.Context, userUID, expenseID string) (*models.Expense, error)
	ListExpenses(ctx context.Context, userUID string, start, end *time.Time) ([]*models.Expense, error)
	UpdateExpense(ctx context.Context, userUID, expenseID string,
		categoryID *string, amountCents *int64, description *string, spentOn *time.Time) (int, error)
	DeleteExpense(ctx context.Context, userUID, expenseID string) (int, error)
	SumExpenses(ctx context.Context, userUID string, start, end *time.Time) (int64, error)
}

// CategoryRepository покрывает проверку существования категории при записи.
type CategoryRepository interface {
	GetCategory(ctx context.Context, userUID, categoryID string) (*models.Category, error)
}

// Service реализует бизнес-логику работы с расходами.
type Service struct {
	repo       Repository
	categories CategoryRepository
	log        *slog.Logger
}

// New создаёт новый экземпляр Service.
func New(repo Repository, categories CategoryRepository, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		log:        log,
	}
}

// DateLayout — формат даты транзакции в запросах и ключах кеша.
const DateLayout = "2006-01-02"

// List возвращает активные расходы пользователя с данными категорий,
// опционально ограниченные включительным диапазоном дат.
func (s *Service) List(ctx context.Context, userUID string, start, end *time.Time) ([]*models.Expense, error) {
	return s.repo.ListExpenses(ctx, userUID, start, end)
}

// Get возвращает расход пользователя вместе с категорией или ошибку отсутствия.
func (s *Service) Get(ctx context.Context, userUID, expenseID string) (*models.Expense, error) {
	expense, err := s.repo.GetExpense(ctx, userUID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, errs.NotFound("expense not found")
	}
	return expense, nil
}

// Create создаёт новый расход.
//
// Сумма должна быть строго положительной, категория — активной и
// принадлежащей пользователю, дата транзакции — не в будущем.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyExpense) (*models.Expense, error) {
	if req.Amount <= 0 {
		return nil, errs.Validation("amount must be greater than zero")
	}
	if err := s.checkCategory(ctx, userUID, req.CategoryID); err != nil {
		return nil, err
	}

	spentOn, err := parseSpentOn(req.Date)
	if err != nil {
		return nil, err
	}

	expense := models.Expense{
		UserUID:     userUID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		SpentOn:     spentOn,
		Status:      models.StatusActive,
	}
	id, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new expense", slog.String("id", id))
	return s.repo.GetExpense(ctx, userUID, id)
}

// Update частично обновляет расход пользователя: меняются только переданные
// поля. Новая сумма обязана быть положительной, новая категория проходит
// ту же проверку владения, что и при создании.
func (s *Service) Update(ctx context.Context, userUID, expenseID string, req models.UpdateExpense) (*models.Expense, error) {
	current, err := s.repo.GetExpense(ctx, userUID, expenseID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errs.NotFound("expense not found")
	}

	if req.Amount != nil && *req.Amount <= 0 {
		return nil, errs.Validation("amount must be greater than zero")
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, userUID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	var amountCents *int64
	if req.Amount != nil {
		v := int64(*req.Amount)
		amountCents = &v
	}
	var spentOn *time.Time
	if req.Date != nil {
		parsed, err := parseSpentOn(*req.Date)
		if err != nil {
			return nil, err
		}
		spentOn = &parsed
	}

	if _, err := s.repo.UpdateExpense(ctx, userUID, expenseID,
		req.CategoryID, amountCents, req.Description, spentOn); err != nil {
		return nil, err
	}
	return s.repo.GetExpense(ctx, userUID, expenseID)
}

// Delete мягко удаляет расход пользователя. Отсутствующий или уже удалённый
// расход — ошибка отсутствия, а не тихий no-op.
func (s *Service) Delete(ctx context.Context, userUID, expenseID string) error {
	count, err := s.repo.DeleteExpense(ctx, userUID, expenseID)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NotFound("expense not found")
	}
	return nil
}

// TotalSpending возвращает сумму активных расходов пользователя за
// необязательный включительный диапазон дат.
func (s *Service) TotalSpending(ctx context.Context, userUID string, start, end *time.Time) (money.Cents, error) {
	total, err := s.repo.SumExpenses(ctx, userUID, start, end)
	if err != nil {
		return 0, err
	}
	return money.Cents(total), nil
}

// parseSpentOn разбирает дату транзакции и отклоняет будущие даты.
func parseSpentOn(value string) (time.Time, error) {
	spentOn, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errs.Validation("invalid date, expected format 2006-01-02")
	}
	if spentOn.After(time.Now()) {
		return time.Time{}, errs.Validation("date cannot be in the future")
	}
	return spentOn, nil
}

func (s *Service) checkCategory(ctx context.Context, userUID, categoryID string) error {
	category, err := s.categories.GetCategory(ctx, userUID, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return errs.Validation("category does not exist or does not belong to the user")
	}
	return nil
}
