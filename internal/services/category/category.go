// Package category содержит бизнес-логику для управления категориями расходов.
//
// Все операции принимают идентификатор пользователя, извлечённый из
// проверенного токена, и никогда — из тела запроса клиента.
package category

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/errs"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// Repository определяет методы для работы с категориями в хранилище.
type Repository interface {
	CreateCategory(ctx context.Context, category models.Category) (string, error)
	GetCategory(ctx context.Context, userUID, categoryID string) (*models.Category, error)
	ListCategories(ctx context.Context, userUID string) ([]*models.Category, error)
	ExistsCategoryName(ctx context.Context, userUID, name, excludeID string) (bool, error)
	UpdateCategory(ctx context.Context, userUID, categoryID string, name, color *string) (int, error)
	DeleteCategory(ctx context.Context, userUID, categoryID string) (int, error)
}

// Service реализует бизнес-логику работы с категориями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// List возвращает активные категории пользователя по имени по возрастанию.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Category, error) {
	return s.repo.ListCategories(ctx, userUID)
}

// Get возвращает категорию пользователя или ошибку отсутствия.
func (s *Service) Get(ctx context.Context, userUID, categoryID string) (*models.Category, error) {
	category, err := s.repo.GetCategory(ctx, userUID, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errs.NotFound("category not found")
	}
	return category, nil
}

// Create создаёт новую категорию. Имя должно быть уникальным среди активных
// категорий пользователя без учёта регистра.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyCategory) (*models.Category, error) {
	exists, err := s.repo.ExistsCategoryName(ctx, userUID, req.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Validation("category with this name already exists")
	}

	category := models.Category{
		UserUID: userUID,
		Name:    req.Name,
		Color:   req.Color,
		Status:  models.StatusActive,
	}
	id, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new category", slog.String("id", id))
	return s.repo.GetCategory(ctx, userUID, id)
}

// Update частично обновляет категорию пользователя: меняются только
// переданные поля. При смене имени уникальность проверяется заново.
func (s *Service) Update(ctx context.Context, userUID, categoryID string, req models.UpdateCategory) (*models.Category, error) {
	current, err := s.repo.GetCategory(ctx, userUID, categoryID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errs.NotFound("category not found")
	}

	if req.Name != nil {
		exists, err := s.repo.ExistsCategoryName(ctx, userUID, *req.Name, categoryID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.Validation("category with this name already exists")
		}
	}

	if _, err := s.repo.UpdateCategory(ctx, userUID, categoryID, req.Name, req.Color); err != nil {
		return nil, err
	}
	return s.repo.GetCategory(ctx, userUID, categoryID)
}

// Delete мягко удаляет категорию пользователя. Ссылающиеся расходы остаются
// нетронутыми. Отсутствующая или уже удалённая категория — ошибка отсутствия,
// а не тихий no-op.
func (s *Service) Delete(ctx context.Context, userUID, categoryID string) error {
	count, err := s.repo.DeleteCategory(ctx, userUID, categoryID)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NotFound("category not found")
	}
	return nil
}
