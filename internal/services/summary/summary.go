// Package summary содержит кешируемый расчёт сводки трат пользователя.
//
// Сводка считается по активным расходам при промахе кеша и хранится с
// фиксированным TTL. Хуков инвалидации при изменении расходов нет: внутри
// окна TTL возможно чтение устаревшей сводки — осознанный размен свежести
// на масштабируемость чтений. Конкурентные промахи по одному ключу могут
// посчитать сводку дважды; значение детерминировано, последняя запись
// побеждает.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/money"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// ExpenseRepository покрывает чтение расходов, нужное для расчёта сводки.
type ExpenseRepository interface {
	ListExpenses(ctx context.Context, userUID string, start, end *time.Time) ([]*models.Expense, error)
}

// Cache описывает методы для кеширования сводок.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service реализует расчёт и кеширование сводок трат.
type Service struct {
	repo  ExpenseRepository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New создаёт новый экземпляр Service с заданным TTL кеша.
func New(repo ExpenseRepository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

const dateLayout = "2006-01-02"

// CacheKey строит ключ кеша из идентификатора пользователя и границ
// диапазона; отсутствующая граница кодируется словом "all".
func CacheKey(userUID string, start, end *time.Time) string {
	startPart, endPart := "all", "all"
	if start != nil {
		startPart = start.Format(dateLayout)
	}
	if end != nil {
		endPart = end.Format(dateLayout)
	}
	return fmt.Sprintf("summary:%s:%s:%s", userUID, startPart, endPart)
}

// GetSummary возвращает сводку трат пользователя за необязательный
// включительный диапазон дат.
//
// При попадании в кеш возвращается сохранённый снимок; при промахе сводка
// считается по всем активным расходам пользователя, отфильтрованным по
// диапазону, и кладётся в кеш с TTL сервиса.
func (s *Service) GetSummary(ctx context.Context, userUID string, start, end *time.Time) (*models.Summary, error) {
	key := CacheKey(userUID, start, end)

	var cached models.Summary
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read summary from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	expenses, err := s.repo.ListExpenses(ctx, userUID, nil, nil)
	if err != nil {
		return nil, err
	}

	result := compute(expenses, start, end)

	if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
		s.log.Warn("failed to cache summary", slog.String("key", key), sl.Err(err))
	}
	return result, nil
}

// compute агрегирует расходы в пределах диапазона: общий итог, средний размер
// транзакции и разбивку по категориям в порядке первого появления.
func compute(expenses []*models.Expense, start, end *time.Time) *models.Summary {
	result := &models.Summary{
		ByCategory: []models.CategorySummary{},
	}

	index := make(map[string]int)
	var count int
	for _, e := range expenses {
		if start != nil && e.SpentOn.Before(*start) {
			continue
		}
		if end != nil && e.SpentOn.After(*end) {
			continue
		}

		result.TotalSpending += e.Amount
		count++

		i, ok := index[e.CategoryID]
		if !ok {
			i = len(result.ByCategory)
			index[e.CategoryID] = i
			result.ByCategory = append(result.ByCategory, models.CategorySummary{
				CategoryID:   e.CategoryID,
				CategoryName: e.CategoryName,
			})
		}
		result.ByCategory[i].Total += e.Amount
		result.ByCategory[i].Count++
	}

	if count > 0 {
		result.AverageTransaction = money.Cents(int64(result.TotalSpending) / int64(count))
	}
	return result
}
