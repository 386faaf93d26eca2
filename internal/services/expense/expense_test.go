package expense

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/errs"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/money"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateExpense(ctx context.Context, expense models.Expense) (string, error) {
	args := m.Called(ctx, expense)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetExpense(ctx context.Context, userUID, expenseID string) (*models.Expense, error) {
	args := m.Called(ctx, userUID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}
func (m *RepoMock) ListExpenses(ctx context.Context, userUID string, start, end *time.Time) ([]*models.Expense, error) {
	args := m.Called(ctx, userUID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}
func (m *RepoMock) UpdateExpense(ctx context.Context, userUID, expenseID string,
	categoryID *string, amountCents *int64, description *string, spentOn *time.Time) (int, error) {
	args := m.Called(ctx, userUID, expenseID, categoryID, amountCents, description, spentOn)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) DeleteExpense(ctx context.Context, userUID, expenseID string) (int, error) {
	args := m.Called(ctx, userUID, expenseID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) SumExpenses(ctx context.Context, userUID string, start, end *time.Time) (int64, error) {
	args := m.Called(ctx, userUID, start, end)
	return args.Get(0).(int64), args.Error(1)
}

type CategoriesMock struct{ mock.Mock }

func (m *CategoriesMock) GetCategory(ctx context.Context, userUID, categoryID string) (*models.Category, error) {
	args := m.Called(ctx, userUID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestExpenseService_Create(t *testing.T) {
	category := &models.Category{ID: "cat-1", UserUID: "uid-1", Name: "Groceries", Status: models.StatusActive}
	stored := &models.Expense{ID: "exp-1", UserUID: "uid-1", CategoryID: "cat-1", Amount: 25000}

	tests := []struct {
		name       string
		req        models.DummyExpense
		setupMocks func(r *RepoMock, c *CategoriesMock)
		wantErrIs  error
	}{
		{
			name: "success",
			req:  models.DummyExpense{CategoryID: "cat-1", Amount: 25000, Description: "weekly shop", Date: "2026-08-20"},
			setupMocks: func(r *RepoMock, c *CategoriesMock) {
				c.On("GetCategory", mock.Anything, "uid-1", "cat-1").Return(category, nil).Once()
				r.On("CreateExpense", mock.Anything, mock.MatchedBy(func(e models.Expense) bool {
					return e.UserUID == "uid-1" &&
						e.Amount == money.Cents(25000) &&
						e.SpentOn.Format(DateLayout) == "2026-08-20" &&
						e.Status == models.StatusActive
				})).Return("exp-1", nil).Once()
				r.On("GetExpense", mock.Anything, "uid-1", "exp-1").Return(stored, nil).Once()
			},
		},
		{
			name:      "non-positive amount",
			req:       models.DummyExpense{CategoryID: "cat-1", Amount: 0, Date: "2026-08-20"},
			wantErrIs: errs.ErrValidation,
		},
		{
			name: "foreign or missing category",
			req:  models.DummyExpense{CategoryID: "cat-x", Amount: 100, Date: "2026-08-20"},
			setupMocks: func(_ *RepoMock, c *CategoriesMock) {
				c.On("GetCategory", mock.Anything, "uid-1", "cat-x").Return(nil, nil).Once()
			},
			wantErrIs: errs.ErrValidation,
		},
		{
			name: "invalid date",
			req:  models.DummyExpense{CategoryID: "cat-1", Amount: 100, Date: "20-08-2026"},
			setupMocks: func(_ *RepoMock, c *CategoriesMock) {
				c.On("GetCategory", mock.Anything, "uid-1", "cat-1").Return(category, nil).Once()
			},
			wantErrIs: errs.ErrValidation,
		},
		{
			name: "date in the future",
			req: models.DummyExpense{CategoryID: "cat-1", Amount: 100,
				Date: time.Now().AddDate(0, 0, 2).Format(DateLayout)},
			setupMocks: func(_ *RepoMock, c *CategoriesMock) {
				c.On("GetCategory", mock.Anything, "uid-1", "cat-1").Return(category, nil).Once()
			},
			wantErrIs: errs.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			categories := new(CategoriesMock)
			if tt.setupMocks != nil {
				tt.setupMocks(repo, categories)
			}
			svc := New(repo, categories, newNoopLogger())

			got, err := svc.Create(context.Background(), "uid-1", tt.req)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "exp-1", got.ID)
			}
			repo.AssertExpectations(t)
			categories.AssertExpectations(t)
		})
	}
}

func TestExpenseService_Get(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetExpense", mock.Anything, "uid-1", "missing").Return(nil, nil).Once()

	svc := New(repo, new(CategoriesMock), newNoopLogger())
	_, err := svc.Get(context.Background(), "uid-1", "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestExpenseService_Update(t *testing.T) {
	current := &models.Expense{ID: "exp-1", UserUID: "uid-1", CategoryID: "cat-1", Amount: 100}
	newAmount := money.Cents(500)
	badAmount := money.Cents(-1)
	newCategory := "cat-2"
	futureDate := time.Now().AddDate(0, 0, 2).Format(DateLayout)

	tests := []struct {
		name       string
		req        models.UpdateExpense
		setupMocks func(r *RepoMock, c *CategoriesMock)
		wantErrIs  error
	}{
		{
			name: "amount only",
			req:  models.UpdateExpense{Amount: &newAmount},
			setupMocks: func(r *RepoMock, _ *CategoriesMock) {
				r.On("GetExpense", mock.Anything, "uid-1", "exp-1").Return(current, nil).Once()
				r.On("UpdateExpense", mock.Anything, "uid-1", "exp-1",
					(*string)(nil), mock.MatchedBy(func(v *int64) bool { return v != nil && *v == 500 }),
					(*string)(nil), (*time.Time)(nil)).Return(1, nil).Once()
				r.On("GetExpense", mock.Anything, "uid-1", "exp-1").
					Return(&models.Expense{ID: "exp-1", Amount: 500}, nil).Once()
			},
		},
		{
			name: "non-positive amount",
			req:  models.UpdateExpense{Amount: &badAmount},
			setupMocks: func(r *RepoMock, _ *CategoriesMock) {
				r.On("GetExpense", mock.Anything, "uid-1", "exp-1").Return(current, nil).Once()
			},
			wantErrIs: errs.ErrValidation,
		},
		{
			name: "new category is foreign",
			req:  models.UpdateExpense{CategoryID: &newCategory},
			setupMocks: func(r *RepoMock, c *CategoriesMock) {
				r.On("GetExpense", mock.Anything, "uid-1", "exp-1").Return(current, nil).Once()
				c.On("GetCategory", mock.Anything, "uid-1", "cat-2").Return(nil, nil).Once()
			},
			wantErrIs: errs.ErrValidation,
		},
		{
			name: "date in the future",
			req:  models.UpdateExpense{Date: &futureDate},
			setupMocks: func(r *RepoMock, _ *CategoriesMock) {
				r.On("GetExpense", mock.Anything, "uid-1", "exp-1").Return(current, nil).Once()
			},
			wantErrIs: errs.ErrValidation,
		},
		{
			name: "not found",
			req:  models.UpdateExpense{Amount: &newAmount},
			setupMocks: func(r *RepoMock, _ *CategoriesMock) {
				r.On("GetExpense", mock.Anything, "uid-1", "exp-1").Return(nil, nil).Once()
			},
			wantErrIs: errs.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			categories := new(CategoriesMock)
			tt.setupMocks(repo, categories)
			svc := New(repo, categories, newNoopLogger())

			got, err := svc.Update(context.Background(), "uid-1", "exp-1", tt.req)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
			} else {
				require.NoError(t, err)
				assert.Equal(t, money.Cents(500), got.Amount)
			}
			repo.AssertExpectations(t)
			categories.AssertExpectations(t)
		})
	}
}

func TestExpenseService_Delete(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeleteExpense", mock.Anything, "uid-1", "exp-1").Return(1, nil).Once()
	repo.On("DeleteExpense", mock.Anything, "uid-1", "missing").Return(0, nil).Once()

	svc := New(repo, new(CategoriesMock), newNoopLogger())

	require.NoError(t, svc.Delete(context.Background(), "uid-1", "exp-1"))

	err := svc.Delete(context.Background(), "uid-1", "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestExpenseService_TotalSpending(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	repo.On("SumExpenses", mock.Anything, "uid-1", &start, &end).Return(int64(123456), nil).Once()

	svc := New(repo, new(CategoriesMock), newNoopLogger())
	total, err := svc.TotalSpending(context.Background(), "uid-1", &start, &end)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(123456), total)
	repo.AssertExpectations(t)
}
