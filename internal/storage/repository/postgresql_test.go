package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/money"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

func setupTestDb(t *testing.T) *Storage {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	t.Cleanup(func() {
		_ = postgresContainer.Terminate(ctx)
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	t.Cleanup(func() {
		_ = storage.DB.Close()
	})

	_, err = storage.DB.Exec(`
        CREATE EXTENSION IF NOT EXISTS pgcrypto;

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email VARCHAR(255) NOT NULL,
            password_hash TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            last_login_at TIMESTAMPTZ
        );

        CREATE UNIQUE INDEX users_email_active_uniq
            ON users (LOWER(email)) WHERE is_active;

        CREATE TABLE categories (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_uid UUID NOT NULL REFERENCES users (uid),
            name VARCHAR(100) NOT NULL,
            color VARCHAR(7) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'deleted'))
        );

        CREATE TABLE expenses (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_uid UUID NOT NULL REFERENCES users (uid),
            category_id UUID NOT NULL REFERENCES categories (id),
            amount_cents BIGINT NOT NULL CHECK (amount_cents > 0),
            description VARCHAR(500) NOT NULL DEFAULT '',
            spent_on DATE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'deleted'))
        );
    `)
	require.NoError(t, err, "failed to create tables")

	return storage
}

func TestStorage_Users(t *testing.T) {
	storage := setupTestDb(t)
	ctx := context.Background()

	uid, err := storage.RegisterUser(ctx, models.User{
		Email:        "user@example.com",
		PasswordHash: "hashed",
		IsActive:     true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	t.Run("get active user by email is case-insensitive", func(t *testing.T) {
		user, err := storage.GetActiveUserByEmail(ctx, "USER@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, uid, user.UID)
		assert.Equal(t, "user@example.com", user.Email)
	})

	t.Run("absent email returns nil without error", func(t *testing.T) {
		user, err := storage.GetActiveUserByEmail(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("duplicate active email is rejected by index", func(t *testing.T) {
		_, err := storage.RegisterUser(ctx, models.User{
			Email:        "User@Example.com",
			PasswordHash: "hashed",
			IsActive:     true,
		})
		assert.Error(t, err)
	})

	t.Run("update last login", func(t *testing.T) {
		err := storage.UpdateLastLogin(ctx, uid, time.Now().UTC())
		require.NoError(t, err)

		user, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		require.NotNil(t, user.LastLoginAt)
	})
}

func TestStorage_Categories(t *testing.T) {
	storage := setupTestDb(t)
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	owner := factory.CreateUser(t, "owner@example.com", "hashed")
	other := factory.CreateUser(t, "other@example.com", "hashed")

	id, err := storage.CreateCategory(ctx, models.Category{
		UserUID: owner,
		Name:    "Groceries",
		Color:   "#FF5733",
		Status:  models.StatusActive,
	})
	require.NoError(t, err)

	t.Run("get own category", func(t *testing.T) {
		category, err := storage.GetCategory(ctx, owner, id)
		require.NoError(t, err)
		require.NotNil(t, category)
		assert.Equal(t, "Groceries", category.Name)
	})

	t.Run("foreign category is invisible", func(t *testing.T) {
		category, err := storage.GetCategory(ctx, other, id)
		require.NoError(t, err)
		assert.Nil(t, category)
	})

	t.Run("name uniqueness check is case-insensitive and scoped to owner", func(t *testing.T) {
		exists, err := storage.ExistsCategoryName(ctx, owner, "groceries", "")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = storage.ExistsCategoryName(ctx, other, "groceries", "")
		require.NoError(t, err)
		assert.False(t, exists)

		// Собственное имя при обновлении не считается занятым.
		exists, err = storage.ExistsCategoryName(ctx, owner, "groceries", id)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		newName := "Food"
		count, err := storage.UpdateCategory(ctx, owner, id, &newName, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		category, err := storage.GetCategory(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, "Food", category.Name)
		assert.Equal(t, "#FF5733", category.Color)
	})

	t.Run("soft delete hides category from reads", func(t *testing.T) {
		count, err := storage.DeleteCategory(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		category, err := storage.GetCategory(ctx, owner, id)
		require.NoError(t, err)
		assert.Nil(t, category)

		// Строка осталась в таблице со статусом deleted.
		factory.VerifyStatus(t, "categories", id, models.StatusDeleted)

		// Повторное удаление — ноль изменённых строк.
		count, err = storage.DeleteCategory(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestStorage_Expenses(t *testing.T) {
	storage := setupTestDb(t)
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	owner := factory.CreateUser(t, "owner@example.com", "hashed")
	other := factory.CreateUser(t, "other@example.com", "hashed")
	categoryID := factory.CreateCategory(t, owner, "Groceries", "#FF5733", models.StatusActive)

	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}

	first, err := storage.CreateExpense(ctx, models.Expense{
		UserUID:     owner,
		CategoryID:  categoryID,
		Amount:      money.Cents(10000),
		Description: "weekly shop",
		SpentOn:     day(10),
	})
	require.NoError(t, err)

	second, err := storage.CreateExpense(ctx, models.Expense{
		UserUID:    owner,
		CategoryID: categoryID,
		Amount:     money.Cents(2500),
		SpentOn:    day(20),
	})
	require.NoError(t, err)

	t.Run("get expense joins category data", func(t *testing.T) {
		expense, err := storage.GetExpense(ctx, owner, first)
		require.NoError(t, err)
		require.NotNil(t, expense)
		assert.Equal(t, money.Cents(10000), expense.Amount)
		assert.Equal(t, "Groceries", expense.CategoryName)
		assert.Equal(t, "#FF5733", expense.CategoryColor)
	})

	t.Run("foreign expense is invisible", func(t *testing.T) {
		expense, err := storage.GetExpense(ctx, other, first)
		require.NoError(t, err)
		assert.Nil(t, expense)
	})

	t.Run("list orders by date descending", func(t *testing.T) {
		expenses, err := storage.ListExpenses(ctx, owner, nil, nil)
		require.NoError(t, err)
		require.Len(t, expenses, 2)
		assert.Equal(t, second, expenses[0].ID)
		assert.Equal(t, first, expenses[1].ID)
	})

	t.Run("list respects inclusive date range", func(t *testing.T) {
		start, end := day(10), day(15)
		expenses, err := storage.ListExpenses(ctx, owner, &start, &end)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, first, expenses[0].ID)
	})

	t.Run("sum with and without range", func(t *testing.T) {
		total, err := storage.SumExpenses(ctx, owner, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(12500), total)

		start := day(15)
		total, err = storage.SumExpenses(ctx, owner, &start, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), total)
	})

	t.Run("partial update changes only provided fields", func(t *testing.T) {
		amount := int64(9900)
		count, err := storage.UpdateExpense(ctx, owner, first, nil, &amount, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		expense, err := storage.GetExpense(ctx, owner, first)
		require.NoError(t, err)
		assert.Equal(t, money.Cents(9900), expense.Amount)
		assert.Equal(t, "weekly shop", expense.Description)
	})

	t.Run("expense survives soft-deleted category", func(t *testing.T) {
		count, err := storage.DeleteCategory(ctx, owner, categoryID)
		require.NoError(t, err)
		require.Equal(t, 1, count)

		expense, err := storage.GetExpense(ctx, owner, first)
		require.NoError(t, err)
		require.NotNil(t, expense)
		assert.Equal(t, "Groceries", expense.CategoryName)
	})

	t.Run("soft delete excludes expense from list and sum", func(t *testing.T) {
		count, err := storage.DeleteExpense(ctx, owner, second)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		expenses, err := storage.ListExpenses(ctx, owner, nil, nil)
		require.NoError(t, err)
		require.Len(t, expenses, 1)

		total, err := storage.SumExpenses(ctx, owner, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(9900), total)

		factory.VerifyStatus(t, "expenses", second, models.StatusDeleted)
	})
}
