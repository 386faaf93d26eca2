package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, email, passwordHash string) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, email, password_hash, is_active)
		VALUES ($1, $2, $3, TRUE)`,
		uid, email, passwordHash)
	require.NoError(t, err)
	return uid
}

// CreateCategory создает тестовую категорию и возвращает её ID
func (f *TestDataFactory) CreateCategory(t *testing.T, userUID, name, color, status string) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO categories (id, user_uid, name, color, status)
		VALUES ($1, $2, $3, $4, $5)`,
		id, userUID, name, color, status)
	require.NoError(t, err)
	return id
}

// CreateExpense создает тестовый расход и возвращает его ID
func (f *TestDataFactory) CreateExpense(t *testing.T, userUID, categoryID string,
	amountCents int64, description string, spentOn time.Time, status string) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO expenses
		(id, user_uid, category_id, amount_cents, description, spent_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, userUID, categoryID, amountCents, description, spentOn, status)
	require.NoError(t, err)
	return id
}

// VerifyStatus проверяет статус записи в таблице table по id
func (f *TestDataFactory) VerifyStatus(t *testing.T, table, id, expectedStatus string) {
	var status string
	err := f.storage.DB.QueryRow("SELECT status FROM "+table+" WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}
