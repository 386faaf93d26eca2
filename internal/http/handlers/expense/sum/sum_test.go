package sum

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/money"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) TotalSpending(ctx context.Context, userUID string, start, end *time.Time) (money.Cents, error) {
	args := m.Called(ctx, userUID, start, end)
	return args.Get(0).(money.Cents), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSumHandler_ServeHTTP(t *testing.T) {
	t.Run("success without range", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("TotalSpending", mock.Anything, "uid-1", (*time.Time)(nil), (*time.Time)(nil)).
			Return(money.Cents(123456), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/total", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
		rec := httptest.NewRecorder()

		New(newNoopLogger(), svcMock).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		assert.Equal(t, float64(1234.56), data["total"])
		svcMock.AssertExpectations(t)
	})

	t.Run("success with range", func(t *testing.T) {
		start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		svcMock := new(ServiceMock)
		svcMock.On("TotalSpending", mock.Anything, "uid-1", &start, &end).
			Return(money.Cents(5000), nil).Once()

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/expenses/total?start_date=2026-08-01&end_date=2026-08-31", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
		rec := httptest.NewRecorder()

		New(newNoopLogger(), svcMock).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svcMock.AssertExpectations(t)
	})

	t.Run("end before start", func(t *testing.T) {
		svcMock := new(ServiceMock)

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/expenses/total?start_date=2026-08-31&end_date=2026-08-01", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
		rec := httptest.NewRecorder()

		New(newNoopLogger(), svcMock).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svcMock.AssertNotCalled(t, "TotalSpending")
	})

	t.Run("no user in context", func(t *testing.T) {
		svcMock := new(ServiceMock)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/total", nil)
		rec := httptest.NewRecorder()

		New(newNoopLogger(), svcMock).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
