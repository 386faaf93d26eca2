package remove

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/errs"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Delete(ctx context.Context, userUID, categoryID string) error {
	return m.Called(ctx, userUID, categoryID).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func doRequest(t *testing.T, handler http.Handler, categoryID string, withUser bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+categoryID, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", categoryID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if withUser {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRemoveHandler_ServeHTTP(t *testing.T) {
	const categoryID = "3a7e5d1b-2c4f-4e6a-9b8d-0f1e2d3c4b5a"
	const missingID = "8d6c4b2a-0f9e-4d7c-b5a3-1e2f3a4b5c6d"

	t.Run("success", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Delete", mock.Anything, "uid-1", categoryID).Return(nil).Once()

		rec := doRequest(t, New(newNoopLogger(), svcMock), categoryID, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		svcMock.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Delete", mock.Anything, "uid-1", missingID).
			Return(errs.NotFound("category not found")).Once()

		rec := doRequest(t, New(newNoopLogger(), svcMock), missingID, true)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svcMock.AssertExpectations(t)
	})

	t.Run("malformed id", func(t *testing.T) {
		svcMock := new(ServiceMock)

		rec := doRequest(t, New(newNoopLogger(), svcMock), "42", true)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svcMock.AssertNotCalled(t, "Delete")
	})

	t.Run("no user in context", func(t *testing.T) {
		svcMock := new(ServiceMock)

		rec := doRequest(t, New(newNoopLogger(), svcMock), categoryID, false)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svcMock.AssertNotCalled(t, "Delete")
	})
}
