package logout

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLogoutHandler_ServeHTTP(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil)
		ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()

		New(newNoopLogger()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp["status"])
		data := resp["data"].(map[string]any)
		assert.Equal(t, "logged out", data["message"])
	})

	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil)
		rec := httptest.NewRecorder()

		New(newNoopLogger()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
