// Package health реализует обработчик проверки готовности сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/storage/repository"
)

// New возвращает обработчик, отвечающий 200 OK, когда база данных готова
// принимать запросы, и 503 в противном случае.
func New(log *slog.Logger, db *repository.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := repository.CheckDatabaseReady(db); err != nil {
			log.Error("health check failed", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("database is not ready"))
			return
		}
		render.JSON(w, r, response.OKWithData(map[string]any{
			"status": "healthy",
		}))
	}
}
