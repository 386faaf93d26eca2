package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/errs"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

type Service interface {
	Get(ctx context.Context, userUID, categoryID string) (*models.Category, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает категорию пользователя по её ID.
// Чужая или удалённая категория неотличима от несуществующей: 404.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	categoryID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(categoryID); err != nil {
		log.Error("invalid category id", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("category not found"))
		return
	}

	category, err := h.service.Get(r.Context(), userUID, categoryID)
	if err != nil {
		log.Error("failed to read category", sl.Err(err))
		w.WriteHeader(errs.HTTPStatus(err))
		render.JSON(w, r, response.Error(errs.Message(err)))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"category": category,
	}))
}
