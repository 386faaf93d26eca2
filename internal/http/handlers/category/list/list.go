package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/errs"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Category, error)
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.list"

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

	categories, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		w.WriteHeader(errs.HTTPStatus(err))
		render.JSON(w, r, response.Error(errs.Message(err)))
		return
	}

	log.Info("list categories", slog.Int("count", len(categories)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":      len(categories),
		"categories": categories,
	}))
}
