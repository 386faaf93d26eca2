// Package summary реализует HTTP-обработчик сводки трат пользователя.
//
// Сводка отдаётся из кеша, если она посчитана в последние десять минут;
// свежие изменения расходов внутри этого окна в ответе не отражаются.
package summary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/query"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/errs"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики сводки трат.
type Service interface {
	GetSummary(ctx context.Context, userUID string, start, end *time.Time) (*models.Summary, error)
}

// Handler обрабатывает запросы сводки трат.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка трат
// @Description Возвращает общий итог, средний размер транзакции и разбивку по категориям за опциональный период.
// @Tags Expenses
// @Produce  json
// @Param start_date query string false "Начало периода (2006-01-02)"
// @Param end_date query string false "Конец периода (2006-01-02)"
// @Success 200 {object} models.Summary "Сводка трат"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /expenses/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	start, end, err := query.ParseDateRange(r)
	if err != nil {
		log.Error("failed to parse date range", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid date range"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.GetSummary(r.Context(), userUID, start, end)
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		w.WriteHeader(errs.HTTPStatus(err))
		render.JSON(w, r, response.Error(errs.Message(err)))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"summary": result,
	}))
}
