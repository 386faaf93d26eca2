// Package sum реализует HTTP-обработчик подсчёта суммы расходов пользователя
// за необязательный включительный диапазон дат.
package sum

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
	"github.com/magabrotheeeer/expense-tracker/internal/lib/money"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
)

// Service описывает интерфейс подсчёта суммы расходов.
type Service interface {
	TotalSpending(ctx context.Context, userUID string, start, end *time.Time) (money.Cents, error)
}

// Handler обрабатывает запросы подсчёта суммы расходов.
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
// @Summary Сумма расходов
// @Description Возвращает сумму расходов пользователя за опциональный период.
// @Tags Expenses
// @Produce  json
// @Param start_date query string false "Начало периода (2006-01-02)"
// @Param end_date query string false "Конец периода (2006-01-02)"
// @Success 200 {object} map[string]any "Сумма расходов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /expenses/total [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.sum"

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

	total, err := h.service.TotalSpending(r.Context(), userUID, start, end)
	if err != nil {
		log.Error("failed to count total spending", sl.Err(err))
		w.WriteHeader(errs.HTTPStatus(err))
		render.JSON(w, r, response.Error(errs.Message(err)))
		return
	}

	log.Info("counted total spending", slog.String("total", total.String()))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"total": total,
	}))
}
