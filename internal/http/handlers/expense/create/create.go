// Package create реализует HTTP-обработчик для создания новых расходов пользователя.
//
// Handler принимает JSON-запрос с данными расхода, валидирует их, извлекает
// идентификатор пользователя из контекста, вызывает бизнес-логику создания
// расхода через сервис и возвращает созданную запись в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/errs"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики создания расхода.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyExpense) (*models.Expense, error)
}

// Handler управляет HTTP-запросами на создание расходов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новый расход
// @Description Создает расход для текущего пользователя. Категория должна принадлежать ему и быть активной.
// @Tags Expenses
// @Accept  json
// @Produce  json
// @Param request body models.DummyExpense true "Данные нового расхода"
// @Success 200 {object} map[string]any "Созданный расход"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /expenses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyExpense
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	expense, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to create expense", sl.Err(err))
		w.WriteHeader(errs.HTTPStatus(err))
		render.JSON(w, r, response.Error(errs.Message(err)))
		return
	}

	log.Info("created expense", slog.String("id", expense.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"expense": expense,
	}))
}
