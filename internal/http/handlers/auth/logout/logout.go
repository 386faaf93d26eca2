// Package logout реализует HTTP-обработчик завершения сессии.
//
// Сессии выпускаются как самодостаточные JWT и на сервере не хранятся,
// поэтому обработчик лишь подтверждает выход; клиент после этого
// удаляет токен у себя. Токен остаётся формально валидным до истечения
// срока действия.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
)

// Handler обрабатывает HTTP-запросы на выход из системы.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler с указанным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Завершает сессию. Сессии без состояния, токен удаляется на клиенте.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Успешный выход"
// @Failure 401 {object} response.ErrorResponse "Неверный токен"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

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

	log.Info("logout", slog.String("user_uid", userUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "logged out",
	}))
}
