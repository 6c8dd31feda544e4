// Package resetpassword реализует HTTP-обработчик восстановления пароля
// по ответу на контрольный вопрос. Маршрут открытый: пользователь, забывший
// пароль, не авторизован. Неверное имя и неверный ответ неразличимы в ответе.
package resetpassword

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/wavezodium/cookmaster/internal/http/response"
	"github.com/wavezodium/cookmaster/internal/lib/sl"
)

// Request — входные данные для восстановления пароля.
type Request struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	SecurityAnswer string `json:"security_answer" validate:"required"`
	NewPassword    string `json:"new_password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики восстановления пароля.
type Service interface {
	ResetPassword(username, securityAnswer, newPassword string) error
}

// Handler обрабатывает HTTP-запросы восстановления пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ResetPassword(req.Username, req.SecurityAnswer, req.NewPassword); err != nil {
		log.Error("failed to reset password", sl.Err(err))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("could not reset password"))
		return
	}

	log.Info("password reset", slog.String("username", req.Username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "password reset successfully",
	}))
}
