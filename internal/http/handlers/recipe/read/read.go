// Package read реализует HTTP-обработчик для получения конкретного рецепта по UID.
//
// Handler извлекает UID из URL-параметров, проверяет право доступа
// "владелец или администратор" через сервис и возвращает рецепт в JSON-формате.
package read

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/wavezodium/cookmaster/internal/http/middlewarectx"
	"github.com/wavezodium/cookmaster/internal/http/response"
	"github.com/wavezodium/cookmaster/internal/lib/sl"
	"github.com/wavezodium/cookmaster/internal/models"
	recipeservice "github.com/wavezodium/cookmaster/internal/services/recipe"
)

// Service описывает интерфейс бизнес-логики чтения рецепта.
type Service interface {
	Read(callerUID, callerRole, uid string) (*models.Recipe, error)
}

// Handler обрабатывает запросы на получение рецепта по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить рецепт
// @Description Возвращает рецепт по UID. Доступ: владелец или администратор.
// @Tags Recipes
// @Produce  json
// @Param id path string true "UID рецепта"
// @Success 200 {object} map[string]any "Рецепт"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет доступа"
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Router /recipes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	callerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || callerUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	uid := chi.URLParam(r, "id")
	recipe, err := h.service.Read(callerUID, role, uid)
	if err != nil {
		switch {
		case errors.Is(err, recipeservice.ErrNotFound):
			log.Error("recipe not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("recipe not found"))
		case errors.Is(err, recipeservice.ErrForbidden):
			log.Error("access denied", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
		default:
			log.Error("failed to read recipe", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read recipe"))
		}
		return
	}

	log.Info("recipe fetched", slog.String("uid", recipe.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipe": recipe,
	}))
}
