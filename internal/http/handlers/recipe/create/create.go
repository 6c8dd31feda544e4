// Package create реализует HTTP-обработчик для создания новых рецептов.
//
// Handler принимает JSON-запрос с данными рецепта, валидирует их, извлекает
// имя и роль пользователя из контекста, вызывает бизнес-логику создания
// рецепта через сервис и возвращает созданный рецепт в JSON-формате.
// Владельцем по умолчанию становится действующий пользователь.
package create

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/wavezodium/cookmaster/internal/http/middlewarectx"
	"github.com/wavezodium/cookmaster/internal/http/response"
	"github.com/wavezodium/cookmaster/internal/lib/sl"
	"github.com/wavezodium/cookmaster/internal/models"
	recipeservice "github.com/wavezodium/cookmaster/internal/services/recipe"
)

// Service описывает интерфейс бизнес-логики создания рецепта.
type Service interface {
	Create(callerUsername, callerRole string, req models.DummyRecipe) (*models.Recipe, error)
}

// Handler управляет HTTP-запросами на создание новых рецептов.
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
// @Summary Создать новый рецепт
// @Description Создает новый рецепт. Владелец — текущий пользователь; администратор может указать поле owner.
// @Tags Recipes
// @Accept  json
// @Produce  json
// @Param request body models.DummyRecipe true "Данные нового рецепта"
// @Success 200 {object} map[string]any "Созданный рецепт"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /recipes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRecipe
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	recipe, err := h.service.Create(username, role, req)
	if err != nil {
		switch {
		case errors.Is(err, recipeservice.ErrBadCategory):
			log.Error("unknown category", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("unknown recipe category"))
		case errors.Is(err, recipeservice.ErrOwnerNotFound):
			log.Error("owner not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("owner not found"))
		default:
			log.Error("failed to create recipe", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create recipe"))
		}
		return
	}

	log.Info("recipe created", slog.String("uid", recipe.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipe": recipe,
	}))
}
