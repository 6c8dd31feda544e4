// Package copyrecipe реализует HTTP-обработчик копирования рецепта.
// Копия получает новый идентификатор и свежие даты, содержимое сохраняется.
package copyrecipe

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

// Service описывает интерфейс бизнес-логики копирования рецепта.
type Service interface {
	Duplicate(callerUID, callerRole, uid string) (*models.Recipe, error)
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
	const op = "handlers.recipe.copy"

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
	recipe, err := h.service.Duplicate(callerUID, role, uid)
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
			log.Error("failed to copy recipe", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not copy recipe"))
		}
		return
	}

	log.Info("recipe copied", slog.String("source_uid", uid), slog.String("uid", recipe.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipe": recipe,
	}))
}
