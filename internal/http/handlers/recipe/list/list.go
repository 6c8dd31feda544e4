// Package list реализует HTTP-обработчик списка рецептов с фильтрацией.
//
// Параметры запроса: search — подстрока без учёта регистра (по названию,
// категории и имени владельца), category — точная категория, date — календарный
// день создания в формате 02-01-2006. Все условия объединяются по И.
// Администратор видит все рецепты, пользователь — только свои.
package list

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/wavezodium/cookmaster/internal/http/middlewarectx"
	"github.com/wavezodium/cookmaster/internal/http/response"
	"github.com/wavezodium/cookmaster/internal/lib/sl"
	"github.com/wavezodium/cookmaster/internal/models"
)

// Service описывает интерфейс бизнес-логики фильтрации рецептов.
type Service interface {
	Filter(callerUID, callerRole string, filter models.RecipeFilter) []*models.Recipe
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
	const op = "handlers.recipe.list"

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

	filter := models.RecipeFilter{
		Query: r.URL.Query().Get("search"),
	}
	if categoryStr := r.URL.Query().Get("category"); categoryStr != "" {
		category, ok := models.ParseCategory(categoryStr)
		if !ok {
			log.Error("unknown category in query", slog.String("category", categoryStr))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("unknown recipe category"))
			return
		}
		filter.Category = category
	}
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.ParseInLocation("02-01-2006", dateStr, time.Local)
		if err != nil {
			log.Error("invalid date in query", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid date, expected format 02-01-2006"))
			return
		}
		filter.CreatedOn = &date
	}

	recipes := h.service.Filter(callerUID, role, filter)

	log.Info("list recipes", slog.Int("count", len(recipes)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(recipes),
		"recipes":    recipes,
	}))
}
