// Package cookmaster предоставляет маршруты для основного приложения.
package cookmaster

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/wavezodium/cookmaster/internal/http/handlers/auth/changepassword"
	"github.com/wavezodium/cookmaster/internal/http/handlers/auth/login"
	"github.com/wavezodium/cookmaster/internal/http/handlers/auth/logout"
	"github.com/wavezodium/cookmaster/internal/http/handlers/auth/register"
	"github.com/wavezodium/cookmaster/internal/http/handlers/auth/resetpassword"
	"github.com/wavezodium/cookmaster/internal/http/handlers/recipe/copyrecipe"
	"github.com/wavezodium/cookmaster/internal/http/handlers/recipe/create"
	"github.com/wavezodium/cookmaster/internal/http/handlers/recipe/health"
	"github.com/wavezodium/cookmaster/internal/http/handlers/recipe/list"
	"github.com/wavezodium/cookmaster/internal/http/handlers/recipe/read"
	"github.com/wavezodium/cookmaster/internal/http/handlers/recipe/remove"
	"github.com/wavezodium/cookmaster/internal/http/handlers/recipe/update"
	"github.com/wavezodium/cookmaster/internal/http/handlers/user/userget"
	"github.com/wavezodium/cookmaster/internal/http/handlers/user/userlist"
	"github.com/wavezodium/cookmaster/internal/http/handlers/user/userremove"
	"github.com/wavezodium/cookmaster/internal/http/handlers/user/userupdate"
	"github.com/wavezodium/cookmaster/internal/http/middlewarectx"
	authservice "github.com/wavezodium/cookmaster/internal/services/auth"
	recipeservice "github.com/wavezodium/cookmaster/internal/services/recipe"
	userservice "github.com/wavezodium/cookmaster/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, userService *userservice.UserService, recipeService *recipeservice.RecipeService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/password/reset", resetpassword.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/logout", logout.New(logger, authService).ServeHTTP)
			r.Post("/password/change", changepassword.New(logger, authService).ServeHTTP)

			r.Get("/users", userlist.New(logger, userService).ServeHTTP)
			r.Get("/users/{username}", userget.New(logger, userService).ServeHTTP)
			r.Put("/users/{username}", userupdate.New(logger, userService).ServeHTTP)
			r.Delete("/users/{username}", userremove.New(logger, userService).ServeHTTP)

			r.Post("/recipes", create.New(logger, recipeService).ServeHTTP)
			r.Get("/recipes", list.New(logger, recipeService).ServeHTTP)
			r.Get("/recipes/{id}", read.New(logger, recipeService).ServeHTTP)
			r.Put("/recipes/{id}", update.New(logger, recipeService).ServeHTTP)
			r.Delete("/recipes/{id}", remove.New(logger, recipeService).ServeHTTP)
			r.Post("/recipes/{id}/copy", copyrecipe.New(logger, recipeService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
