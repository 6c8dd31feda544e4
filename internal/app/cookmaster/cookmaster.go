package cookmaster

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/wavezodium/cookmaster/internal/config"
	"github.com/wavezodium/cookmaster/internal/lib/jwt"
	"github.com/wavezodium/cookmaster/internal/registry"
	authservice "github.com/wavezodium/cookmaster/internal/services/auth"
	recipeservice "github.com/wavezodium/cookmaster/internal/services/recipe"
	userservice "github.com/wavezodium/cookmaster/internal/services/user"
)

// App связывает реестры, сервисы и HTTP-сервер приложения.
//
// Состояние живёт только в памяти процесса: реестры заполняются
// идемпотентным сидированием при старте и теряются при остановке.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	users   *registry.Users
	recipes *registry.Recipes
}

// New собирает приложение: создаёт и сидирует реестры, строит сервисы
// и маршруты, настраивает HTTP-сервер.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	users := registry.NewUsers()
	users.SeedDefaults()

	recipes := registry.NewRecipes()
	recipes.SeedDefaults(users)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(users, jwtMaker)
	userService := userservice.NewUserService(users, recipes, logger)
	recipeService := recipeservice.NewRecipeService(recipes, users, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, userService, recipeService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		users:   users,
		recipes: recipes,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// либо ошибки сервера. Остановка выполняется с graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
