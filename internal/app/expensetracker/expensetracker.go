// Package expensetracker собирает приложение учёта расходов: хранилище,
// кеш, сервисы и HTTP-сервер.
package expensetracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/expense-tracker/internal/cache"
	"github.com/magabrotheeeer/expense-tracker/internal/config"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/expense-tracker/internal/migrations"
	authservice "github.com/magabrotheeeer/expense-tracker/internal/services/auth"
	categoryservice "github.com/magabrotheeeer/expense-tracker/internal/services/category"
	expenseservice "github.com/magabrotheeeer/expense-tracker/internal/services/expense"
	summaryservice "github.com/magabrotheeeer/expense-tracker/internal/services/summary"
	"github.com/magabrotheeeer/expense-tracker/internal/storage/repository"
)

// App хранит HTTP-сервер и подключения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает приложение: подключается к базе, применяет миграции,
// поднимает кеш и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.New(db, jwtMaker, logger)
	categoryService := categoryservice.New(db, logger)
	expenseService := expenseservice.New(db, db, logger)
	summaryService := summaryservice.New(db, cacheRedis, cfg.SummaryCacheTTL, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, db, authService, categoryService, expenseService, summaryService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и ждет завершения контекста для
// корректной остановки.
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
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.cache.Db.Close()
		return err
	}
}
