// Package expensetracker предоставляет маршруты для основного приложения.
package expensetracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/register"
	categorycreate "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/category/create"
	categorylist "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/category/list"
	categoryread "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/category/read"
	categoryremove "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/category/remove"
	categoryupdate "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/category/update"
	expensecreate "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/create"
	expenselist "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/list"
	expenseread "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/read"
	expenseremove "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/remove"
	expensesum "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/sum"
	expensesummary "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/summary"
	expenseupdate "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/update"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/expense-tracker/internal/services/auth"
	categoryservice "github.com/magabrotheeeer/expense-tracker/internal/services/category"
	expenseservice "github.com/magabrotheeeer/expense-tracker/internal/services/expense"
	summaryservice "github.com/magabrotheeeer/expense-tracker/internal/services/summary"
	"github.com/magabrotheeeer/expense-tracker/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authService *authservice.Service,
	categoryService *categoryservice.Service,
	expenseService *expenseservice.Service,
	summaryService *summaryservice.Service,
) {
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

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/logout", logout.New(logger).ServeHTTP)

			r.Post("/categories", categorycreate.New(logger, categoryService).ServeHTTP)
			r.Get("/categories", categorylist.New(logger, categoryService).ServeHTTP)
			r.Get("/categories/{id}", categoryread.New(logger, categoryService).ServeHTTP)
			r.Put("/categories/{id}", categoryupdate.New(logger, categoryService).ServeHTTP)
			r.Delete("/categories/{id}", categoryremove.New(logger, categoryService).ServeHTTP)

			r.Post("/expenses", expensecreate.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses", expenselist.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/total", expensesum.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/summary", expensesummary.New(logger, summaryService).ServeHTTP)
			r.Get("/expenses/{id}", expenseread.New(logger, expenseService).ServeHTTP)
			r.Put("/expenses/{id}", expenseupdate.New(logger, expenseService).ServeHTTP)
			r.Delete("/expenses/{id}", expenseremove.New(logger, expenseService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db))
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
