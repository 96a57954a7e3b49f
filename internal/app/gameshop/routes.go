// Package gameshop предоставляет маршруты для основного приложения.
package gameshop

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/avdeevalex/gameshop/internal/http/handlers/admin/dashboard"
	"github.com/avdeevalex/gameshop/internal/http/handlers/auth/login"
	"github.com/avdeevalex/gameshop/internal/http/handlers/auth/logout"
	"github.com/avdeevalex/gameshop/internal/http/handlers/auth/profile"
	"github.com/avdeevalex/gameshop/internal/http/handlers/auth/register"
	"github.com/avdeevalex/gameshop/internal/http/handlers/catalog/addproduct"
	"github.com/avdeevalex/gameshop/internal/http/handlers/catalog/deactivate"
	cataloglist "github.com/avdeevalex/gameshop/internal/http/handlers/catalog/list"
	"github.com/avdeevalex/gameshop/internal/http/handlers/catalog/read"
	newscreate "github.com/avdeevalex/gameshop/internal/http/handlers/news/create"
	newslist "github.com/avdeevalex/gameshop/internal/http/handlers/news/list"
	newsremove "github.com/avdeevalex/gameshop/internal/http/handlers/news/remove"
	ordercancel "github.com/avdeevalex/gameshop/internal/http/handlers/order/cancel"
	ordercreate "github.com/avdeevalex/gameshop/internal/http/handlers/order/create"
	orderlist "github.com/avdeevalex/gameshop/internal/http/handlers/order/list"
	orderlistall "github.com/avdeevalex/gameshop/internal/http/handlers/order/listall"
	orderupdatestatus "github.com/avdeevalex/gameshop/internal/http/handlers/order/updatestatus"
	"github.com/avdeevalex/gameshop/internal/http/middlewarectx"
	authservice "github.com/avdeevalex/gameshop/internal/services/auth"
	catalogservice "github.com/avdeevalex/gameshop/internal/services/catalog"
	newsservice "github.com/avdeevalex/gameshop/internal/services/news"
	orderservice "github.com/avdeevalex/gameshop/internal/services/order"
	statsservice "github.com/avdeevalex/gameshop/internal/services/stats"

	"log/slog"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, maxBodyBytes int64,
	auth *authservice.AuthService,
	catalog *catalogservice.CatalogService,
	orders *orderservice.OrderService,
	news *newsservice.NewsService,
	stats *statsservice.StatsService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.BodyLimitMiddleware(maxBodyBytes),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, auth).ServeHTTP)
		r.Post("/login", login.New(logger, auth).ServeHTTP)
		r.Get("/products", cataloglist.New(logger, catalog).ServeHTTP)
		r.Get("/products/{id}", read.New(logger, catalog).ServeHTTP)
		r.Get("/news", newslist.New(logger, news).ServeHTTP)

		// Группа с аутентификацией по токену сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, auth).ServeHTTP)
			r.Get("/me", profile.New(logger, orders).ServeHTTP)
			r.Post("/orders", ordercreate.New(logger, orders).ServeHTTP)
			r.Get("/orders", orderlist.New(logger, orders).ServeHTTP)
			r.Post("/orders/{token}/cancel", ordercancel.New(logger, orders).ServeHTTP)

			// Группа для администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Post("/admin/products", addproduct.New(logger, catalog).ServeHTTP)
				r.Delete("/admin/products/{id}", deactivate.New(logger, catalog).ServeHTTP)
				r.Get("/admin/orders", orderlistall.New(logger, orders).ServeHTTP)
				r.Post("/admin/orders/{id}/status", orderupdatestatus.New(logger, orders).ServeHTTP)
				r.Post("/admin/news", newscreate.New(logger, news).ServeHTTP)
				r.Delete("/admin/news/{id}", newsremove.New(logger, news).ServeHTTP)
				r.Get("/admin/dashboard", dashboard.New(logger, stats).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
