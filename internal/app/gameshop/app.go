package gameshop

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/avdeevalex/gameshop/internal/cache"
	"github.com/avdeevalex/gameshop/internal/config"
	"github.com/avdeevalex/gameshop/internal/lib/rabbitmq"
	"github.com/avdeevalex/gameshop/internal/lib/sl"
	"github.com/avdeevalex/gameshop/internal/migrations"
	"github.com/avdeevalex/gameshop/internal/sessions"
	"github.com/avdeevalex/gameshop/internal/storage/repository"

	authservice "github.com/avdeevalex/gameshop/internal/services/auth"
	catalogservice "github.com/avdeevalex/gameshop/internal/services/catalog"
	newsservice "github.com/avdeevalex/gameshop/internal/services/news"
	orderservice "github.com/avdeevalex/gameshop/internal/services/order"
	statsservice "github.com/avdeevalex/gameshop/internal/services/stats"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	rabbit *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	sessionStore := sessions.NewStore(cacheRedis.Db)

	// Брокер необязателен: без него магазин работает, события не публикуются.
	var events orderservice.EventPublisher
	var rabbitConn *amqp.Connection
	if cfg.RabbitConnection.URL != "" {
		conn, publisher, err := rabbitmq.Connect(cfg.RabbitConnection.URL, cfg.RabbitConnection.OrderExchange)
		if err != nil {
			logger.Warn("rabbitmq is unavailable, order events disabled", sl.Err(err))
		} else {
			events = publisher
			rabbitConn = conn
		}
	}

	authService := authservice.NewAuthService(db, sessionStore, cfg.Sessions, logger)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	orderService := orderservice.NewOrderService(db, db, events, logger)
	newsService := newsservice.NewNewsService(db, logger)
	statsService := statsservice.NewStatsService(db)

	if cfg.AdminUsername != "" {
		rows, err := db.PromoteAdmin(ctx, cfg.AdminUsername)
		if err != nil {
			return nil, err
		}
		if rows > 0 {
			logger.Info("promoted user to admin", slog.String("username", cfg.AdminUsername))
		}
	}

	router := chi.NewRouter()

	RegisterRoutes(router, logger, cfg.MaxUploadSize, authService, catalogService, orderService, newsService, statsService)

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
		rabbit: rabbitConn,
	}, nil
}

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
		if a.rabbit != nil {
			_ = a.rabbit.Close()
		}
		return err
	}
}
