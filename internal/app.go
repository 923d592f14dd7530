package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"

	"listing-service/internal/adapters/favorites_store"
	"listing-service/internal/adapters/filestore"
	"listing-service/internal/adapters/listing_client"
	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/adapters/memory"
	mongo_adapter "listing-service/internal/adapters/mongo"
	postgres_adapter "listing-service/internal/adapters/postgres"
	rabbitmq_adapter "listing-service/internal/adapters/rabbitmq"
	redis_adapter "listing-service/internal/adapters/redis"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/configs"
	"listing-service/internal/contracts"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"
	"listing-service/schemas"
	fluentlogger "listing-service/pkg/fluent_logger"
	mongo_client "listing-service/pkg/mongo"
	"listing-service/pkg/postgres"
	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"
	redis_client "listing-service/pkg/redis"
)

const connectTimeout = 10 * time.Second

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	// закрываются в обратном порядке при остановке
	closers []namedCloser

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

type namedCloser struct {
	name  string
	close func() error
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: !appConfig.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	app := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	// --- 3. КОНТРАКТЫ И АДАПТЕРЫ ---
	registry, err := contracts.NewRegistry(schemas.SchemasFS)
	if err != nil {
		appLogger.Error("Failed to compile JSON schemas", err, nil)
		return nil, app.abort(fmt.Errorf("failed to compile JSON schemas: %w", err))
	}

	var validator listing_client.ResponseValidator
	if appConfig.ListingAPI.ValidateResponses {
		validator = registry
	}
	listingClient := listing_client.NewListingServiceAPIClient(appConfig.ListingAPI.URL, appConfig.ListingAPI.Timeout, validator)

	kv, err := app.newKeyValueStore()
	if err != nil {
		appLogger.Error("Failed to initialize favorites storage", err, port.Fields{"backend": appConfig.Favorites.Backend})
		return nil, app.abort(err)
	}
	favoritesStore, err := favorites_store.NewStore(kv)
	if err != nil {
		return nil, app.abort(err)
	}
	appLogger.Info("Favorites storage initialized", port.Fields{"backend": appConfig.Favorites.Backend})

	trigger, err := app.newTranslationTrigger(registry, baseLogger)
	if err != nil {
		appLogger.Error("Failed to initialize translation trigger", err, nil)
		return nil, app.abort(err)
	}

	// --- 4. USE CASES ---
	listProperties := usecase.NewListPropertiesUseCase(listingClient, favoritesStore)
	sessions := usecase.NewListingSessions(listProperties, appConfig.Sessions.IdleTTL)

	handlers := rest.Handlers{
		Listings: rest.NewListingsHandler(sessions),
		Favorites: rest.NewFavoritesHandler(
			usecase.NewAddToFavoritesUseCase(favoritesStore),
			usecase.NewRemoveFromFavoritesUseCase(favoritesStore),
			usecase.NewIsFavoriteUseCase(favoritesStore),
			usecase.NewGetFavoritesIdsUseCase(favoritesStore),
		),
		Translations: rest.NewTranslationsHandler(usecase.NewRequestTranslationUseCase(trigger)),
	}

	app.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.Port,
		AllowedOrigins: appConfig.Rest.AllowedOrigins,
	}, handlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return app, nil
}

// newKeyValueStore поднимает хранилище избранного выбранного типа.
func (a *App) newKeyValueStore() (port.KeyValuePort, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	switch a.config.Favorites.Backend {
	case configs.BackendFile:
		return filestore.NewKeyValueStore(a.config.Favorites.Dir)

	case configs.BackendRedis:
		client, err := redis_client.NewClient(ctx, redis_client.Config{
			Addr:     a.config.Redis.Addr,
			Password: a.config.Redis.Password,
			DB:       a.config.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.addCloser("redis client", client.Close)
		return redis_adapter.NewKeyValueStore(client)

	case configs.BackendPostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: a.config.Database.URL})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		a.addCloser("PostgreSQL pool", func() error { pool.Close(); return nil })

		store, err := postgres_adapter.NewPostgresKeyValueStore(pool)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare kv_store table: %w", err)
		}
		return store, nil

	case configs.BackendMongo:
		client, db, err := mongo_client.NewClient(ctx, mongo_client.Config{
			URI:      a.config.Mongo.URI,
			Database: a.config.Mongo.Database,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		a.addCloser("mongo client", func() error { return client.Disconnect(context.Background()) })
		return mongo_adapter.NewKeyValueStore(db)

	default:
		return memory.NewKeyValueStore(), nil
	}
}

func (a *App) newTranslationTrigger(validator rabbitmq_adapter.EventValidator, baseLogger port.LoggerPort) (port.TranslationTriggerPort, error) {
	cfg := a.config.RabbitMQ
	if !cfg.Enabled {
		a.logger.Warn("RabbitMQ is disabled, translation requests will be dropped", nil)
		return rabbitmq_adapter.NoopTranslationTrigger{}, nil
	}

	pkgLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))
	manager, err := rabbitmq_common.NewManager(rabbitmq_common.Config{URL: cfg.URL}, pkgLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	a.addCloser("RabbitMQ connection", manager.Close)

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: cfg.URL},
		ExchangeName:             cfg.Exchange,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   pkgLogger,
	}, manager)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation producer: %w", err)
	}
	a.addCloser("translation producer", producer.Close)

	return rabbitmq_adapter.NewRabbitMQTranslationTrigger(producer, validator, cfg.RoutingKey)
}

func (a *App) addCloser(name string, fn func() error) {
	a.closers = append(a.closers, namedCloser{name: name, close: fn})
}

// abort освобождает уже созданные ресурсы, если сборка приложения не удалась.
func (a *App) abort(err error) error {
	a.closeResources()
	return err
}

func (a *App) closeResources() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			a.logger.Error("Failed to close resource", err, port.Fields{"resource": c.name})
			continue
		}
		a.logger.Info("Resource closed.", port.Fields{"resource": c.name})
	}
	a.closers = nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.closeResources()
		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// fluent может быть уже недоступен, пишем в stdout
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
		return err
	}

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
