package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erp/paymentrouter/internal/application/authn"
	apppayments "github.com/erp/paymentrouter/internal/application/payments"
	appwebhooks "github.com/erp/paymentrouter/internal/application/webhooks"
	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/infrastructure/auth"
	"github.com/erp/paymentrouter/internal/infrastructure/cache"
	"github.com/erp/paymentrouter/internal/infrastructure/config"
	"github.com/erp/paymentrouter/internal/infrastructure/connectors/stripe"
	"github.com/erp/paymentrouter/internal/infrastructure/logger"
	"github.com/erp/paymentrouter/internal/infrastructure/persistence"
	"github.com/erp/paymentrouter/internal/infrastructure/pipeline"
	"github.com/erp/paymentrouter/internal/interfaces/http/middleware"
	"github.com/erp/paymentrouter/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting payment router",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Merchant accounts are read on every authenticated request but only
	// ever written by platform admin operations, so point lookups sit
	// behind a read-mostly in-process cache; any write flushes it rather
	// than tracking per-key invalidation.
	merchantAccounts := cache.NewCachedMerchantAccountRepository(
		persistence.NewGormMerchantAccountRepository(db.DB),
		5*time.Minute,
		10*time.Minute,
	)
	profiles := persistence.NewGormProfileRepository(db.DB)
	connectorAccounts := persistence.NewGormMerchantConnectorAccountRepository(db.DB)
	apiKeys := persistence.NewGormApiKeyRepository(db.DB)
	ephemeralKeys := persistence.NewRedisEphemeralKeyRepository(redisClient)

	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to initialize token blacklist", zap.Error(err))
	}

	// Platform-merchant delegation is enabled by default; a future
	// per-deployment toggle would come from cfg rather than this literal.
	resolver := authn.NewResolver(
		merchantAccounts,
		profiles,
		apiKeys,
		ephemeralKeys,
		jwtService,
		blacklist,
		cfg.Auth.AdminAPIKey,
		cfg.Auth.APIKeyHashSecret,
		true,
	)

	registry := connector.NewRegistry()
	registry.Register(stripe.New(stripe.Config{
		BaseURL:       cfg.Stripe.APIBaseURL,
		APIVersion:    cfg.Stripe.APIVersion,
		WebhookSecret: cfg.Stripe.WebhookSecret,
	}))

	idempotencyStore := cache.NewRedisIdempotencyStoreWithClient(redisClient, "attempt:")
	httpClient := &http.Client{Timeout: cfg.Stripe.RequestTimeout}
	retryPolicy := pipeline.DefaultRetryPolicy()

	paymentsService := apppayments.NewService(connectorAccounts, registry, idempotencyStore, httpClient, retryPolicy)
	// No webhook sink is wired yet: nothing in this deployment persists
	// or re-publishes classified events, so Dispatch verifies and
	// classifies without a downstream consumer.
	webhookDispatcher := appwebhooks.NewDispatcher(registry, nil)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Dependencies{
		Resolver:          resolver,
		PaymentsService:   paymentsService,
		WebhookDispatcher: webhookDispatcher,
		CORSConfig: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    middleware.DefaultCORSConfig().ExposeHeaders,
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		RequestTimeout: cfg.HTTP.ReadTimeout,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
