package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/tradelink/backend/internal/application/catalog"
	notificationapp "github.com/tradelink/backend/internal/application/notification"
	orderapp "github.com/tradelink/backend/internal/application/order"
	rfqapp "github.com/tradelink/backend/internal/application/rfq"
	"github.com/tradelink/backend/internal/infrastructure/auth"
	"github.com/tradelink/backend/internal/infrastructure/cache"
	"github.com/tradelink/backend/internal/infrastructure/config"
	"github.com/tradelink/backend/internal/infrastructure/event"
	"github.com/tradelink/backend/internal/infrastructure/logger"
	"github.com/tradelink/backend/internal/infrastructure/notify"
	"github.com/tradelink/backend/internal/infrastructure/persistence"
	"github.com/tradelink/backend/internal/infrastructure/telemetry"
	"github.com/tradelink/backend/internal/interfaces/http/handler"
	"github.com/tradelink/backend/internal/interfaces/http/middleware"
	"github.com/tradelink/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TradeLink backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Repositories and transaction scope
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	rfqRepo := persistence.NewGormRFQRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	orderService := orderapp.NewService(txScope, orderRepo, log)
	rfqService := rfqapp.NewService(rfqRepo, productRepo, log)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	orderService.SetEventPublisher(eventBus)
	rfqService.SetEventPublisher(eventBus)

	// Notification fan-out
	if cfg.Notify.Enabled {
		storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(cfg.App.Env != "production"),
		)
		dedupStore, err := storeFactory.CreateStore()
		if err != nil {
			log.Fatal("Failed to create notification dedup store", zap.Error(err))
		}
		defer func() {
			if err := dedupStore.Close(); err != nil {
				log.Error("Error closing dedup store", zap.Error(err))
			}
		}()

		notifier := notify.NewLogNotifier(log)
		orderNotifications := notificationapp.NewOrderHandler(notifier, dedupStore, log)
		orderNotifications.SetDedupTTL(cfg.Notify.DedupTTL)
		rfqNotifications := notificationapp.NewRFQHandler(notifier, dedupStore, log)
		rfqNotifications.SetDedupTTL(cfg.Notify.DedupTTL)
		eventBus.Subscribe(orderNotifications)
		eventBus.Subscribe(rfqNotifications)

		log.Info("Notification handlers registered",
			zap.Strings("order_events", orderNotifications.EventTypes()),
			zap.Strings("rfq_events", rfqNotifications.EventTypes()),
		)
	}

	// HTTP handlers
	tokenService := auth.NewTokenService(cfg.JWT)
	orderHandler := handler.NewOrderHandler(orderService)
	rfqHandler := handler.NewRFQHandler(rfqService)
	productHandler := handler.NewProductHandler(productService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.ActorAuth(middleware.ActorAuthConfig{
		TokenService:        tokenService,
		AllowHeaderIdentity: cfg.App.Env != "production",
	}))
	r.Register(productHandler).
		Register(orderHandler).
		Register(rfqHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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
