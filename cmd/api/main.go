package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/omnistock/stock-ledger-service/config"
	"github.com/omnistock/stock-ledger-service/internal/audit"
	"github.com/omnistock/stock-ledger-service/internal/auth"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/platform/broker"
	"github.com/omnistock/stock-ledger-service/internal/platform/cache"
	"github.com/omnistock/stock-ledger-service/internal/platform/postgres"
	"go.uber.org/zap"

	catalogRepoPkg "github.com/omnistock/stock-ledger-service/internal/catalog/repository"

	invH "github.com/omnistock/stock-ledger-service/internal/inventory/handler"
	invListenerPkg "github.com/omnistock/stock-ledger-service/internal/inventory/listener"
	invRepoPkg "github.com/omnistock/stock-ledger-service/internal/inventory/repository"
	invUCPkg "github.com/omnistock/stock-ledger-service/internal/inventory/usecase"

	orderH "github.com/omnistock/stock-ledger-service/internal/order/handler"
	orderRepoPkg "github.com/omnistock/stock-ledger-service/internal/order/repository"
	orderUCPkg "github.com/omnistock/stock-ledger-service/internal/order/usecase"

	storeRepoPkg "github.com/omnistock/stock-ledger-service/internal/store/repository"
	storeUCPkg "github.com/omnistock/stock-ledger-service/internal/store/usecase"

	unitH "github.com/omnistock/stock-ledger-service/internal/unit/handler"
	unitRepoPkg "github.com/omnistock/stock-ledger-service/internal/unit/repository"
	unitUCPkg "github.com/omnistock/stock-ledger-service/internal/unit/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis (unit cache; the service degrades to DB reads without it)
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("could not connect to Redis, unit cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. Initialize Kafka (audit producer + order events consumer)
	auditProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.AuditTopic,
	})
	defer auditProducer.Close()

	orderConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.OrdersTopic,
		GroupID: cfg.Kafka.ConsumerGroup,
	})
	defer orderConsumer.Close()
	appLogger.Info("connected to Kafka",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("orders_topic", cfg.Kafka.OrdersTopic),
		zap.String("audit_topic", cfg.Kafka.AuditTopic),
	)

	auditor := audit.NewKafkaRecorder(auditProducer, appLogger)

	// 6. Initialize Repositories
	unitRepo := unitRepoPkg.NewPGRepository(db)
	storeRepo := storeRepoPkg.NewPGRepository(db)
	catalogRepo := catalogRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)

	// 7. Initialize UseCases
	unitUC := unitUCPkg.NewUnitUseCase(unitRepo, redisClient, appLogger)
	scopeResolver := storeUCPkg.NewScopeResolver(storeRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, catalogRepo, unitUC, scopeResolver, auditor, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, catalogRepo, unitUC, invUC, scopeResolver, auditor, appLogger)

	// 8. Start Order Events Listener
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orderListener := invListenerPkg.NewOrderListener(orderConsumer, invUC, appLogger)
	go orderListener.Start(ctx)

	// 9. Initialize Handlers and Router
	unitHandler := unitH.NewUnitHandler(unitUC, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)

	if logConfig.IsDevelopment {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(auth.Middleware())
	unitHandler.RegisterRoutes(api)
	invHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)

	// 10. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	appLogger.Info("starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
