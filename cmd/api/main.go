package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/api/routes"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/admin"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/auth"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/catalog"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/conversations"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/images"
	products "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/products"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/users"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth/session"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/gst"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/logger"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/metrics"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/migrate"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gstVerifier := gst.NewFormatVerifier()
	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		GSTVerifier:    gstVerifier,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner:        dbClient,
		UserRepoFactory: auth.DefaultUserRepoFactory,
		GSTVerifier:     gstVerifier,
		Tokens:          authService,
		PasswordConfig:  cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	productRepo := products.NewRepository(dbClient.DB())
	pipeline := images.NewProcessor(cfg.Uploads, logg)
	productService, err := products.NewService(productRepo, dbClient, userRepo, pipeline)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	conversationRepo := conversations.NewRepository(dbClient.DB())
	conversationService, err := conversations.NewService(conversationRepo, dbClient, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create conversation service", err)
		os.Exit(1)
	}

	adminRepo := admin.NewRepository(dbClient.DB())
	adminService, err := admin.NewService(adminRepo, userRepo, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:        cfg,
		Logger:        logg,
		DB:            dbClient,
		Redis:         redisClient,
		Sessions:      sessionManager,
		HTTPMetrics:   httpMetrics,
		Gatherer:      registry,
		Auth:          authService,
		Register:      registerService,
		Users:         userService,
		Products:      productService,
		Catalog:       catalog.NewRepository(dbClient.DB()),
		Conversations: conversationService,
		Admin:         adminService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server stopped")
}
