// @title Binna API
// @version 1.0
// @description Construction marketplace backend: carts, orders, stores, projects and supervisors.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Supabase access token as "Bearer <token>". Browser clients use the session cookies instead.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/binna/binna-backend/config"
	"github.com/binna/binna-backend/db"
	_ "github.com/binna/binna-backend/docs"
	"github.com/binna/binna-backend/handlers"
	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/internal/events"
	"github.com/binna/binna-backend/internal/medusa"
	"github.com/binna/binna-backend/internal/storage"
	"github.com/binna/binna-backend/internal/store/postgres"
	"github.com/binna/binna-backend/internal/supabase"
	"github.com/binna/binna-backend/internal/websocket"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/middleware"
	"github.com/binna/binna-backend/pkg/valueobjects"
	"github.com/binna/binna-backend/router"
	"github.com/binna/binna-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	poolConfig, err := config.ConfigurePostgresPool(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to configure database pool: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(config.ConfigureRedisOptions(&cfg.Redis))
	if err := config.PingRedis(ctx, redisClient, 5, 2*time.Second); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer func() { _ = redisClient.Close() }()

	// Stores
	userStore := postgres.NewUserStore(pool)
	cartStore := postgres.NewCartStore(pool)
	orderStore := postgres.NewOrderStore(pool)
	productStore := postgres.NewProductStore(pool)
	projectStore := postgres.NewProjectStore(pool)
	storefrontStore := postgres.NewStorefrontStore(pool)
	supervisorStore := postgres.NewSupervisorStore(pool)
	warrantyStore := postgres.NewWarrantyStore(pool)
	invoiceStore := postgres.NewInvoiceStore(pool)

	// Authentication
	supabaseClient, err := supabase.NewClient(&cfg.Supabase)
	if err != nil {
		log.Fatalf("Failed to create Supabase client: %v", err)
	}
	jwtValidator, err := middleware.NewJWTValidator(&cfg.Supabase)
	if err != nil {
		log.Fatalf("Failed to create JWT validator: %v", err)
	}
	accountTypes := auth.NewAccountTypeResolver(redisClient,
		time.Duration(cfg.Supabase.AccountTypeTTL)*time.Second,
		supabaseClient,
		auth.AccountTypeSourceFunc(userStore.GetAccountType),
	)
	signer, err := auth.NewSessionSigner(cfg.Server.SessionSecret, cfg.Server.PreviousSessionSecret, cfg.Server.SessionDuration())
	if err != nil {
		log.Fatalf("Failed to create session signer: %v", err)
	}
	jar := auth.NewCookieJar(cfg.Server.CookieDomain, cfg.Server.SecureCookies, cfg.Server.SessionDuration())
	sessions := auth.NewSessionResolver(jwtValidator, supabaseClient, signer, accountTypes, jar)

	// Order events and background work
	publisher := events.NewRedisPublisher(redisClient, events.ConfigFrom(cfg.EventService))
	hub := websocket.NewHub(publisher)
	workerPool := services.NewWorkerPool(cfg.WorkerPool)
	workerPool.Start()

	// External services
	catalog := medusa.NewClient(cfg.Medusa,
		medusa.WithCache(redisClient, time.Duration(cfg.Medusa.CacheTTLSeconds)*time.Second))

	var files storage.FileStorage
	if cfg.Storage.Enabled {
		r2, err := storage.NewR2FileStorage(ctx, cfg.Storage)
		if err != nil {
			log.Errorw("Invoice storage unavailable, uploads disabled", "error", err)
		} else {
			files = r2
		}
	}

	mailer := services.NewEmailService(&cfg.Email)

	pricing, err := valueobjects.NewTaxPolicy(cfg.Commerce.Rate(), cfg.Commerce.Currency)
	if err != nil {
		log.Fatalf("Invalid commerce configuration: %v", err)
	}

	// Services
	authService := services.NewAuthService(supabaseClient, sessions, jwtValidator)
	cartService := services.NewCartService(cartStore, productStore, pricing)
	orderService := services.NewOrderService(orderStore, userStore, pricing, publisher, workerPool, mailer)
	dashboardService := services.NewDashboardService(orderStore, projectStore, cartStore, productStore,
		cfg.Commerce.Currency, cfg.Commerce.LowStockThreshold)
	storefrontService := services.NewStorefrontService(storefrontStore)

	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)
	healthService.SetPoolStats(func() (int32, int32) {
		stat := pool.Stat()
		return stat.AcquiredConns(), stat.MaxConns()
	})
	healthService.SetActiveConnectionsGetter(hub.ConnectionCount)

	r := router.SetupRouter(router.Dependencies{
		Config:       cfg,
		Sessions:     sessions,
		AccountTypes: accountTypes,
		Stores:       storefrontService,
		Redis:        redisClient,
		Logger:       log,

		AuthHandler:       handlers.NewAuthHandler(authService, sessions),
		HealthHandler:     handlers.NewHealthHandler(healthService),
		UserHandler:       handlers.NewUserHandler(services.NewUserService(userStore)),
		CartHandler:       handlers.NewCartHandler(cartService),
		OrderHandler:      handlers.NewOrderHandler(orderService),
		ProductHandler:    handlers.NewProductHandler(services.NewProductService(productStore)),
		DashboardHandler:  handlers.NewDashboardHandler(dashboardService),
		ProjectHandler:    handlers.NewProjectHandler(services.NewProjectService(projectStore, supervisorStore)),
		StorefrontHandler: handlers.NewStorefrontHandler(storefrontService),
		SupervisorHandler: handlers.NewSupervisorHandler(services.NewSupervisorService(supervisorStore)),
		WarrantyHandler:   handlers.NewWarrantyHandler(services.NewWarrantyService(warrantyStore, orderStore)),
		InvoiceHandler: handlers.NewInvoiceHandler(
			services.NewInvoiceService(invoiceStore, orderStore, files, cfg.Storage.MaxUploadBytes)),
		AdminHandler:  handlers.NewAdminHandler(catalog),
		StreamHandler: websocket.NewHandler(hub, &cfg.Server),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Infow("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("Server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.WorkerPool.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	// Websocket connections are hijacked, so the hub closes them itself.
	if err := hub.Shutdown(shutdownCtx); err != nil {
		log.Warnw("Websocket hub shutdown incomplete", "error", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("HTTP server shutdown incomplete", "error", err)
	}
	if err := workerPool.Shutdown(shutdownCtx); err != nil {
		log.Warnw("Worker pool shutdown incomplete", "error", err)
	}
	if err := publisher.Shutdown(shutdownCtx); err != nil {
		log.Warnw("Event publisher shutdown incomplete", "error", err)
	}
	log.Info("Shutdown complete")
}
