package router

import (
	"time"

	"github.com/binna/binna-backend/config"
	"github.com/binna/binna-backend/handlers"
	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/internal/websocket"
	"github.com/binna/binna-backend/middleware"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	maxStreamsPerUser = 5
	streamSlotTTL     = 12 * time.Hour
)

// SessionProvider authenticates API calls and resolves page sessions.
// *auth.SessionResolver implements it.
type SessionProvider interface {
	middleware.Authenticator
	middleware.PageSessions
}

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config       *config.Config
	Sessions     SessionProvider
	AccountTypes *auth.AccountTypeResolver
	Stores       middleware.StoreLookup
	Redis        redis.UniversalClient
	Logger       *zap.SugaredLogger

	AuthHandler       *handlers.AuthHandler
	HealthHandler     *handlers.HealthHandler
	UserHandler       *handlers.UserHandler
	CartHandler       *handlers.CartHandler
	OrderHandler      *handlers.OrderHandler
	ProductHandler    *handlers.ProductHandler
	DashboardHandler  *handlers.DashboardHandler
	ProjectHandler    *handlers.ProjectHandler
	StorefrontHandler *handlers.StorefrontHandler
	SupervisorHandler *handlers.SupervisorHandler
	WarrantyHandler   *handlers.WarrantyHandler
	InvoiceHandler    *handlers.InvoiceHandler
	AdminHandler      *handlers.AdminHandler
	StreamHandler     *websocket.Handler
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()
	if err := r.SetTrustedProxies(deps.Config.Server.TrustedProxies); err != nil {
		deps.Logger.Warnw("Invalid trusted proxy list, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	r.Use(middleware.MetricsMiddleware())
	// Page navigations only; API and infrastructure paths pass through.
	r.Use(middleware.PageGate(deps.Sessions))

	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !deps.Config.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		loginLimiter := middleware.AuthRateLimiter(deps.Redis,
			deps.Config.RateLimit.AuthRequestsPerMinute,
			time.Duration(deps.Config.RateLimit.WindowSeconds)*time.Second)

		authRoutes.POST("/login", loginLimiter, deps.AuthHandler.Login)
		authRoutes.POST("/sync-login", loginLimiter, deps.AuthHandler.SyncLogin)
		authRoutes.POST("/refresh", deps.AuthHandler.Refresh)
		authRoutes.POST("/logout", deps.AuthHandler.Logout)
		authRoutes.GET("/session", deps.AuthHandler.Session)
		authRoutes.GET("/gate", deps.AuthHandler.Gate)
	}

	// Public catalogue
	api.GET("/products", deps.ProductHandler.ListProducts)
	api.GET("/products/:id", deps.ProductHandler.GetProduct)
	api.GET("/stores", deps.StorefrontHandler.ListStores)
	api.GET("/stores/:id", deps.StorefrontHandler.GetStore)
	api.GET("/supervisors", deps.SupervisorHandler.ListSupervisors)
	api.GET("/supervisors/:id", deps.SupervisorHandler.GetSupervisor)
	api.GET("/construction-categories", deps.ProjectHandler.ListCategories)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.Sessions))
	{
		authed.GET("/users/me", deps.UserHandler.GetMe)
		authed.PUT("/users/me", deps.UserHandler.UpdateMe)

		cart := authed.Group("/cart")
		{
			cart.GET("", deps.CartHandler.GetCart)
			cart.POST("", deps.CartHandler.AddItem)
			cart.DELETE("", deps.CartHandler.Clear)
			cart.PUT("/:itemId", deps.CartHandler.UpdateItem)
			cart.DELETE("/:itemId", deps.CartHandler.RemoveItem)
		}

		orders := authed.Group("/orders")
		{
			orders.POST("/checkout", deps.OrderHandler.Checkout)
			orders.GET("", deps.OrderHandler.ListOrders)
			orders.GET("/:id", deps.OrderHandler.GetOrder)
			orders.POST("/:id/cancel", deps.OrderHandler.CancelOrder)
		}

		projects := authed.Group("/projects")
		{
			projects.GET("", deps.ProjectHandler.ListProjects)
			projects.POST("", deps.ProjectHandler.CreateProject)
			projects.GET("/:id", deps.ProjectHandler.GetProject)
			projects.PUT("/:id", deps.ProjectHandler.UpdateProject)
			projects.DELETE("/:id", deps.ProjectHandler.DeleteProject)
			projects.GET("/:id/summary", deps.ProjectHandler.Summary)
			projects.GET("/:id/expenses", deps.ProjectHandler.ListExpenses)
			projects.POST("/:id/expenses", deps.ProjectHandler.AddExpense)
			projects.PUT("/:id/supervisor", deps.ProjectHandler.AssignSupervisor)
		}

		authed.GET("/warranties", deps.WarrantyHandler.ListWarranties)
		authed.GET("/warranties/:id", deps.WarrantyHandler.GetWarranty)

		invoices := authed.Group("/invoices")
		invoices.Use(middleware.OptionalStore(deps.Stores))
		{
			invoices.GET("", deps.InvoiceHandler.ListInvoices)
			invoices.GET("/:id", deps.InvoiceHandler.GetInvoice)
		}

		authed.GET("/user/dashboard",
			middleware.RequireAccountType(deps.AccountTypes, types.AccountTypeUser),
			deps.DashboardHandler.UserDashboard)

		authed.PUT("/supervisor/profile",
			middleware.RequireAccountType(deps.AccountTypes, types.AccountTypeEngineer),
			deps.SupervisorHandler.UpsertProfile)

		storeRoutes := authed.Group("/store")
		storeRoutes.Use(middleware.RequireAccountType(deps.AccountTypes, types.AccountTypeStore))
		{
			storeRoutes.POST("/profile", deps.StorefrontHandler.CreateProfile)
			storeRoutes.GET("/profile", deps.StorefrontHandler.GetProfile)
			storeRoutes.PUT("/profile", deps.StorefrontHandler.UpdateProfile)

			owned := storeRoutes.Group("")
			owned.Use(middleware.RequireStore(deps.Stores))
			{
				owned.GET("/dashboard", deps.DashboardHandler.StoreDashboard)

				owned.GET("/products", deps.ProductHandler.ListStoreProducts)
				owned.POST("/products", deps.ProductHandler.CreateProduct)
				owned.PUT("/products/:id", deps.ProductHandler.UpdateProduct)
				owned.DELETE("/products/:id", deps.ProductHandler.DeleteProduct)

				owned.GET("/orders", deps.OrderHandler.ListStoreOrders)
				owned.GET("/orders/stream",
					middleware.StreamConnectionLimiter(deps.Redis, maxStreamsPerUser, streamSlotTTL),
					deps.StreamHandler.HandleOrderStream)
				owned.GET("/orders/:id", deps.OrderHandler.GetStoreOrder)
				owned.PATCH("/orders/:id/status", deps.OrderHandler.UpdateStoreOrderStatus)
				owned.POST("/orders/:id/invoice", deps.InvoiceHandler.UploadInvoice)

				owned.POST("/warranties", deps.WarrantyHandler.IssueWarranty)
			}
		}

		admin := authed.Group("/admin")
		admin.Use(middleware.RequireAccountType(deps.AccountTypes, types.AccountTypeAdmin))
		{
			admin.GET("/products", deps.AdminHandler.ListProducts)
			admin.GET("/products/:id", deps.AdminHandler.GetProduct)
			admin.GET("/inventory", deps.AdminHandler.ListInventory)
			admin.GET("/orders", deps.AdminHandler.ListOrders)
		}
	}

	r.NoRoute(noRouteHandler(deps.Config.Server.FrontendURL, deps.Logger))

	return r
}

// noRouteHandler proxies unmatched page requests to the frontend when one
// is configured. API paths always get a JSON 404.
func noRouteHandler(frontendURL string, log *zap.SugaredLogger) gin.HandlerFunc {
	if frontendURL == "" {
		return frontendNotFound
	}

	proxy, err := NewFrontendProxy(frontendURL)
	if err != nil {
		log.Errorw("Frontend proxy disabled", "frontendURL", frontendURL, "error", err)
		return frontendNotFound
	}

	return func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			frontendNotFound(c)
			return
		}
		proxy.ServeHTTP(c.Writer, c.Request)
	}
}
