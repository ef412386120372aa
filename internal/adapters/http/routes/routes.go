package routes

import (
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/http/handlers"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/http/middleware"
	"github.com/dataflexghana/dataflexcomplete/internal/adapters/persistence/repositories"
	"github.com/dataflexghana/dataflexcomplete/internal/config"
	"github.com/dataflexghana/dataflexcomplete/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	bundleRepo := repositories.NewBundleRepository(db)
	gigRepo := repositories.NewGigRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	gigOrderRepo := repositories.NewGigOrderRepository(db)
	cashoutRepo := repositories.NewCashoutRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	agentService := services.NewAgentService(userRepo)
	catalogService := services.NewCatalogService(bundleRepo, gigRepo)
	orderService := services.NewOrderService(orderRepo, bundleRepo, userRepo, settingsRepo)
	gigOrderService := services.NewGigOrderService(gigOrderRepo, gigRepo, userRepo)
	cashoutService := services.NewCashoutService(cashoutRepo, userRepo)
	messageService := services.NewMessageService(messageRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	profileHandler := handlers.NewProfileHandler(agentService, authService, messageService)
	agentAdminHandler := handlers.NewAgentAdminHandler(agentService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	gigOrderHandler := handlers.NewGigOrderHandler(gigOrderService)
	cashoutHandler := handlers.NewCashoutHandler(cashoutService)
	platformHandler := handlers.NewPlatformHandler(settingsService, messageService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)

	// Authenticated routes
	authed := apiV1.Group("", middleware.AuthMiddleware(cfg))
	authed.Get("/bundles", catalogHandler.ListBundles)
	authed.Get("/gigs", catalogHandler.ListGigs)
	authed.Get("/profile", profileHandler.GetProfile)
	authed.Put("/profile/password", profileHandler.ChangePassword)
	authed.Get("/subscription", profileHandler.GetSubscription)
	authed.Post("/subscription/confirm-payment", profileHandler.ConfirmSubscriptionPayment)
	authed.Get("/messages/active", profileHandler.GetActiveMessage)
	authed.Post("/messages/dismiss", profileHandler.DismissMessage)

	// Agent ordering & earnings
	authed.Post("/orders", orderHandler.Create)
	authed.Get("/orders/my", orderHandler.ListMine)
	authed.Post("/gig-orders", gigOrderHandler.Create)
	authed.Get("/gig-orders/my", gigOrderHandler.ListMine)
	authed.Post("/cashouts", cashoutHandler.Request)
	authed.Get("/cashouts/my", cashoutHandler.ListMine)

	// Admin routes
	admin := apiV1.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())

	admin.Get("/dashboard", dashboardHandler.GetAdminDashboard)

	admin.Get("/agents", agentAdminHandler.List)
	admin.Get("/agents/:id", agentAdminHandler.Get)
	admin.Put("/agents/:id/approve", agentAdminHandler.Approve)
	admin.Put("/agents/:id/ban", agentAdminHandler.Ban)
	admin.Delete("/agents/:id", agentAdminHandler.Delete)
	admin.Put("/agents/:id/password", agentAdminHandler.ResetPassword)
	admin.Put("/agents/:id/subscription", agentAdminHandler.UpdateSubscription)

	admin.Get("/bundles", catalogHandler.ListAllBundles)
	admin.Post("/bundles", catalogHandler.CreateBundle)
	admin.Put("/bundles/:id", catalogHandler.UpdateBundle)
	admin.Delete("/bundles/:id", catalogHandler.DeleteBundle)

	admin.Get("/gigs", catalogHandler.ListAllGigs)
	admin.Post("/gigs", catalogHandler.CreateGig)
	admin.Put("/gigs/:id", catalogHandler.UpdateGig)
	admin.Delete("/gigs/:id", catalogHandler.DeleteGig)

	admin.Get("/orders", orderHandler.List)
	admin.Put("/orders/:id/status", orderHandler.UpdateStatus)

	admin.Get("/gig-orders", gigOrderHandler.List)
	admin.Put("/gig-orders/:id/status", gigOrderHandler.UpdateStatus)

	admin.Get("/cashouts", cashoutHandler.List)
	admin.Put("/cashouts/:id/status", cashoutHandler.UpdateStatus)

	admin.Get("/settings", platformHandler.GetSettings)
	admin.Put("/settings", platformHandler.UpdateSettings)

	admin.Post("/messages", platformHandler.PublishMessage)
	admin.Get("/messages", platformHandler.ListMessages)
}
