package service

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/roibeauty/storefront/internal/auth"
	"github.com/roibeauty/storefront/internal/checkout"
	"github.com/roibeauty/storefront/internal/email"
	"github.com/roibeauty/storefront/internal/handlers"
	"github.com/roibeauty/storefront/internal/jobs"
	"github.com/roibeauty/storefront/internal/metrics"
	"github.com/roibeauty/storefront/internal/middleware"
	"github.com/roibeauty/storefront/internal/stripe"
	"github.com/roibeauty/storefront/storage"
)

const (
	apiName    = "Roi Beauty Essence API"
	apiVersion = "1.0.0"
)

// Mailer is everything the storefront sends by email.
type Mailer interface {
	handlers.AccountMailer
	handlers.ContactMailer
	handlers.StatusMailer
	checkout.Mailer
}

type Service struct {
	storage *storage.Storage
	config  *Config
	tokens  *auth.TokenService

	checkout   *checkout.Service
	reconciler *jobs.PendingOrderReconciler

	productHandler *handlers.ProductHandler
	authHandler    *handlers.AuthHandler
	paymentHandler *handlers.PaymentHandler
	orderHandler   *handlers.OrderHandler
	reviewHandler  *handlers.ReviewHandler
	adminHandler   *handlers.AdminHandler
	contactHandler *handlers.ContactHandler

	globalLimiter  *middleware.RateLimiter
	paymentLimiter *middleware.RateLimiter
}

func New(store *storage.Storage, config *Config) *Service {
	port, err := strconv.Atoi(config.Email.SMTPPort)
	if err != nil {
		slog.Warn("invalid SMTP port, using 587", "value", config.Email.SMTPPort)
		port = 587
	}
	emailService := email.NewService(email.Config{
		Host:        config.Email.SMTPHost,
		Port:        port,
		Username:    config.Email.SMTPUser,
		Password:    config.Email.SMTPPass,
		From:        config.Email.From,
		AdminEmail:  config.Email.AdminEmail,
		FrontendURL: config.FrontendURL,
	}, store.Queries)
	if !emailService.Configured() {
		slog.Warn("SMTP not configured, emails will be logged only")
	}

	stripeService := stripe.NewStripeService(config.Stripe.SecretKey)
	if !stripeService.Configured() {
		slog.Warn("STRIPE_SECRET_KEY not set, payment endpoints will reject requests")
	}

	return newService(store, config, stripeService, emailService, stripeService.Configured())
}

func newService(store *storage.Storage, config *Config, intents checkout.PaymentIntents, mailer Mailer, stripeConfigured bool) *Service {
	database := store.DB()
	queries := store.Queries

	tokens := auth.NewTokenService(config.JWT.Secret, config.JWT.Expiry)
	checkoutService := checkout.NewService(database, intents, mailer, checkout.Options{
		Currency:       config.Stripe.Currency,
		PublishableKey: config.Stripe.PublishableKey,
	})

	return &Service{
		storage:  store,
		config:   config,
		tokens:   tokens,
		checkout: checkoutService,
		reconciler: jobs.NewPendingOrderReconciler(queries, checkoutService,
			config.Jobs.ReconcileInterval),

		productHandler: handlers.NewProductHandler(database),
		authHandler:    handlers.NewAuthHandler(queries, tokens, mailer),
		paymentHandler: handlers.NewPaymentHandler(checkoutService, queries,
			config.Stripe.WebhookSecret, stripeConfigured),
		orderHandler:   handlers.NewOrderHandler(queries, config.BaseURL),
		reviewHandler:  handlers.NewReviewHandler(database),
		adminHandler:   handlers.NewAdminHandler(database, mailer),
		contactHandler: handlers.NewContactHandler(queries, mailer),

		globalLimiter: middleware.NewRateLimiter(config.RateLimit.GlobalRequests,
			config.RateLimit.Window, middleware.DefaultLimitMessage),
		paymentLimiter: middleware.NewRateLimiter(config.RateLimit.PaymentRequests,
			config.RateLimit.Window, middleware.PaymentLimitMessage),
	}
}

// StartJobs launches the background workers. They stop when ctx is
// cancelled or Stop is called.
func (s *Service) StartJobs(ctx context.Context) {
	if s.reconciler != nil {
		s.reconciler.Start(ctx)
	}
}

func (s *Service) Stop() {
	if s.reconciler != nil {
		s.reconciler.Stop()
	}
}

// Configure installs the error handler and the global middleware chain.
func (s *Service) Configure(e *echo.Echo) {
	e.HTTPErrorHandler = s.errorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(s.globalLimiter.Middleware())
	e.Use(middleware.RequestLog())
	e.Use(metrics.Middleware())
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.Static("/", s.config.StaticDir)
	e.GET("/", s.handleIndex)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	requireAuth := auth.RequireAuth()
	requireAdmin := auth.RequireAdmin()
	limitPayments := s.paymentLimiter.Middleware()

	api := e.Group("/api", auth.JWTAuth(s.tokens, s.storage.Queries))

	api.GET("/health", s.handleHealth)
	api.GET("/debug", s.handleDebug)
	api.GET("/debug-featured", s.adminHandler.DebugFeatured, requireAdmin)
	api.GET("/seed-database", s.adminHandler.SeedDatabase, requireAdmin)
	api.POST("/setup-featured", s.productHandler.SetupFeatured, requireAdmin)
	api.POST("/contact", s.contactHandler.Submit)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.GET("/test", s.authHandler.Test)
	authGroup.POST("/register", s.authHandler.Register)
	authGroup.GET("/verify-email", s.authHandler.VerifyEmail)
	authGroup.POST("/login", s.authHandler.Login)
	authGroup.GET("/me", s.authHandler.Me, requireAuth)
	authGroup.PUT("/profile", s.authHandler.UpdateProfile, requireAuth)
	authGroup.POST("/forgot-password", s.authHandler.ForgotPassword)
	authGroup.POST("/reset-password/:token", s.authHandler.ResetPassword)
	authGroup.POST("/contact", s.contactHandler.Submit)

	// Catalog
	products := api.Group("/products")
	products.GET("", s.productHandler.ListProducts)
	products.GET("/featured", s.productHandler.ListFeatured)
	products.POST("/setup-featured", s.productHandler.SetupFeatured, requireAdmin)
	products.GET("/:id", s.productHandler.GetProduct)
	products.GET("/:id/reviews", s.productHandler.ProductReviews)

	// Payments
	payment := api.Group("/payment")
	payment.GET("/test", s.paymentHandler.Test)
	payment.GET("/config", s.paymentHandler.Config)
	payment.POST("/create-payment-intent", s.paymentHandler.CreatePaymentIntent, limitPayments)
	payment.POST("/confirm-payment", s.paymentHandler.ConfirmPayment, limitPayments)
	payment.POST("/webhook", s.paymentHandler.HandleWebhook)
	payment.GET("/order/:orderId", s.paymentHandler.GetOrder)
	payment.GET("/admin/all-orders", s.paymentHandler.AllOrders, requireAdmin)

	// Orders
	orders := api.Group("/orders")
	orders.GET("/my-orders", s.orderHandler.MyOrders, requireAuth)
	orders.POST("/associate-guest", s.orderHandler.AssociateGuest, requireAuth)
	orders.GET("/:orderId/receipt", s.orderHandler.Receipt)

	// Reviews
	reviews := api.Group("/reviews")
	reviews.GET("/test-success", s.reviewHandler.TestSuccess)
	reviews.GET("/user", s.reviewHandler.UserReviews, requireAuth)
	reviews.GET("", s.reviewHandler.ListReviews)
	reviews.POST("", s.reviewHandler.CreateReview, requireAuth)

	// Admin
	admin := api.Group("/admin", requireAdmin)
	admin.GET("/check-setup", s.adminHandler.CheckSetup)
	admin.POST("/make-admin", s.adminHandler.MakeAdmin)
	admin.PUT("/users/:id/role", s.adminHandler.SetUserRole)
	admin.GET("/users", s.adminHandler.ListUsers)
	admin.GET("/stats", s.adminHandler.Stats)
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.PUT("/orders/:orderId/status", s.adminHandler.UpdateOrderStatus)
	admin.POST("/products", s.adminHandler.CreateProduct)
	admin.PUT("/products/:id", s.adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.adminHandler.DeleteProduct)
	admin.POST("/products/:id/toggle-featured", s.adminHandler.ToggleFeatured)

	api.Any("/*", s.handleAPINotFound)
}

func (s *Service) handleIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": apiName,
		"version": apiVersion,
		"endpoints": echo.Map{
			"products": "/api/products",
			"auth":     "/api/auth",
			"payment":  "/api/payment",
			"orders":   "/api/orders",
			"reviews":  "/api/reviews",
			"admin":    "/api/admin",
			"contact":  "/api/contact",
			"health":   "/api/health",
		},
	})
}

func (s *Service) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Server is running!",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Service) handleDebug(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := "Connected"
	if err := s.storage.Ping(ctx); err != nil {
		slog.Warn("database ping failed", "error", err)
		status = "Disconnected"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Debug endpoint working",
		"database":  status,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Service) handleAPINotFound(c echo.Context) error {
	req := c.Request()
	return echo.NewHTTPError(http.StatusNotFound, "API endpoint not found: "+req.Method+" "+req.URL.RequestURI())
}
