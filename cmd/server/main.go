package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/agencydesk/backend/internal/application/catalog"
	identityapp "github.com/agencydesk/backend/internal/application/identity"
	partnerapp "github.com/agencydesk/backend/internal/application/partner"
	tradeapp "github.com/agencydesk/backend/internal/application/trade"
	"github.com/agencydesk/backend/internal/infrastructure/auth"
	"github.com/agencydesk/backend/internal/infrastructure/config"
	"github.com/agencydesk/backend/internal/infrastructure/logger"
	"github.com/agencydesk/backend/internal/infrastructure/persistence"
	"github.com/agencydesk/backend/internal/infrastructure/storage"
	"github.com/agencydesk/backend/internal/interfaces/http/handler"
	"github.com/agencydesk/backend/internal/interfaces/http/middleware"
	"github.com/agencydesk/backend/internal/interfaces/http/router"
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

	log.Info("Starting AgencyDesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

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
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// SQLite runs get their schema in-process; Postgres schemas are
	// managed by cmd/migrate.
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database schema", zap.Error(err))
		}
	}

	// Token revocation store, Redis with an in-process fallback
	var revoker identityapp.TokenRevoker
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		revoker = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		revoker = redisBlacklist
	}

	jwtService := auth.NewJWTService(cfg.JWT, revoker)

	// Object storage for order documents, S3 with a local fallback
	var objectStorage tradeapp.ObjectStorageService
	if cfg.Storage.AccessKey != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			cancel()
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
	} else {
		localStorage, err := storage.NewLocalObjectStorage("data/documents", cfg.Storage.PublicBaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local document storage", zap.Error(err))
		}
		log.Warn("No storage credentials configured, documents are stored on local disk")
		objectStorage = localStorage
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	paymentOptionRepo := persistence.NewGormPaymentOptionRepository(db.DB)
	auditLog := persistence.NewGormAuditLogRepository(db.DB)

	// Seed the admin account, units and payment methods on first boot
	seeder := persistence.NewSeeder(db.DB, &cfg.Seed, log)
	if err := seeder.Run(context.Background()); err != nil {
		log.Fatal("Failed to seed initial data", zap.Error(err))
	}

	// Application services
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, customerRepo, vendorRepo, auditLog, log)
	documentService := tradeapp.NewDocumentService(orderRepo, objectStorage, log)
	lookupService := tradeapp.NewLookupService(paymentOptionRepo)
	productService := catalogapp.NewProductService(productRepo, unitRepo, auditLog, log)
	customerService := partnerapp.NewCustomerService(customerRepo, auditLog, log)
	vendorService := partnerapp.NewVendorService(vendorRepo, auditLog, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, revoker, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Cookie)
	orderHandler := handler.NewOrderHandler(orderService, lookupService)
	documentHandler := handler.NewDocumentHandler(documentService)
	productHandler := handler.NewProductHandler(productService)
	customerHandler := handler.NewCustomerHandler(customerService)
	vendorHandler := handler.NewVendorHandler(vendorService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

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
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	// Browser entry points. Signed-in visitors of the sign-in page are
	// sent to the dashboard; the dashboard itself needs a session.
	engine.GET(middleware.SignInPath,
		middleware.RedirectIfAuthenticated(cfg.Cookie.Name, jwtService),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Sign in at POST /api/v1/auth/signin"})
		})
	engine.GET(middleware.DashboardPath,
		middleware.RequireSession(cfg.Cookie.Name, jwtService),
		func(c *gin.Context) {
			claims := middleware.GetSessionClaims(c)
			c.JSON(http.StatusOK, gin.H{"message": "Welcome back, " + claims.Name})
		})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	requireSession := middleware.RequireSession(cfg.Cookie.Name, jwtService)

	// Public auth routes. Sign-out tolerates a missing or expired
	// session, it always clears the cookie.
	authRoutes := router.NewDomainGroup("/auth")
	authRoutes.POST("/signin", authHandler.SignIn)
	authRoutes.POST("/signout", authHandler.SignOut)

	sessionRoutes := router.NewDomainGroup("/auth").Use(requireSession)
	sessionRoutes.GET("/me", authHandler.Me)

	orderRoutes := router.NewDomainGroup("/orders").Use(requireSession)
	orderRoutes.POST("", orderHandler.Place)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/payment-methods", orderHandler.PaymentMethods)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.PATCH("/:id/status", orderHandler.ChangeStatus)
	orderRoutes.POST("/:id/payments", orderHandler.RecordPayment)
	orderRoutes.GET("/:id/logs", orderHandler.Logs)
	orderRoutes.POST("/:id/documents", documentHandler.Upload)

	productRoutes := router.NewDomainGroup("/products").Use(requireSession)
	productRoutes.POST("", productHandler.Create)
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/units", productHandler.Units)
	productRoutes.GET("/:id", productHandler.Get)
	productRoutes.PUT("/:id", productHandler.Update)
	productRoutes.DELETE("/:id", productHandler.Delete)
	productRoutes.POST("/:id/stock", productHandler.AdjustStock)
	productRoutes.GET("/:id/logs", productHandler.Logs)

	customerRoutes := router.NewDomainGroup("/customers").Use(requireSession)
	customerRoutes.POST("", customerHandler.Create)
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/:id", customerHandler.Get)
	customerRoutes.PUT("/:id", customerHandler.Update)
	customerRoutes.DELETE("/:id", customerHandler.Delete)
	customerRoutes.GET("/:id/logs", customerHandler.Logs)

	vendorRoutes := router.NewDomainGroup("/vendors").Use(requireSession)
	vendorRoutes.POST("", vendorHandler.Create)
	vendorRoutes.GET("", vendorHandler.List)
	vendorRoutes.GET("/:id", vendorHandler.Get)
	vendorRoutes.PUT("/:id", vendorHandler.Update)
	vendorRoutes.DELETE("/:id", vendorHandler.Delete)
	vendorRoutes.GET("/:id/logs", vendorHandler.Logs)

	r.Register(authRoutes).
		Register(sessionRoutes).
		Register(orderRoutes).
		Register(productRoutes).
		Register(customerRoutes).
		Register(vendorRoutes)
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

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
