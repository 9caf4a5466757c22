package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/merchlink/staffing-backend/internal/config"
	"github.com/merchlink/staffing-backend/internal/database"
	"github.com/merchlink/staffing-backend/internal/handlers"
	"github.com/merchlink/staffing-backend/internal/middleware"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/merchlink/staffing-backend/internal/services"
	"github.com/merchlink/staffing-backend/pkg/jwt"
	"github.com/merchlink/staffing-backend/pkg/mailer"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting MerchLink Staffing Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	userRepo := database.NewUserRepository(db)
	contractRepo := database.NewContractRepository(db)
	sessionRepo := database.NewWorkSessionRepository(db.DB)
	unavailRepo := database.NewUnavailabilityRepository(db)
	offerRepo := database.NewJobOfferRepository(db)
	appRepo := database.NewJobApplicationRepository(db)
	proposalRepo := database.NewProposalRepository(db.DB)
	auditRepo := database.NewAuditRepository(db)
	recruitRepo := database.NewRecruitmentRepository(db.DB)

	// Initialize mail gateway
	var mailGateway mailer.Gateway
	if cfg.Mailer.Mode == "production" {
		logger.Info("Initializing HTTP mail gateway in production mode...")
		mailGateway = mailer.NewHTTPGateway(mailer.HTTPConfig{
			APIURL:   cfg.Mailer.APIURL,
			Username: cfg.Mailer.Username,
			Password: cfg.Mailer.Password,
			Sender:   cfg.Mailer.FromAddr,
		})
	} else {
		logger.Info("Mail gateway in development mode (messages are logged, not sent)")
		mailGateway = mailer.NewLogGateway(logger)
	}

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	nightWindow := services.NightWindow{
		StartHour: cfg.Payroll.NightStartHour,
		EndHour:   cfg.Payroll.NightEndHour,
	}
	auditService := services.NewAuditService(auditRepo, logger)
	sessionService := services.NewSessionService(sessionRepo, contractRepo, unavailRepo, nightWindow, cfg.Payroll.NetFactor, logger)
	recruitmentService := services.NewRecruitmentService(appRepo, offerRepo, userRepo, recruitRepo, mailGateway, nightWindow, logger)
	proposalService := services.NewProposalService(proposalRepo, contractRepo, sessionRepo, unavailRepo, nightWindow, logger)
	reportService := services.NewReportService(sessionRepo, cfg.Payroll.NetFactor)
	sweepService := services.NewSweepService(proposalRepo, offerRepo, logger)

	if err := sweepService.Start(); err != nil {
		logger.Fatalf("Failed to start sweep service: %v", err)
	}
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(jwtService, userRepo, logger)
	recruitmentHandler := handlers.NewRecruitmentHandler(recruitmentService, auditService)
	sessionHandler := handlers.NewSessionHandler(sessionService, auditService)
	offerHandler := handlers.NewOfferHandler(offerRepo)
	applicationHandler := handlers.NewApplicationHandler(appRepo, offerRepo, userRepo)
	proposalHandler := handlers.NewProposalHandler(proposalService, proposalRepo, auditService)
	unavailabilityHandler := handlers.NewUnavailabilityHandler(unavailRepo)
	reportHandler := handlers.NewReportHandler(reportService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)

			protected := auth.Group("")
			protected.Use(middleware.AuthMiddleware(jwtService))
			{
				protected.GET("/profile", authHandler.Profile)
			}
		}

		// Offer routes
		offers := v1.Group("/offers")
		offers.Use(middleware.AuthMiddleware(jwtService))
		{
			offers.GET("", offerHandler.List)
			offers.GET("/:id", offerHandler.Get)

			recruiterOnly := offers.Group("")
			recruiterOnly.Use(middleware.RequireRole(models.RoleFVE, models.RoleAdmin))
			{
				recruiterOnly.POST("", offerHandler.Create)
				recruiterOnly.PUT("/:id", offerHandler.Update)
				recruiterOnly.PATCH("/:id/status", offerHandler.UpdateStatus)
				recruiterOnly.GET("/:id/applications", applicationHandler.ListByOffer)
			}
		}

		// Application routes
		applications := v1.Group("/applications")
		applications.Use(middleware.AuthMiddleware(jwtService))
		{
			workerOnly := applications.Group("")
			workerOnly.Use(middleware.RequireRole(models.RoleMerch))
			{
				workerOnly.POST("", applicationHandler.Apply)
				workerOnly.GET("", applicationHandler.ListMine)
			}
		}

		// Recruitment routes (recruiter only)
		recruitments := v1.Group("/recruitments")
		recruitments.Use(middleware.AuthMiddleware(jwtService))
		recruitments.Use(middleware.RequireRole(models.RoleFVE, models.RoleAdmin))
		{
			recruitments.POST("/:application_id", recruitmentHandler.Recruit)
			recruitments.POST("/:application_id/cancel", recruitmentHandler.Cancel)
		}

		// Work session routes
		sessions := v1.Group("/sessions")
		sessions.Use(middleware.AuthMiddleware(jwtService))
		{
			sessions.POST("", sessionHandler.Create)
			sessions.PUT("/:id", sessionHandler.Update)
			sessions.DELETE("/:id", sessionHandler.Delete)
			sessions.GET("/:id/pay", sessionHandler.GetPay)
			sessions.POST("/:id/kilometer-logs", sessionHandler.AddKilometerLog)
		}
		v1.DELETE("/kilometer-logs/:id", middleware.AuthMiddleware(jwtService), sessionHandler.DeleteKilometerLog)

		// Mission proposal routes
		proposals := v1.Group("/proposals")
		proposals.Use(middleware.AuthMiddleware(jwtService))
		{
			proposals.POST("", middleware.RequireRole(models.RoleFVE, models.RoleAdmin), proposalHandler.Create)

			workerOnly := proposals.Group("")
			workerOnly.Use(middleware.RequireRole(models.RoleMerch))
			{
				workerOnly.GET("", proposalHandler.ListMine)
				workerOnly.POST("/:id/accept", proposalHandler.Accept)
				workerOnly.POST("/:id/decline", proposalHandler.Decline)
			}
		}

		// Unavailability routes (worker only)
		unavailabilities := v1.Group("/unavailabilities")
		unavailabilities.Use(middleware.AuthMiddleware(jwtService))
		unavailabilities.Use(middleware.RequireRole(models.RoleMerch))
		{
			unavailabilities.POST("", unavailabilityHandler.Create)
			unavailabilities.GET("", unavailabilityHandler.ListMine)
			unavailabilities.DELETE("/:id", unavailabilityHandler.Delete)
		}

		// Monthly report
		workers := v1.Group("/workers")
		workers.Use(middleware.AuthMiddleware(jwtService))
		{
			workers.GET("/:id/report", reportHandler.Monthly)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService))
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/audit/:entity_type/:id", auditHandler.Trail)
			admin.POST("/sweep/expire-proposals", func(c *gin.Context) {
				sweepService.RunExpireProposalsNow()
				c.JSON(http.StatusOK, gin.H{"message": "Proposal expiry sweep triggered"})
			})
			admin.GET("/sweep/status", func(c *gin.Context) {
				c.JSON(http.StatusOK, sweepService.JobStatus())
			})
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	sweepService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}
		if userCtx, ok := middleware.GetUserContext(c); ok {
			fields["user_id"] = userCtx.UserID
			fields["role"] = userCtx.Role
		}

		entry := logger.WithFields(fields)
		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
