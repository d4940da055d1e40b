package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"salespipe/internal/config"
	"salespipe/internal/handlers"
	"salespipe/internal/middleware"
	"salespipe/internal/models"
	"salespipe/internal/pdf"
	"salespipe/internal/repositories"
	"salespipe/internal/routes"
	"salespipe/internal/services"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "salespipe/docs"
)

func Run() {
	cfg := config.LoadConfig()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("database close failed")
		}
	}()

	settingsDefaults := models.Settings{
		EntityMode:    cfg.EntityMode,
		CurrencyMode:  cfg.Currency.Mode,
		HomeCurrency:  cfg.Currency.Home,
		LocalCurrency: cfg.Currency.Local,
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	oppRepo := repositories.NewOpportunityRepository(db)
	rateRepo := repositories.NewRateRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	targetRepo := repositories.NewTargetRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db, settingsDefaults)

	// === Services ===
	userService := services.NewUserService(userRepo)
	oppService := services.NewOpportunityService(oppRepo, activityRepo, log)
	dashboardService := services.NewDashboardService(oppRepo, userRepo, settingsRepo, rateRepo, activityRepo, log)
	rateService := services.NewRateService(rateRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	targetService := services.NewTargetService(targetRepo)

	renderer := pdf.NewReportRenderer(cfg.Reports.FontPath)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, log)
	userHandler := handlers.NewUserHandler(userService, settingsService)
	oppHandler := handlers.NewOpportunityHandler(oppService, dashboardService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	rateHandler := handlers.NewRateHandler(rateService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	targetHandler := handlers.NewTargetHandler(targetService, dashboardService)
	reportHandler := handlers.NewReportHandler(dashboardService, renderer)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		oppHandler,
		dashboardHandler,
		rateHandler,
		settingsHandler,
		targetHandler,
		reportHandler,
	)

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.WithField("addr", listenAddr).Info("server starting")
	if err := router.Run(listenAddr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
