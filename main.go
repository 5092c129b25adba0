package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/config"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/config/seeders"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/controllers"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/games"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/ledger"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/logger"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/payments"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/routes"
)

func main() {
	logger.Init()
	defer logger.Sync()

	config.LoadEnv()

	db, err := config.ConnectDB()
	if err != nil {
		logger.L().Fatal("database connection failed", zap.Error(err))
	}
	seeders.SeedAllData(db)

	ledgerSvc := ledger.New(db)
	paymentsSvc := payments.New(db, ledgerSvc, config.ExchangeRate(), config.Currency(), logger.L())
	catalog := games.NewCatalog()

	auth := &controllers.AuthController{DB: db, Ledger: ledgerSvc}
	user := &controllers.UserController{DB: db, Ledger: ledgerSvc, Payments: paymentsSvc}
	casino := &controllers.CasinoController{DB: db, Ledger: ledgerSvc, Catalog: catalog}
	admin := &controllers.AdminController{DB: db, Ledger: ledgerSvc, Payments: paymentsSvc}
	gateway := &controllers.PaymentsController{Payments: paymentsSvc}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	routes.SetupAuthRoutes(router, auth)
	routes.SetupProtectedRoutes(router, auth, user)
	routes.SetupCasinoRoutes(router, auth, casino)
	routes.SetupAdminRoutes(router, auth, admin)
	routes.SetupPaymentRoutes(router, gateway)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		auth.CleanupExpiredBlacklistedTokens()

		for range ticker.C {
			auth.CleanupExpiredBlacklistedTokens()
		}
	}()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Casino API is running",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.L().Info("server starting", zap.String("port", port))
	if err := router.Run("0.0.0.0:" + port); err != nil {
		logger.L().Fatal("server failed", zap.Error(err))
	}
}
