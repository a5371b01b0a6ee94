package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "assetdesk/docs"
	"assetdesk/pkg/catalog"
	"assetdesk/pkg/db"
	"assetdesk/pkg/directory"
	"assetdesk/pkg/ledger"
	"assetdesk/pkg/logging"
	"assetdesk/pkg/middleware"
	"assetdesk/pkg/repair"
	"assetdesk/pkg/summary"
)

// @title           Assetdesk API
// @version         1.0
// @description     IT asset tracking backend - asset catalog, assignment ledger and repair workflows

// @host      localhost:8080
// @BasePath  /

// @schemes   http

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, err := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), "assetdesk")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	pool := db.Connect()
	defer pool.Close()

	catalogRepo := catalog.NewPostgresAssetRepository(pool, logger)
	catalogService := catalog.NewAssetService(catalogRepo, logger)
	catalogHandler := catalog.NewAssetHandler(catalogService)

	directoryRepo := directory.NewPostgresEmployeeRepository(pool, logger)
	directoryService := directory.NewEmployeeService(directoryRepo, logger)
	directoryHandler := directory.NewEmployeeHandler(directoryService)

	ledgerRepo := ledger.NewPostgresLedgerRepository(pool, logger)
	ledgerService := ledger.NewLedgerService(ledgerRepo)
	ledgerHandler := ledger.NewLedgerHandler(ledgerService)

	repairRepo := repair.NewPostgresRepairRepository(pool, logger)
	repairService := repair.NewRepairService(repairRepo)
	repairHandler := repair.NewRepairHandler(repairService)

	summaryRepo := summary.NewPostgresSummaryRepository(pool, logger)
	summaryService := summary.NewSummaryService(summaryRepo)
	summaryHandler := summary.NewSummaryHandler(summaryService)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())

	// CORS configuration
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins == "" {
		origins = []string{"*"}
	} else {
		parts := strings.Split(allowedOrigins, ",")
		origins = make([]string, 0, len(parts))
		for _, p := range parts {
			o := strings.TrimSpace(p)
			if o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) == 0 {
			origins = []string{"*"}
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: strings.EqualFold(os.Getenv("CORS_ALLOW_CREDENTIALS"), "true"),
		MaxAge:           12 * time.Hour,
	}))

	catalogHandler.RegisterRoutes(router)
	directoryHandler.RegisterRoutes(router)
	ledgerHandler.RegisterRoutes(router)
	repairHandler.RegisterRoutes(router)
	summaryHandler.RegisterRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
