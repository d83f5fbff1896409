package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"lexvault/config"
	"lexvault/jobs"
	"lexvault/middleware"
	"lexvault/routes"
	"lexvault/services"
	"lexvault/utils"
)

func main() {
	// .env must be loaded before config reads the environment.
	loadEnvFile()

	config.LoadConfig()
	cfg := config.AppConfig

	if err := utils.InitLogger(cfg.Env); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer utils.SyncLogger()
	logger := utils.Logger()

	ctx, cancel := config.CreateContext(10 * time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		disconnectCtx, disconnectCancel := config.CreateContext(5 * time.Second)
		defer disconnectCancel()
		if err = mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()

	if err = mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.DatabaseName))

	db := mongoClient.Database(cfg.DatabaseName)

	// Blob storage is optional: without B2 credentials the portal runs
	// metadata-only, which is how local development works.
	var storageService *services.StorageService
	if cfg.B2ApplicationKeyID != "" && cfg.B2ApplicationKey != "" && cfg.B2BucketName != "" {
		storageService, err = services.NewStorageService(ctx, cfg.B2ApplicationKeyID, cfg.B2ApplicationKey, cfg.B2BucketName)
		if err != nil {
			logger.Fatal("failed to initialize blob storage", zap.Error(err))
		}
		logger.Info("blob storage initialized", zap.String("bucket", cfg.B2BucketName))
	} else {
		logger.Warn("blob storage not configured, running metadata-only")
	}

	container := routes.NewServiceContainer(db, cfg, storageService, logger)

	if err := container.AuditService.EnsureIndexes(ctx); err != nil {
		logger.Warn("failed to ensure audit indexes", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(logger))
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	api := router.Group("/api")
	routes.SetupRoutes(api, container)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	jobCtx, jobCancel := context.WithCancel(context.Background())
	defer jobCancel()
	if cfg.TrashCleanupInterval > 0 {
		jobs.StartTrashCleanupJob(jobCtx, container.TrashService, cfg.TrashCleanupInterval, logger)
		logger.Info("trash cleanup job started", zap.Duration("interval", cfg.TrashCleanupInterval))
	}

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// loadEnvFile loads .env from the usual locations, falling back to the
// system environment when none exists.
func loadEnvFile() {
	pwd, err := os.Getwd()
	if err != nil {
		log.Printf("could not get working directory: %v", err)
		return
	}

	envPaths := []string{
		".env",
		"../.env",
		filepath.Join(pwd, ".env"),
		filepath.Join(filepath.Dir(pwd), ".env"),
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err == nil {
				return
			}
		}
	}
	log.Println("no .env file found, using system environment variables")
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestOrigin := c.Request.Header.Get("Origin")

		allowOrigin := ""
		if len(allowedOrigins) == 0 {
			allowOrigin = "*"
		} else {
			for _, allowedOrigin := range allowedOrigins {
				if allowedOrigin == "*" || allowedOrigin == requestOrigin {
					allowOrigin = allowedOrigin
					break
				}
			}
		}

		if allowOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
			c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
