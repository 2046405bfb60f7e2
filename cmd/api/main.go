// @title           Candidature API
// @version         1.0
// @description     Bilingual (fr/ar) candidature forms: builder drafts, publication, public submissions.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	_ "candidature-api/docs" // Swagger docs import

	"candidature-api/internal/client"
	"candidature-api/internal/config"
	"candidature-api/internal/database"
	"candidature-api/internal/job"
	"candidature-api/internal/metrics"
	"candidature-api/internal/repository"
	"candidature-api/internal/router"
	"candidature-api/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is not configured")
	}

	logger.Info("Starting Candidature Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	m := metrics.New()

	db := connectDatabase(cfg, logger)
	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	statsDone := database.StartDBStatsCollector(db, m, 15*time.Second)
	defer close(statsDone)

	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Warn("Failed to run database migrations", zap.Error(err))
	}

	collector := metrics.NewBusinessMetricsCollector(db, m, logger)
	collector.Start()
	defer collector.Stop()

	// Redis backs drafts and the live feed; without it both stay in process
	var redisClient *redis.Client
	if rc, err := database.NewRedis(cfg.Redis, logger); err != nil {
		logger.Warn("Redis unavailable, drafts and live feed are kept in memory", zap.Error(err))
	} else {
		redisClient = rc
		defer redisClient.Close()
	}

	var storage client.StorageClient
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3Client, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, attachment features may be limited", zap.Error(err))
		} else {
			storage = s3Client
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, attachment features disabled")
	}

	r := router.Setup(router.Config{
		DB:          db,
		Redis:       redisClient,
		Logger:      logger,
		Metrics:     m,
		JWTSecret:   cfg.JWT.Secret,
		BasePath:    cfg.Server.BasePath,
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Storage:     storage,
		Attachments: service.AttachmentLimits{
			MaxFileSize:   cfg.Attachments.MaxFileSize,
			TempTTL:       cfg.Attachments.TempTTL,
			PresignExpiry: cfg.S3.PresignExpiry,
		},
		DraftTTL: cfg.Redis.DraftTTL,
	})

	scheduler := job.NewScheduler(logger)
	if storage != nil {
		cleanup := job.NewCleanupJob(repository.NewAttachmentRepository(db), storage, logger)
		if err := scheduler.Register("attachment-cleanup", cfg.Cleanup.Schedule, cleanup.Run); err != nil {
			logger.Error("Failed to schedule attachment cleanup", zap.Error(err))
		}
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Candidature Service started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	select {
	case <-scheduler.Stop().Done():
	case <-ctx.Done():
		logger.Warn("Scheduled jobs still running at shutdown")
	}

	if err := database.Close(db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// connectDatabase blocks until the database answers, retrying in the background
// after a failed first attempt.
func connectDatabase(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err == nil {
		database.SetDB(db)
		logger.Info("Database connected successfully")
		return db
	}

	logger.Warn("Failed to connect to database on startup, retrying in background", zap.Error(err))
	connected := make(chan *gorm.DB, 1)
	database.NewAsync(dbConfig, 5*time.Second, logger, func(db *gorm.DB) {
		connected <- db
	})
	return <-connected
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
