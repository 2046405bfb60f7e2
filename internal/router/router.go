package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"candidature-api/internal/client"
	"candidature-api/internal/handler"
	"candidature-api/internal/metrics"
	"candidature-api/internal/middleware"
	"candidature-api/internal/realtime"
	"candidature-api/internal/repository"
	"candidature-api/internal/service"
	"candidature-api/internal/session"
)

// Config holds the dependencies of the HTTP layer
type Config struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	JWTSecret   string
	BasePath    string
	CORSOrigins []string

	Storage     client.StorageClient
	Attachments service.AttachmentLimits

	// DraftStore defaults to a redis store when Redis is set, memory otherwise
	DraftStore repository.DraftStore
	DraftTTL   time.Duration

	// Hub defaults to a redis hub when Redis is set, in-process otherwise
	Hub realtime.Hub
}

func (cfg *Config) defaults() {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.DraftTTL <= 0 {
		cfg.DraftTTL = 24 * time.Hour
	}
	if cfg.DraftStore == nil {
		if cfg.Redis != nil {
			cfg.DraftStore = repository.NewRedisDraftStore(cfg.Redis, cfg.DraftTTL)
		} else {
			cfg.DraftStore = repository.NewMemoryDraftStore(cfg.DraftTTL)
		}
	}
	if cfg.Hub == nil {
		if cfg.Redis != nil {
			cfg.Hub = realtime.NewRedisHub(cfg.Redis)
		} else {
			cfg.Hub = realtime.NewLocalHub()
		}
	}
	if cfg.Storage == nil {
		cfg.Storage = client.NewMockS3Client()
		cfg.Logger.Warn("No object storage configured, using presign stub")
	}
	cfg.Storage = client.WithMetrics(cfg.Storage, cfg.Metrics)
}

// Setup builds the engine with every route
func Setup(cfg Config) *gin.Engine {
	cfg.defaults()
	logger := cfg.Logger

	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Repositories
	candidatureRepo := repository.NewCandidatureRepository(cfg.DB)
	templateRepo := repository.NewTemplateRepository(cfg.DB)
	submissionRepo := repository.NewSubmissionRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB)

	// Services
	candidatureService := service.NewCandidatureService(candidatureRepo, templateRepo, attachmentRepo, cfg.Storage, cfg.Metrics, logger)
	templateService := service.NewTemplateService(templateRepo, logger)
	submissionService := service.NewSubmissionService(submissionRepo, candidatureRepo, attachmentRepo, cfg.Hub, cfg.Metrics, logger)
	draftService := service.NewDraftService(cfg.DraftStore, candidatureRepo, templateRepo, candidatureService, cfg.Metrics, logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, cfg.Storage, cfg.Attachments, logger)

	// Handlers
	candidatureHandler := handler.NewCandidatureHandler(candidatureService, logger)
	templateHandler := handler.NewTemplateHandler(templateService, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, logger)
	draftHandler := handler.NewDraftHandler(draftService, logger)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService, logger)
	feedHandler := handler.NewFeedHandler(cfg.Hub, candidatureService, cfg.Metrics, logger)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	// Root level endpoints for probes and scraping
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	auth := middleware.Auth(cfg.JWTSecret)
	optional := middleware.OptionalAuth(cfg.JWTSecret)

	admin := middleware.RequireRoles(session.RoleAdmin)
	staff := middleware.RequireRoles(append([]session.Role{session.RoleAdmin}, session.Coordinators...)...)
	reviewers := middleware.RequireRoles(append([]session.Role{session.RoleAdmin, session.RoleMentor}, session.Coordinators...)...)

	// Public routes
	api.GET("/candidatures/:id/render", optional, candidatureHandler.RenderCandidature)
	api.POST("/submissions/submit/:formId", optional, submissionHandler.Submit)

	authenticated := api.Group("")
	authenticated.Use(auth)
	{
		authenticated.GET("/session", handler.GetSession)

		candidatures := authenticated.Group("/candidatures")
		{
			candidatures.GET("", staff, candidatureHandler.ListCandidatures)
			candidatures.POST("/add", admin, candidatureHandler.CreateCandidature)

			candidatures.GET("/templates", admin, templateHandler.ListTemplates)
			candidatures.POST("/templates", admin, templateHandler.CreateTemplate)
			candidatures.GET("/template-fields", admin, templateHandler.ListTemplateFields)
			candidatures.POST("/template-fields", admin, templateHandler.CreateTemplateField)

			candidatures.GET("/:id", staff, candidatureHandler.GetCandidature)
			candidatures.PUT("/:id", admin, candidatureHandler.UpdateCandidature)
			candidatures.DELETE("/:id", admin, candidatureHandler.DeleteCandidature)
			candidatures.PATCH("/:id/validation", admin, candidatureHandler.SetValidation)
			candidatures.PATCH("/:id/publication", admin, candidatureHandler.SetPublication)
			candidatures.GET("/:id/feed", staff, feedHandler.Subscribe)
		}

		submissions := authenticated.Group("/submissions")
		{
			submissions.GET("/candidature/:formId", reviewers, submissionHandler.ListSubmissions)
			submissions.GET("/candidature/:formId/export", staff, submissionHandler.ExportSubmissions)
			submissions.GET("/:id", reviewers, submissionHandler.GetSubmission)
		}

		drafts := authenticated.Group("/drafts")
		drafts.Use(admin)
		{
			drafts.GET("/palette", draftHandler.Palette)
			drafts.POST("", draftHandler.CreateDraft)
			drafts.GET("/:draftId", draftHandler.GetDraft)
			drafts.DELETE("/:draftId", draftHandler.DeleteDraft)
			drafts.PUT("/:draftId/metadata", draftHandler.UpdateMetadata)

			drafts.POST("/:draftId/fields", draftHandler.AddField)
			drafts.PUT("/:draftId/fields/order", draftHandler.ReorderFields)
			drafts.PATCH("/:draftId/fields/:fieldId", draftHandler.UpdateField)
			drafts.DELETE("/:draftId/fields/:fieldId", draftHandler.RemoveField)

			drafts.POST("/:draftId/fields/:fieldId/options", draftHandler.AddOption)
			drafts.PATCH("/:draftId/fields/:fieldId/options/:optionId", draftHandler.UpdateOption)
			drafts.DELETE("/:draftId/fields/:fieldId/options/:optionId", draftHandler.RemoveOption)

			drafts.PUT("/:draftId/selection", draftHandler.Select)
			drafts.POST("/:draftId/drop", draftHandler.Drop)
			drafts.POST("/:draftId/source", draftHandler.LoadSource)
			drafts.POST("/:draftId/save", draftHandler.Save)
		}

		attachments := authenticated.Group("/attachments")
		{
			attachments.POST("/presigned-url", attachmentHandler.GeneratePresignedURL)
			attachments.GET("/:id", attachmentHandler.GetAttachment)
		}
	}

	return r
}
