package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumecraft/internal/api/middleware"
	"resumecraft/internal/auth"
	"resumecraft/internal/config"
	"resumecraft/internal/render"
	"resumecraft/internal/storage"
	"resumecraft/internal/template"
)

// Deps 汇集 RegisterRoutes 需要的全部协作对象。
type Deps struct {
	Config      *config.Config
	DB          *gorm.DB
	AsynqClient *asynq.Client
	AuthService *auth.AuthService
	Redis       *redis.Client
	Storage     *storage.Client
	Catalog     *template.Catalog
	Renderer    *render.Renderer
	Parser      resumeParser
	Logger      *slog.Logger
}

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(router *gin.Engine, deps Deps) {
	cfg := deps.Config

	authHandler := NewAuthHandler(
		deps.DB, deps.AuthService, deps.Redis, deps.Logger,
		cfg.Auth.LoginRateLimitPerHour, cfg.Auth.LoginLockThreshold, cfg.Auth.LoginLockTTL,
		cfg.API.CookieDomain,
	)
	wsHandler := NewWsHandler(deps.Redis, deps.AuthService, deps.Logger, nil)
	templateHandler := NewTemplateHandler(deps.Catalog, deps.Renderer, deps.Logger)
	draftHandler := NewDraftHandler(deps.DB, deps.Catalog, deps.Logger, cfg.API.MaxDraftsPerUser)
	resumeHandler := NewResumeHandler(
		deps.DB, deps.AsynqClient, deps.Storage, deps.Renderer, deps.Catalog,
		deps.Logger, cfg.Clamd.Address,
	)
	importHandler := NewImportHandler(deps.Parser, deps.Redis, deps.Logger, cfg.Clamd.Address, cfg.API.MaxImportBytes)
	printHandler := NewPrintHandler(deps.DB, deps.Renderer, deps.Logger)

	authMiddleware := middleware.AuthMiddleware(deps.AuthService)
	passwordGate := middleware.RequirePasswordChangeCompletedMiddleware()

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
		}

		templateGroup := v1.Group("/templates")
		{
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.GET("/:id", templateHandler.GetTemplate)
			templateGroup.GET("/:id/preview", templateHandler.PreviewTemplate)
		}

		draftGroup := v1.Group("/drafts")
		draftGroup.Use(authMiddleware, passwordGate)
		{
			draftGroup.POST("", draftHandler.CreateDraft)
			draftGroup.GET("", draftHandler.ListDrafts)
			draftGroup.GET("/:id", draftHandler.GetDraft)
			draftGroup.PUT("/:id", draftHandler.UpdateDraft)
			draftGroup.DELETE("/:id", draftHandler.DeleteDraft)
		}

		resumeGroup := v1.Group("/resume")
		resumeGroup.Use(authMiddleware, passwordGate)
		{
			resumeGroup.GET("/latest", resumeHandler.GetLatestResume)
			resumeGroup.PUT("", resumeHandler.SaveResume)
			resumeGroup.PATCH("/field", resumeHandler.UpdateField)
			resumeGroup.POST("/photo", resumeHandler.UploadPhoto)
			resumeGroup.GET("/render", resumeHandler.RenderResume)
			resumeGroup.POST("/export", resumeHandler.ExportResume)
			resumeGroup.GET("/download-link", resumeHandler.GetDownloadLink)
		}

		v1.POST("/import", authMiddleware, passwordGate, importHandler.ImportResume)

		internalGroup := v1.Group("/internal")
		internalGroup.Use(middleware.InternalSecretMiddleware(cfg.API.InternalSecret))
		{
			internalGroup.GET("/resumes/:id/print", printHandler.PrintResume)
		}
	}
}
