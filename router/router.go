package router

import (
	"time"

	"suito/api"
	"suito/config"
	_ "suito/docs"
	"suito/middleware"
	"suito/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc *service.LedgerService, logger *logrus.Logger) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())

	// 客户端运行在 file:// 或其他局域网源上
	r.Use(cors.New(CORSConfig()))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyMB << 20))

	syncHandler := api.NewSyncHandler(svc, cfg.Server.Name)
	exportHandler := api.NewExportHandler(svc)
	writeLimit := middleware.RateLimit(cfg.RateLimit.SyncPerMinute, time.Minute)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", syncHandler.Ping)
		apiGroup.GET("/sync", syncHandler.Pull)

		// 写接口
		apiGroup.POST("/sync", writeLimit, syncHandler.Push)
		apiGroup.POST("/import", writeLimit, syncHandler.Import)
		apiGroup.POST("/admin/save", writeLimit, syncHandler.AdminSave)

		// 导出
		apiGroup.GET("/export/json", exportHandler.ExportJSON)
		apiGroup.GET("/export/xlsx", exportHandler.ExportXLSX)
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// CORSConfig 跨域配置：允许任意来源，不携带凭据
func CORSConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding", "X-Requested-With", "Cache-Control"},
		MaxAge:          12 * time.Hour,
	}
}
