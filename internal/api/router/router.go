package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/config"
	"github.com/Pooyash1998/studyplanner/internal/api/handler"
	"github.com/Pooyash1998/studyplanner/internal/api/middleware"
	"github.com/Pooyash1998/studyplanner/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil（此时生成接口不限流）
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "storage": cfg.Storage.Driver})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 看板
		v1.GET("/board", h.Semester.GetBoard)

		// 模块登记
		modules := v1.Group("/modules")
		{
			modules.GET("", h.Module.ListModules)
			modules.POST("", h.Module.CreateModule)
			modules.PUT("/:id", h.Module.UpdateModule)
			modules.DELETE("/:id", h.Module.DeleteModule)
			modules.PUT("/:id/freeze", h.Module.ToggleFrozen)
		}

		// 学期槽位
		semesters := v1.Group("/semesters")
		{
			semesters.GET("", h.Semester.ListSemesters)
			semesters.POST("/reset", h.Semester.ResetSemesters)
		}

		// 拖放
		v1.POST("/moves", h.Semester.MoveModule)

		// 学习方案
		plans := v1.Group("/plans")
		{
			plans.GET("", h.Plan.ListPlans)
			plans.POST("", h.Plan.SavePlan)
			plans.POST("/generate",
				middleware.RateLimit(rdb, cfg.Storage.Namespace, cfg.Server.GenerateRate.Limit, cfg.Server.GenerateRate.Window, logger),
				h.Plan.GeneratePlans,
			)
			plans.POST("/:id/apply", h.Plan.ApplyPlan)
			plans.GET("/:id/check", h.Plan.CheckPlan)
		}

		// 设置
		settings := v1.Group("/settings")
		{
			settings.GET("", h.Settings.GetSettings)
			settings.PUT("", h.Settings.UpdateSettings)
		}

		// 导出
		v1.GET("/export", h.Export.Export)
	}

	return r
}
