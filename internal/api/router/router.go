package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/config"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/api/handler"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/api/middleware"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/jwt"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API 单一入口，按 (endpoint, action, method) 分发 ──
	d := handler.NewDispatcher(h, middleware.JWTAuth(jwtMgr, rdb))

	api := r.Group("/api")
	api.Use(middleware.RateLimit(rdb, 120, time.Minute))
	{
		api.GET("", d.Handle)
		api.POST("", d.Handle)
	}

	return r
}
