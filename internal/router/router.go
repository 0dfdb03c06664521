package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tradeboard/internal/cache"
	"github.com/tradeboard/internal/config"
	"github.com/tradeboard/internal/http/handlers/tables"
	"github.com/tradeboard/internal/http/response"
	"github.com/tradeboard/internal/logger"
	"github.com/tradeboard/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	tablesHandler := tables.New(c)

	writeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:write", cache.Prefix()),
		WindowSeconds: cfg.Security.WriteRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.WriteRateLimit.MaxRequests,
	}
	writeLimit := RateLimitMiddleware(cache.Client(), writeRule, KeyByIP)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 通用表 API
	tablesGroup := r.Group("/tables")
	{
		tablesGroup.GET("/:table", tablesHandler.ListRecords)
		tablesGroup.GET("/:table/:id", tablesHandler.GetRecord)
		tablesGroup.POST("/:table", writeLimit, tablesHandler.CreateRecord)
		tablesGroup.PUT("/:table/:id", writeLimit, tablesHandler.UpdateRecord)
		tablesGroup.PATCH("/:table/:id", writeLimit, tablesHandler.UpdateRecord)
		tablesGroup.DELETE("/:table/:id", writeLimit, tablesHandler.DeleteRecord)
	}

	// 健康检查
	r.GET("/api/health", tablesHandler.Health)

	// 静态页面兜底 - 必须放在 API 路由之后
	registerStaticFallback(r, cfg.Static.Dir)

	return r
}

// registerStaticFallback 把未命中 API 的 GET 请求交给静态目录处理
func registerStaticFallback(r *gin.Engine, dir string) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "./public"
	}
	fileServer := http.FileServer(http.Dir(dir))

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.NotFound(c)
			return
		}
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/tables") || strings.HasPrefix(path, "/api") {
			response.NotFound(c)
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}
