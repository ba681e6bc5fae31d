package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/server/handlers"
	"github.com/mamadbah2/farmtrack/internal/server/middleware"
	"github.com/mamadbah2/farmtrack/internal/service/auth"
)

// Handlers bundles the HTTP adapters the router wires up.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Pens        *handlers.PenHandler
	Records     *handlers.RecordHandler
	DailyLogs   *handlers.DailyLogHandler
	AccessCodes *handlers.AccessCodeHandler
	Reports     *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, authSvc *auth.Service, jwtSecret string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/access-codes/:code", h.AccessCodes.Validate)

	authed := api.Group("")
	authed.Use(middleware.Auth(authSvc, jwtSecret, logger))
	{
		authed.POST("/pens", h.Pens.Create)
		authed.GET("/pens", h.Pens.List)
		authed.GET("/pens/:id", h.Pens.Get)
		authed.PUT("/pens/:id", h.Pens.Update)
		authed.DELETE("/pens/:id", h.Pens.Delete)

		authed.POST("/records", h.Records.Create)
		authed.GET("/records", h.Records.List)
		authed.GET("/records/:id", h.Records.Get)
		authed.PUT("/records/:id", h.Records.Update)
		authed.DELETE("/records/:id", h.Records.Delete)

		authed.POST("/daily-logs", h.DailyLogs.Create)
		authed.GET("/daily-logs", h.DailyLogs.List)
		authed.GET("/daily-logs/:id", h.DailyLogs.Get)
		authed.PUT("/daily-logs/:id", h.DailyLogs.Update)
		authed.DELETE("/daily-logs/:id", h.DailyLogs.Delete)

		authed.POST("/access-codes", h.AccessCodes.Generate)
		authed.GET("/access-codes", h.AccessCodes.List)

		authed.GET("/reports/financial", h.Reports.Financial)
		authed.GET("/reports/production", h.Reports.Production)
		authed.GET("/reports/export", h.Reports.Export)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
