package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/server/handlers"
)

// Handlers groups the HTTP adapters wired into the engine.
type Handlers struct {
	Stock  *handlers.StockHandler
	Sale   *handlers.SaleHandler
	Report *handlers.ReportHandler
	Export *handlers.ExportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/stock", h.Stock.Create)
	r.GET("/stock", h.Stock.List)
	r.GET("/stock/available", h.Stock.ListAvailable)

	r.POST("/sales", h.Sale.Create)
	r.GET("/sales", h.Sale.List)

	r.GET("/reports/sales", h.Report.Sales)
	r.GET("/reports/summary", h.Report.Summary)
	r.GET("/reports/daily", h.Report.Daily)
	r.GET("/reports/top", h.Report.Top)

	r.GET("/export/stock.csv", h.Export.ExportStock)
	r.GET("/export/sales.csv", h.Export.ExportSales)
	r.POST("/import/stock", h.Export.ImportStock)
	r.POST("/import/sales", h.Export.ImportSales)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

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
