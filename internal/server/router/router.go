package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/server/handlers"
)

// Handlers groups the per-resource HTTP adapters wired into the engine.
type Handlers struct {
	Farmers      *handlers.FarmerHandler
	Crops        *handlers.CropHandler
	Transactions *handlers.TransactionHandler
	Reports      *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	farmers := r.Group("/farmers")
	{
		farmers.POST("", h.Farmers.Create)
		farmers.GET("", h.Farmers.List)
		farmers.GET("/:aadhar", h.Farmers.Get)
		farmers.PUT("/:aadhar", h.Farmers.Update)
		farmers.DELETE("/:aadhar", h.Farmers.Delete)
	}

	crops := r.Group("/crops")
	{
		crops.POST("", h.Crops.Create)
		crops.GET("", h.Crops.List)
		// Static segments before the :id wildcard so gin routes them first.
		crops.GET("/feed/latest", h.Crops.LatestUpdated)
		crops.GET("/stats", h.Crops.Stats)
		crops.POST("/export", h.Crops.Export)
		crops.GET("/farmer/:aadhar", h.Crops.FindByFarmer)
		crops.GET("/:id", h.Crops.Get)
		crops.PUT("/:id", h.Crops.Update)
		crops.DELETE("/:id", h.Crops.Delete)
	}

	transactions := r.Group("/transactions")
	{
		transactions.POST("", h.Transactions.Create)
		transactions.GET("", h.Transactions.List)
		transactions.GET("/account/:accountNumber", h.Transactions.ListByAccount)
		transactions.GET("/account/:accountNumber/total", h.Transactions.Totals)
		transactions.GET("/:id", h.Transactions.Get)
		transactions.PUT("/:id", h.Transactions.Update)
		transactions.DELETE("/:id", h.Transactions.Delete)
	}

	reports := r.Group("/reports")
	{
		reports.GET("/daily", h.Reports.History)
		reports.POST("/daily/run", h.Reports.Run)
	}

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
