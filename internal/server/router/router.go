package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// Handlers groups the HTTP adapters mounted under /api/v1.
type Handlers struct {
	Inventory  *handlers.InventoryHandler
	Procedures *handlers.ProcedureHandler
	Orders     *handlers.OrderHandler
	Reports    *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
// metricsHandler is served on /metrics when not nil.
func New(h Handlers, metricsHandler http.Handler, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := r.Group("/api/v1")

	inv := api.Group("/inventory")
	inv.GET("", h.Inventory.List)
	inv.POST("", h.Inventory.Create)
	inv.GET("/low-stock", h.Inventory.LowStock)
	inv.POST("/consume", h.Inventory.Consume)
	inv.GET("/:id", h.Inventory.Get)
	inv.PUT("/:id", h.Inventory.Update)
	inv.POST("/:id/deduct", h.Inventory.Deduct)
	inv.POST("/:id/restock", h.Inventory.Restock)
	inv.GET("/:id/movements", h.Inventory.Movements)

	procs := api.Group("/procedures")
	procs.GET("", h.Procedures.List)
	procs.POST("", h.Procedures.Create)
	procs.GET("/:id", h.Procedures.Get)
	procs.POST("/:id/perform", h.Procedures.Perform)

	ords := api.Group("/orders")
	ords.GET("", h.Orders.List)
	ords.POST("", h.Orders.Place)
	ords.GET("/:id", h.Orders.Get)
	ords.POST("/:id/deliver", h.Orders.Deliver)
	ords.POST("/:id/cancel", h.Orders.Cancel)

	api.GET("/reports/low-stock", h.Reports.LowStock)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
