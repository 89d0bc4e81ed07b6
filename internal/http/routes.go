package http

import (
	"time"

	"telegram_tasks/internal/http/handlers"
	"telegram_tasks/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Per-route inbound limits, matching what clients were built against.
const rateWindow = time.Minute

// RegisterRoutes wires the API under /api behind the API-key check.
// Health and metrics stay outside the key check.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, health *handlers.HealthHandler, apiKey string) {
	r.GET("/health", health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.APIKey(apiKey))

	api.POST("/register/", middleware.RateLimit(10, rateWindow), h.Register)

	api.GET("/tasks/", middleware.RateLimit(30, rateWindow), h.ListTasks)
	api.POST("/tasks/create/", middleware.RateLimit(10, rateWindow), h.CreateTask)
	api.POST("/tasks/complete/", h.CompleteTask)
	api.POST("/tasks/delete/", middleware.RateLimit(10, rateWindow), h.DeleteTask)
	api.GET("/archive/", middleware.RateLimit(20, rateWindow), h.Archive)

	api.GET("/tags/", middleware.RateLimit(30, rateWindow), h.ListTags)
	api.POST("/tags/create/", middleware.RateLimit(10, rateWindow), h.CreateTag)
	api.POST("/tags/delete/", middleware.RateLimit(10, rateWindow), h.DeleteTag)

	api.POST("/clear/", middleware.RateLimit(5, rateWindow), h.ClearAll)
}
