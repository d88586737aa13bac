package handlers

import (
	"time"

	"optiwatt/internal/logger"
	"optiwatt/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	// default push period for the dashboard stream
	streamInterval time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, streamInterval: defaultInterval}
}

// WithStreamInterval overrides the default dashboard push period.
func (h *Handler) WithStreamInterval(d time.Duration) *Handler {
	if d > 0 && d <= maxInterval {
		h.streamInterval = d
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// dashboard stream, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/me", h.me)
		api.GET("/preferences/theme", h.getTheme)
		api.PUT("/preferences/theme", h.setTheme)

		h.registerApplianceRoutes(api)
		h.registerBlockRoutes(api)
		h.registerDashboardRoutes(api)
		h.registerInsightRoutes(api)
		h.registerNotificationRoutes(api)
	}
}

func (h *Handler) registerApplianceRoutes(api *gin.RouterGroup) {
	appliances := api.Group("/appliances")
	{
		appliances.GET("", h.listAppliances)
		appliances.GET("/:id/comparison", h.compareAppliance)
		appliances.POST("/:id/toggle", h.toggleAppliance)
	}
}

func (h *Handler) registerBlockRoutes(api *gin.RouterGroup) {
	blocks := api.Group("/blocks")
	{
		blocks.GET("", h.listBlocks)
		blocks.POST("", h.addBlock)
		blocks.PUT("/:id", h.updateBlock)
		// two-step: DELETE returns a token, confirm performs the deletion
		blocks.DELETE("/:id", h.requestBlockDeletion)
		blocks.POST("/deletions/:token/confirm", h.confirmBlockDeletion)
		blocks.DELETE("/deletions/:token", h.cancelBlockDeletion)

		blocks.POST("/:id/rooms", h.addRoom)
		blocks.PUT("/:id/rooms/:roomId", h.renameRoom)
		blocks.DELETE("/:id/rooms/:roomId", h.deleteRoom)
		blocks.GET("/:id/rooms/:roomId/logs", h.getRoomLogs)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/dashboard", h.getDashboard)
	api.GET("/history", h.getHistory)
}

func (h *Handler) registerInsightRoutes(api *gin.RouterGroup) {
	suggestions := api.Group("/suggestions")
	{
		suggestions.GET("", h.listSuggestions)
		suggestions.POST("/refresh", h.refreshSuggestions)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/latest", h.latestReport)
		reports.POST("/ai", h.generateAIReport)
		reports.POST("/expert", h.requestExpertReport)
		reports.POST("/deliver", h.deliverReport)
	}
}

func (h *Handler) registerNotificationRoutes(api *gin.RouterGroup) {
	n := api.Group("/notifications")
	{
		n.GET("", h.listNotifications)
		n.POST("/:id/read", h.markNotificationRead)
		n.POST("/read-all", h.markAllNotificationsRead)
		n.DELETE("", h.clearNotifications)
	}
}
