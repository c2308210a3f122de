package router

import (
	"github.com/gin-gonic/gin"

	"procura/internal/domain"
	"procura/internal/handler"
	"procura/internal/middleware"
	"procura/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	requestH *handler.RequestHandler,
	attachmentH *handler.AttachmentHandler,
	offerH *handler.OfferHandler,
	groupH *handler.CommodityGroupHandler,
	statsH *handler.StatsHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Procurement requests
	requests := protected.Group("/requests")
	requests.POST("", requestH.Create)
	requests.GET("", requestH.List)
	requests.GET("/export", middleware.RequireRole(domain.RoleProcurement), exportH.Export)
	requests.GET("/:id", requestH.GetByID)
	requests.PUT("/:id", requestH.Update)
	requests.DELETE("/:id", requestH.Delete)
	requests.POST("/:id/status", middleware.RequireRole(domain.RoleProcurement), requestH.ChangeStatus)
	requests.GET("/:id/history", requestH.History)

	// Offer attachments
	requests.POST("/:id/attachments", attachmentH.Upload)
	requests.GET("/:id/attachments", attachmentH.List)
	requests.GET("/:id/attachments/:attachmentId", attachmentH.Download)
	requests.DELETE("/:id/attachments/:attachmentId", attachmentH.Delete)

	// Offer parsing and classification
	offers := protected.Group("/offers")
	offers.POST("/parse", offerH.ParseOffer)
	offers.POST("/suggest-commodity", offerH.SuggestCommodity)

	// Commodity group catalog
	groups := protected.Group("/commodity-groups")
	groups.GET("", groupH.List)
	groups.GET("/:id", groupH.GetByID)

	// Dashboard
	stats := protected.Group("/stats")
	stats.Use(middleware.RequireRole(domain.RoleProcurement))
	stats.GET("/dashboard", statsH.Dashboard)

	return r
}
