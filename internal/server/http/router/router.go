package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/nodefoundry/depinmarket/internal/server/http/handlers"
	"github.com/nodefoundry/depinmarket/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	balanceHandler := handlers.NewBalanceHandler(facade)
	resourceHandler := handlers.NewResourceHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	resources := api.Group("/resources")
	resources.GET("", resourceHandler.List)
	resources.GET("/:id", resourceHandler.Get)
	resources.GET("/:id/reviews", resourceHandler.Reviews)
	resources.GET("/:id/rating", resourceHandler.Rating)

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(facade))
	authorized.POST("/orders", orderHandler.Create)
	authorized.GET("/orders", orderHandler.List)
	authorized.GET("/orders/:id", orderHandler.Get)
	authorized.POST("/orders/:id/cancel", orderHandler.Cancel)
	authorized.GET("/balance", balanceHandler.Summary)
	authorized.POST("/balance/deposit", balanceHandler.Deposit)
	authorized.POST("/balance/withdraw", balanceHandler.Withdraw)
	authorized.POST("/resources/:id/reviews", resourceHandler.Rate)

	admin := authorized.Group("/admin")
	admin.POST("/initialize", adminHandler.Initialize)
	admin.POST("/settings", adminHandler.Settings)
	admin.GET("/stats", adminHandler.Stats)
	admin.POST("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.POST("/orders/:id/complete", adminHandler.CompleteOrder)
	admin.POST("/orders/:id/refund", adminHandler.RefundOrder)
	admin.POST("/resources", adminHandler.AddResource)
	admin.PUT("/resources/:id", adminHandler.UpdateResource)
	admin.DELETE("/resources/:id", adminHandler.RemoveResource)
	admin.PATCH("/resources/:id/active", adminHandler.SetResourceActive)
	admin.GET("/resources/:id/orders", adminHandler.ResourceOrders)
	admin.DELETE("/resources/:id/reviews", adminHandler.PurgeReviews)
	admin.GET("/treasury", adminHandler.Treasury)
	admin.POST("/treasury/withdraw", adminHandler.TreasuryWithdraw)

	return engine
}
