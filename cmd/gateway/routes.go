package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"restaurant-pos/config"
	"restaurant-pos/internal/gateway/clients"
	"restaurant-pos/internal/gateway/handlers"
	"restaurant-pos/internal/gateway/middleware"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.LoadConfig(logger)
	if cfg.Gateway.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	grpcClients, err := clients.NewGRPCClients(cfg.GRPC.Addr, logger)
	if err != nil {
		logger.Fatal("failed to create POS client", zap.Error(err))
	}
	defer grpcClients.Close()

	r, err := setupRouter(cfg, grpcClients, logger)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	logger.Info("starting gateway", zap.String("addr", cfg.Gateway.Addr))
	if err := r.Run(cfg.Gateway.Addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func setupRouter(cfg config.Config, grpcClients *clients.GRPCClients, logger *zap.Logger) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}
	rateLimit, err := middleware.RateLimit(cfg.Gateway.RateLimit)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.CORS(cfg.Gateway.AllowedOrigins))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(rateLimit)
	r.Use(serviceHealthMiddleware(grpcClients))

	posHandler := handlers.NewPOSHTTPHandler(grpcClients.POS, logger)
	registerRoutes(r, posHandler)

	r.GET("/health", healthCheckHandler(grpcClients))
	return r, nil
}

func registerRoutes(r *gin.Engine, posHandler *handlers.POSHTTPHandler) {
	api := r.Group("/api/v1")
	{
		menu := api.Group("/menu")
		{
			menu.GET("", posHandler.ListMenu)
			menu.POST("", posHandler.UpsertItem)
			menu.DELETE("/:id", posHandler.RemoveItem)
			menu.PUT("/:id/availability", posHandler.SetAvailability)
			menu.POST("/:id/image", posHandler.UploadImage)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", posHandler.GetCart)
			cart.DELETE("", posHandler.ClearCart)
			cart.POST("/items", posHandler.AddCartItem)
			cart.PATCH("/items/:id", posHandler.UpdateCartItem)
			cart.DELETE("/items/:id", posHandler.RemoveCartItem)
			cart.POST("/checkout", posHandler.Checkout)
			cart.GET("/receipt", posHandler.Receipt)
		}

		api.GET("/payment", posHandler.PaymentRequest)
		api.GET("/settings", posHandler.GetSettings)
		api.PUT("/settings", posHandler.UpdateSettings)

		reports := api.Group("/reports")
		{
			reports.GET("/monthly", posHandler.MonthlyReport)
			reports.GET("/monthly/export", posHandler.ExportMonthly)
		}
	}
}

func serviceHealthMiddleware(clients *clients.GRPCClients) gin.HandlerFunc {
	return func(c *gin.Context) {
		if clients.IsPOSServiceHealthy() {
			c.Header("X-POS-Service", "available")
		} else {
			c.Header("X-POS-Service", "unavailable")
		}
		c.Next()
	}
}

func healthCheckHandler(clients *clients.GRPCClients) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		httpStatus := http.StatusOK

		unavailableServices := []string{}
		if !clients.IsPOSServiceHealthy() {
			unavailableServices = append(unavailableServices, "pos")
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":               status,
			"message":              "Server is running",
			"unavailable_services": unavailableServices,
			"timestamp":            time.Now(),
		})
	}
}
