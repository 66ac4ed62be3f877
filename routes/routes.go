package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sofraProject/foodDelivery-sub000/configs"
	"github.com/sofraProject/foodDelivery-sub000/controllers"
	"github.com/sofraProject/foodDelivery-sub000/entity"
	"github.com/sofraProject/foodDelivery-sub000/middlewares"
	"github.com/sofraProject/foodDelivery-sub000/repository"
	"github.com/sofraProject/foodDelivery-sub000/services"
	"github.com/sofraProject/foodDelivery-sub000/ws"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterRoutes wires repositories, services and controllers onto the
// engine. The hub is constructed in main and injected here; nothing
// below reaches for globals.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.Hub, log *zap.Logger) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Services
	notifier := services.NewNotificationService(notifRepo, log)
	provider := services.NewHTTPPaymentProvider(cfg.PaymentProviderURL, cfg.PaymentProviderKey, log)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(
		db, orderRepo, cartRepo, restRepo, userRepo, deliveryRepo,
		hub, notifier, provider, log, cfg.DeliveryFee, cfg.PaymentTimeout,
	)
	deliverySvc := services.NewDeliveryService(deliveryRepo, orderRepo, hub, log)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restRepo)
	menuCtrl := controllers.NewMenuController(menuRepo, restRepo)
	catCtrl := controllers.NewCategoryController(db)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	deliveryCtrl := controllers.NewDeliveryController(deliverySvc)
	notifCtrl := controllers.NewNotificationController(notifier)

	secret := cfg.JWTSecret
	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.GET("/me", middlewares.AuthMiddleware(secret), authCtrl.Me)
		auth.PATCH("/me", middlewares.AuthMiddleware(secret), authCtrl.UpdateMe)
	}

	// Public catalog
	api.GET("/categories", catCtrl.List)
	api.GET("/restaurants", restCtrl.List)
	api.GET("/restaurants/:id", restCtrl.Detail)
	api.GET("/restaurants/:id/menu", menuCtrl.ListForRestaurant)

	// Catalog management
	api.POST("/categories", middlewares.AuthMiddleware(secret, entity.RoleAdmin), catCtrl.Create)
	api.POST("/restaurants", middlewares.AuthMiddleware(secret, entity.RoleOwner, entity.RoleAdmin), restCtrl.Create)
	api.PATCH("/restaurants/:id", middlewares.AuthMiddleware(secret, entity.RoleOwner, entity.RoleAdmin), restCtrl.Update)
	api.DELETE("/restaurants/:id", middlewares.AuthMiddleware(secret, entity.RoleAdmin), restCtrl.Delete)
	api.POST("/restaurants/:id/menu", middlewares.AuthMiddleware(secret, entity.RoleOwner, entity.RoleAdmin), menuCtrl.Create)
	api.PATCH("/menu-items/:id", middlewares.AuthMiddleware(secret, entity.RoleOwner, entity.RoleAdmin), menuCtrl.Update)
	api.DELETE("/menu-items/:id", middlewares.AuthMiddleware(secret, entity.RoleOwner, entity.RoleAdmin), menuCtrl.Delete)

	// Cart
	cart := api.Group("/cart", middlewares.AuthMiddleware(secret))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/items", cartCtrl.AddItem)
		cart.PATCH("/items/:id", cartCtrl.UpdateItem)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.DELETE("", cartCtrl.Clear)
	}

	// Orders
	orders := api.Group("/orders", middlewares.AuthMiddleware(secret))
	{
		orders.POST("", orderCtrl.Create)
		orders.POST("/checkout", orderCtrl.Checkout)
		orders.GET("", orderCtrl.ListForMe)
		orders.GET("/:id", orderCtrl.Detail)

		// payment provider callback path
		orders.PUT("/:id/success", orderCtrl.MarkPaid)
		orders.PUT("/:id/failure", orderCtrl.MarkFailed)

		orders.PUT("/:id/cancel", orderCtrl.Cancel)
		orders.GET("/:id/delivery", deliveryCtrl.LastKnown)
	}

	// Restaurant-side transitions
	ownerOnly := middlewares.AuthMiddleware(secret, entity.RoleOwner, entity.RoleAdmin)
	api.PUT("/orders/:id/confirm", ownerOnly, orderCtrl.Confirm)
	api.PUT("/orders/:id/ready", ownerOnly, orderCtrl.MarkReady)
	api.PUT("/orders/:id/assign-driver", ownerOnly, orderCtrl.AssignDriver)
	api.PUT("/orders/:id", middlewares.AuthMiddleware(secret, entity.RoleOwner, entity.RoleDriver, entity.RoleAdmin), orderCtrl.UpdateStatus)
	api.GET("/restaurants/:id/orders", ownerOnly, orderCtrl.ListForRestaurant)

	// Driver-side
	driverOnly := middlewares.AuthMiddleware(secret, entity.RoleDriver, entity.RoleAdmin)
	api.GET("/orders/status/confirmed", driverOnly, orderCtrl.ListConfirmed)
	api.PUT("/orders/:id/claim", driverOnly, orderCtrl.ClaimOrder)
	api.PUT("/orders/:id/location", driverOnly, deliveryCtrl.ReportLocation)

	// Admin
	api.DELETE("/orders/:id", middlewares.AuthMiddleware(secret, entity.RoleAdmin), orderCtrl.Delete)

	// Notifications
	notif := api.Group("/notifications", middlewares.AuthMiddleware(secret))
	{
		notif.GET("", notifCtrl.ListForMe)
		notif.PATCH("/:id/read", notifCtrl.MarkRead)
	}

	// Realtime
	deliveryWS := ws.NewDeliveryWS(hub, deliverySvc, log)
	r.GET("/ws/delivery", middlewares.WSAuthMiddleware(secret), deliveryWS.HandleWebSocket)
}
