package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eats-api/internal/handlers"
	"eats-api/internal/middleware"
)

// Deps bundles everything the router needs, assembled by the composition
// point in cmd/server.
type Deps struct {
	Authenticate  gin.HandlerFunc
	Auth          *handlers.AuthHandler
	Restaurants   *handlers.RestaurantHandler
	Orders        *handlers.OrderHandler
	Payments      *handlers.PaymentHandler
	Subscriptions *handlers.SubscriptionHandler
	Uploads       *handlers.UploadHandler
}

// SetupRoutes registers the whole API surface. Every route runs the
// authentication middleware; the per-operation role table is consulted via
// middleware.Authorize before each handler.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "Eats API"})
	})

	api := r.Group("/api")
	api.Use(d.Authenticate)
	{
		// Accounts
		api.POST("/accounts", middleware.Authorize("createAccount"), d.Auth.CreateAccount)
		api.POST("/accounts/login", middleware.Authorize("login"), d.Auth.Login)
		api.POST("/accounts/verify-email", middleware.Authorize("verifyEmail"), d.Auth.VerifyEmail)
		api.GET("/accounts/me", middleware.Authorize("me"), d.Auth.Me)
		api.PUT("/accounts", middleware.Authorize("updateAccount"), d.Auth.UpdateAccount)
		api.DELETE("/accounts", middleware.Authorize("deleteAccount"), d.Auth.DeleteAccount)
		api.GET("/users/:id", middleware.Authorize("userProfile"), d.Auth.UserProfile)

		// Restaurants & categories
		api.GET("/restaurants", middleware.Authorize("restaurants"), d.Restaurants.ListRestaurants)
		api.GET("/restaurants/search", middleware.Authorize("searchRestaurants"), d.Restaurants.SearchRestaurants)
		api.GET("/restaurants/mine", middleware.Authorize("myRestaurants"), d.Restaurants.MyRestaurants)
		api.GET("/restaurants/:id", middleware.Authorize("restaurant"), d.Restaurants.GetRestaurant)
		api.POST("/restaurants", middleware.Authorize("createRestaurant"), d.Restaurants.CreateRestaurant)
		api.PUT("/restaurants/:id", middleware.Authorize("updateRestaurant"), d.Restaurants.UpdateRestaurant)
		api.DELETE("/restaurants/:id", middleware.Authorize("deleteRestaurant"), d.Restaurants.DeleteRestaurant)
		api.GET("/categories", middleware.Authorize("allCategories"), d.Restaurants.ListCategories)
		api.GET("/categories/:slug", middleware.Authorize("category"), d.Restaurants.GetCategory)

		// Dishes
		api.POST("/dishes", middleware.Authorize("createDish"), d.Restaurants.CreateDish)
		api.PUT("/dishes/:id", middleware.Authorize("updateDish"), d.Restaurants.UpdateDish)
		api.DELETE("/dishes/:id", middleware.Authorize("deleteDish"), d.Restaurants.DeleteDish)

		// Orders
		api.POST("/orders", middleware.Authorize("createOrder"), d.Orders.CreateOrder)
		api.GET("/orders", middleware.Authorize("orders"), d.Orders.GetOrders)
		api.GET("/orders/:id", middleware.Authorize("order"), d.Orders.GetOrder)
		api.PUT("/orders/:id", middleware.Authorize("updateOrder"), d.Orders.UpdateOrder)
		api.PUT("/orders/:id/take", middleware.Authorize("takeOrder"), d.Orders.TakeOrder)
		api.GET("/state-machine", d.Orders.StateMachineInfo)

		// Payments
		api.POST("/payments", middleware.Authorize("createPayment"), d.Payments.CreatePayment)
		api.GET("/payments", middleware.Authorize("payments"), d.Payments.GetPayments)

		// Uploads
		api.POST("/uploads", d.Uploads.UploadFile)
	}

	subs := r.Group("/subscriptions")
	subs.Use(d.Authenticate)
	{
		subs.GET("/pending-orders", middleware.Authorize("pendingOrders"), d.Subscriptions.PendingOrders)
		subs.GET("/cooked-orders", middleware.Authorize("cookedOrders"), d.Subscriptions.CookedOrders)
		subs.GET("/order-updates", middleware.Authorize("orderUpdates"), d.Subscriptions.OrderUpdates)
	}
}
