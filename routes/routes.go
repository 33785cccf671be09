package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	auth := h.JWT.AuthRequired()

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/signup", h.Signup)
		public.POST("/auth/login", h.Login)

		public.GET("/restaurants", h.ListRestaurants)
		public.GET("/restaurants/:id/menu", h.GetMenu)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	r.GET("/api/profile", auth, h.GetProfile)

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(auth, middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/addresses", h.ListAddresses)
		customer.POST("/addresses", h.AddAddress)
		customer.PUT("/addresses/:addressId", h.UpdateAddress)
		customer.DELETE("/addresses/:addressId", h.DeleteAddress)

		customer.GET("/wallet", h.GetWallet)
		customer.POST("/wallet/top-up", h.TopUpWallet)

		customer.GET("/cart", h.GetCart)
		customer.POST("/cart/items", h.AddCartItem)
		customer.PUT("/cart/items/:foodId", h.ChangeCartItem)
		customer.DELETE("/cart/items/:foodId", h.RemoveCartItem)
		customer.DELETE("/cart", h.ClearCart)
		customer.POST("/cart/checkout", h.Checkout)

		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", h.CancelOrder)
		customer.PUT("/orders/:id/deliver", h.ConfirmDelivery)
		customer.POST("/orders/:id/review", h.ReviewOrder)
		customer.POST("/orders/:id/reorder", h.Reorder)
		customer.GET("/orders/:id/receipt", h.Receipt)
		customer.GET("/orders/:id/qrcode", h.ReceiptQRCode)
	}

	// ── Restaurant manager routes ──────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(auth, middleware.RoleRequired(models.RoleManager))
	{
		restaurant.POST("/", h.CreateRestaurant)
		restaurant.GET("/", h.GetMyRestaurant)
		restaurant.PUT("/settings", h.UpdateRestaurantSettings)

		restaurant.POST("/menu", h.AddFood)
		restaurant.PUT("/menu/:foodId", h.UpdateFood)
		restaurant.DELETE("/menu/:foodId", h.RemoveFood)

		restaurant.GET("/orders", h.GetRestaurantOrders)
		restaurant.PUT("/orders/:id/status", h.UpdateOrderStatus)

		restaurant.POST("/wallet/withdraw", h.Withdraw)
	}

	// ── Support routes ─────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(auth, middleware.RoleRequired(models.RoleSupport))
	{
		admin.GET("/dashboard", h.AdminDashboard)
		admin.GET("/orders", h.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)
		admin.GET("/restaurants", h.AdminGetRestaurants)
		admin.PUT("/restaurants/:id/approve", h.ApproveRestaurant)
		admin.PUT("/restaurants/:id/reject", h.RejectRestaurant)
	}
}
