package handlers

import (
	"net/http"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns every order, optionally filtered by status
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	orders, err := h.Orders.AllOrders(c.Request.Context())
	if err != nil {
		h.fail(c, "admin_orders", err)
		return
	}
	if status := c.Query("status"); status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == models.OrderStatus(status) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AdminDashboard aggregates orders by status and delivered revenue
func (h *Handler) AdminDashboard(c *gin.Context) {
	dash, err := h.Orders.Dashboard(c.Request.Context())
	if err != nil {
		h.fail(c, "admin_dashboard", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": dash})
}

// AdminUpdateOrderStatus lets support drive an order forward on behalf of
// the restaurant or the customer. It goes through the same state machine.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.Orders.FindOrder(c.Request.Context(), orderID)
	if err != nil {
		h.fail(c, "admin_order_status", err)
		return
	}
	h.transition(c, order, req.Status, statemachine.ActorSupport)
}

// AdminGetRestaurants lists restaurants, optionally filtered by review status
func (h *Handler) AdminGetRestaurants(c *gin.Context) {
	restaurants, err := h.Catalog.Restaurants(c.Request.Context(), models.RestaurantStatus(c.Query("status")))
	if err != nil {
		h.fail(c, "admin_restaurants", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

func (h *Handler) ApproveRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.Approve(c.Request.Context(), id); err != nil {
		h.fail(c, "approve_restaurant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant approved", "restaurant_id": id})
}

type RejectRestaurantRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *Handler) RejectRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req RejectRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Catalog.Reject(c.Request.Context(), id, req.Reason); err != nil {
		h.fail(c, "reject_restaurant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant rejected", "restaurant_id": id})
}
