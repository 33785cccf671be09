package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/models"
	"food-ordering-api/services"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetRestaurantOrders lists the manager's orders. view=new shows orders
// awaiting acceptance, view=active everything not yet finished.
func (h *Handler) GetRestaurantOrders(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var (
		orders []models.Order
		err    error
	)
	switch view := c.DefaultQuery("view", "all"); view {
	case "new":
		orders, err = h.Orders.NewOrdersByRestaurant(ctx, restaurant.ID)
	case "active":
		orders, err = h.Orders.ActiveOrdersByRestaurant(ctx, restaurant.ID)
	case "all":
		orders, err = h.Orders.OrdersByRestaurant(ctx, restaurant.ID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "view must be one of: new, active, all"})
		return
	}
	if err != nil {
		h.fail(c, "restaurant_orders", err)
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus handles the restaurant's state transitions
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.Orders.FindOrder(c.Request.Context(), orderID)
	if err != nil {
		h.fail(c, "update_order_status", err)
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.transition(c, order, req.Status, statemachine.ActorRestaurant)
}

// transition applies a status change and reports invalid ones with the
// states the order could move to instead.
func (h *Handler) transition(c *gin.Context, order *models.Order, to models.OrderStatus, actor string) {
	prev := order.Status
	updated, err := h.Orders.UpdateOrderStatus(c.Request.Context(), order.ID, to, actor)
	if errors.Is(err, services.ErrInvalidTransition) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    prev,
			"requested":         to,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(prev),
		})
		return
	}
	if err != nil {
		h.fail(c, "update_order_status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        updated.ID,
		"previous_status": prev,
		"current_status":  updated.Status,
	})
}
