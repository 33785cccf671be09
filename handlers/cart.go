package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type AddCartItemRequest struct {
	RestaurantID uint `json:"restaurant_id" binding:"required"`
	FoodID       uint `json:"food_id" binding:"required"`
	Quantity     int  `json:"quantity" binding:"required,min=1"`
}

// ChangeQuantityRequest takes an explicit quantity; 0 removes the line.
type ChangeQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

type CheckoutRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
}

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cart": h.Sessions.Cart(middleware.GetUserID(c)).Snapshot()})
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant, err := h.Catalog.Restaurant(c.Request.Context(), req.RestaurantID)
	if err != nil {
		h.fail(c, "add_cart_item", err)
		return
	}
	food, found := restaurant.FindFood(req.FoodID)
	if !found {
		h.fail(c, "add_cart_item", services.ErrFoodNotInRestaurant)
		return
	}

	cart := h.Sessions.Cart(middleware.GetUserID(c))
	if err := cart.AddToCart(restaurant, food, req.Quantity); err != nil {
		if errors.Is(err, services.ErrCrossRestaurant) {
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
				"hint":  "clear your cart before ordering from another restaurant",
			})
			return
		}
		h.fail(c, "add_cart_item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart.Snapshot()})
}

func (h *Handler) ChangeCartItem(c *gin.Context) {
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	var req ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart := h.Sessions.Cart(middleware.GetUserID(c))
	cart.ChangeQuantity(foodID, *req.Quantity)
	c.JSON(http.StatusOK, gin.H{"cart": cart.Snapshot()})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	cart := h.Sessions.Cart(middleware.GetUserID(c))
	cart.RemoveFromCart(foodID)
	c.JSON(http.StatusOK, gin.H{"cart": cart.Snapshot()})
}

func (h *Handler) ClearCart(c *gin.Context) {
	cart := h.Sessions.Cart(middleware.GetUserID(c))
	cart.ClearCart()
	c.JSON(http.StatusOK, gin.H{"cart": cart.Snapshot()})
}

// Checkout places an order from the cart, paying from the wallet
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.Sessions.Cart(middleware.GetUserID(c)).Checkout(c.Request.Context(), req.AddressID)
	if err != nil {
		h.fail(c, "checkout", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}
