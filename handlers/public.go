package handlers

import (
	"net/http"
	"strings"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns approved restaurants (public)
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.Catalog.ApprovedRestaurants(c.Request.Context())
	if err != nil {
		h.fail(c, "list_restaurants", err)
		return
	}

	if cuisine := c.Query("cuisine"); cuisine != "" {
		filtered := restaurants[:0]
		for _, r := range restaurants {
			if strings.EqualFold(r.Cuisine, cuisine) {
				filtered = append(filtered, r)
			}
		}
		restaurants = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetMenu returns the menu of an approved restaurant (public)
func (h *Handler) GetMenu(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.Catalog.Restaurant(c.Request.Context(), id)
	if err != nil || !restaurant.IsApproved() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	items := restaurant.Menu
	if category := c.Query("category"); category != "" {
		items = nil
		for _, f := range restaurant.Menu {
			if f.Category == models.FoodCategory(category) {
				items = append(items, f)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"zone":       restaurant.ZoneNumber,
		"count":      len(items),
		"menu":       items,
	})
}

// GetStateMachineInfo returns the full order state machine
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Food Ordering Order Lifecycle State Machine",
	})
}
