package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name             string          `json:"name" binding:"required"`
	Cuisine          string          `json:"cuisine"`
	Address          string          `json:"address" binding:"required"`
	ZoneNumber       int             `json:"zone_number" binding:"required,min=1,max=20"`
	BaseDeliveryCost decimal.Decimal `json:"base_delivery_cost"`
	PerZoneCost      decimal.Decimal `json:"per_zone_cost"`
}

// CreateRestaurant registers the manager's restaurant; it stays hidden
// until support approves it.
func (h *Handler) CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Catalog.RestaurantByOwner(c.Request.Context(), ownerID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already manage a restaurant"})
		return
	}

	restaurant := models.Restaurant{
		OwnerID:          ownerID,
		Name:             req.Name,
		Cuisine:          req.Cuisine,
		Address:          req.Address,
		ZoneNumber:       req.ZoneNumber,
		BaseDeliveryCost: req.BaseDeliveryCost,
		PerZoneCost:      req.PerZoneCost,
	}
	if err := h.Catalog.CreateRestaurant(c.Request.Context(), &restaurant); err != nil {
		h.fail(c, "create_restaurant", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant submitted for review", "restaurant": restaurant})
}

// myRestaurant loads the caller's restaurant or writes a 404.
func (h *Handler) myRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	restaurant, err := h.Catalog.RestaurantByOwner(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return nil, false
	}
	return restaurant, true
}

// GetMyRestaurant fetches the restaurant owned by the logged-in manager
func (h *Handler) GetMyRestaurant(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

type UpdateSettingsRequest struct {
	Address          *string          `json:"address"`
	ZoneNumber       *int             `json:"zone_number" binding:"omitempty,min=1,max=20"`
	BaseDeliveryCost *decimal.Decimal `json:"base_delivery_cost"`
	PerZoneCost      *decimal.Decimal `json:"per_zone_cost"`
}

// UpdateRestaurantSettings changes the address, zone and delivery tariffs.
func (h *Handler) UpdateRestaurantSettings(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Catalog.UpdateSettings(c.Request.Context(), restaurant.ID, func(r *models.Restaurant) {
		if req.Address != nil {
			r.Address = *req.Address
		}
		if req.ZoneNumber != nil {
			r.ZoneNumber = *req.ZoneNumber
		}
		if req.BaseDeliveryCost != nil {
			r.BaseDeliveryCost = *req.BaseDeliveryCost
		}
		if req.PerZoneCost != nil {
			r.PerZoneCost = *req.PerZoneCost
		}
	})
	if err != nil {
		h.fail(c, "restaurant_settings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated", "restaurant": updated})
}

// ── Menu Management ──────────────────────────────────────────────────────────

type AddFoodRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	Category    models.FoodCategory `json:"category" binding:"required,oneof=main_dish appetizer beverage"`
	Available   *bool               `json:"available"`
}

func (h *Handler) AddFood(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}
	var req AddFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	food := models.Food{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   req.Available == nil || *req.Available,
	}
	if err := h.Catalog.AddFood(c.Request.Context(), restaurant.ID, &food); err != nil {
		h.fail(c, "add_food", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Food added", "food": food})
}

type UpdateFoodRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Price       *decimal.Decimal     `json:"price"`
	Category    *models.FoodCategory `json:"category" binding:"omitempty,oneof=main_dish appetizer beverage"`
	Available   *bool                `json:"available"`
}

// UpdateFood edits a menu entry. Orders already placed keep their prices.
func (h *Handler) UpdateFood(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	var req UpdateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	food, err := h.Catalog.UpdateFood(c.Request.Context(), restaurant.ID, foodID, func(f *models.Food) {
		if req.Name != nil {
			f.Name = *req.Name
		}
		if req.Description != nil {
			f.Description = *req.Description
		}
		if req.Price != nil {
			f.Price = *req.Price
		}
		if req.Category != nil {
			f.Category = *req.Category
		}
		if req.Available != nil {
			f.Available = *req.Available
		}
	})
	if err != nil {
		h.fail(c, "update_food", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food updated", "food": food})
}

func (h *Handler) RemoveFood(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	if err := h.Catalog.RemoveFood(c.Request.Context(), restaurant.ID, foodID); err != nil {
		h.fail(c, "remove_food", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food removed", "food_id": foodID})
}

// ── Wallet ───────────────────────────────────────────────────────────────────

func (h *Handler) Withdraw(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	balance, err := h.Wallets.Withdraw(c.Request.Context(), restaurant.ID, req.Amount)
	if err != nil {
		h.fail(c, "withdraw", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Withdrawal complete", "wallet": balance})
}
