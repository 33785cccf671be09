package services

import (
	"food-ordering-api/models"

	"github.com/shopspring/decimal"
)

// ShoppingCart is an in-memory cart bound to at most one restaurant.
// Every line references a food of the bound restaurant; an empty cart may
// be unbound. Not safe for concurrent use; CartManager guards it.
type ShoppingCart struct {
	restaurantID uint
	items        []models.OrderItem
}

// Bind ties the cart to a restaurant. Rebinding a non-empty cart to another
// restaurant is the caller's mistake; CartManager prevents it.
func (c *ShoppingCart) Bind(restaurantID uint) {
	c.restaurantID = restaurantID
}

// RestaurantID reports the bound restaurant, or false when unbound.
func (c *ShoppingCart) RestaurantID() (uint, bool) {
	return c.restaurantID, c.restaurantID != 0
}

// AddItem snapshots food's current name and price. Non-positive quantities
// are ignored.
func (c *ShoppingCart) AddItem(food models.Food, quantity int) error {
	if c.restaurantID == 0 {
		return ErrCartUnbound
	}
	if food.RestaurantID != c.restaurantID {
		return ErrFoodNotInRestaurant
	}
	if quantity <= 0 {
		return nil
	}
	for i := range c.items {
		if c.items[i].FoodID == food.ID {
			merged := c.items[i].Quantity + quantity
			if merged <= 0 {
				c.removeAt(i)
				return nil
			}
			c.items[i].Quantity = merged
			return nil
		}
	}
	c.items = append(c.items, models.OrderItem{
		FoodID:    food.ID,
		Name:      food.Name,
		Quantity:  quantity,
		UnitPrice: food.Price,
	})
	return nil
}

func (c *ShoppingCart) RemoveItem(foodID uint) {
	for i := range c.items {
		if c.items[i].FoodID == foodID {
			c.removeAt(i)
			return
		}
	}
}

// ChangeQuantity sets a line's quantity; n <= 0 removes it. Unknown foods
// are ignored.
func (c *ShoppingCart) ChangeQuantity(foodID uint, n int) {
	for i := range c.items {
		if c.items[i].FoodID == foodID {
			if n <= 0 {
				c.removeAt(i)
			} else {
				c.items[i].Quantity = n
			}
			return
		}
	}
}

// removeAt drops line i; removing the last line unbinds the cart.
func (c *ShoppingCart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
	if len(c.items) == 0 {
		c.Clear()
	}
}

// Clear empties the cart and unbinds it.
func (c *ShoppingCart) Clear() {
	c.items = nil
	c.restaurantID = 0
}

func (c *ShoppingCart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func (c *ShoppingCart) IsEmpty() bool {
	return len(c.items) == 0
}

// ItemCount is the sum of all line quantities.
func (c *ShoppingCart) ItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Items returns a copy of the lines.
func (c *ShoppingCart) Items() []models.OrderItem {
	out := make([]models.OrderItem, len(c.items))
	copy(out, c.items)
	return out
}
