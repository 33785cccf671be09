package services

import (
	"context"
	"errors"

	"food-ordering-api/logger"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"gorm.io/gorm"
)

const (
	MinZone = 1
	MaxZone = 20
)

func validZone(z int) bool {
	return z >= MinZone && z <= MaxZone
}

// Catalog covers restaurants, menus, the approval workflow and customer
// address books. None of it moves money.
type Catalog struct {
	repos *repository.Repositories
	log   *logger.Logger
}

func NewCatalog(repos *repository.Repositories, log *logger.Logger) *Catalog {
	return &Catalog{repos: repos, log: log}
}

func (c *Catalog) db(ctx context.Context) *gorm.DB {
	return c.repos.DB.WithContext(ctx)
}

func notFound(err, as error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return as
	}
	return err
}

// ---------------- Restaurants ----------------

func (c *Catalog) ApprovedRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return c.repos.Restaurants.List(ctx, models.RestaurantApproved)
}

func (c *Catalog) Restaurants(ctx context.Context, status models.RestaurantStatus) ([]models.Restaurant, error) {
	return c.repos.Restaurants.List(ctx, status)
}

// Restaurant loads a restaurant and its menu.
func (c *Catalog) Restaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	rest, err := c.repos.Restaurants.FindByID(c.db(ctx), id)
	if err != nil {
		return nil, notFound(err, ErrRestaurantNotFound)
	}
	return rest, nil
}

func (c *Catalog) RestaurantByOwner(ctx context.Context, ownerID uint) (*models.Restaurant, error) {
	rest, err := c.repos.Restaurants.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, ErrRestaurantNotFound)
	}
	return rest, nil
}

// CreateRestaurant registers a restaurant pending review. Zero tariffs
// fall back to the platform defaults.
func (c *Catalog) CreateRestaurant(ctx context.Context, rest *models.Restaurant) error {
	if !validZone(rest.ZoneNumber) {
		return ErrInvalidZone
	}
	if rest.BaseDeliveryCost.IsNegative() || rest.PerZoneCost.IsNegative() {
		return ErrInvalidAmount
	}
	if rest.BaseDeliveryCost.IsZero() {
		rest.BaseDeliveryCost = models.DefaultBaseDeliveryCost
	}
	if rest.PerZoneCost.IsZero() {
		rest.PerZoneCost = models.DefaultPerZoneCost
	}
	rest.Status = models.RestaurantPending
	if err := c.repos.Restaurants.Create(c.db(ctx), rest); err != nil {
		return err
	}
	c.log.Info("restaurant_created", logger.RequestID(ctx), "restaurant awaiting review: "+rest.Name)
	return nil
}

// UpdateSettings edits a restaurant's address, zone and delivery tariffs.
// New values price the next checkout; placed orders keep their delivery cost.
func (c *Catalog) UpdateSettings(ctx context.Context, restaurantID uint, edit func(*models.Restaurant)) (*models.Restaurant, error) {
	rest, err := c.Restaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	edit(rest)
	if !validZone(rest.ZoneNumber) {
		return nil, ErrInvalidZone
	}
	if rest.BaseDeliveryCost.IsNegative() || rest.PerZoneCost.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if err := c.repos.Restaurants.UpdateSettings(c.db(ctx), rest); err != nil {
		return nil, err
	}
	c.log.Info("restaurant_settings", logger.RequestID(ctx), "settings updated for "+rest.Name)
	return rest, nil
}

func (c *Catalog) Approve(ctx context.Context, id uint) error {
	return c.review(ctx, id, models.RestaurantApproved, "")
}

func (c *Catalog) Reject(ctx context.Context, id uint, reason string) error {
	return c.review(ctx, id, models.RestaurantRejected, reason)
}

func (c *Catalog) review(ctx context.Context, id uint, to models.RestaurantStatus, reason string) error {
	if _, err := c.Restaurant(ctx, id); err != nil {
		return err
	}
	affected, err := c.repos.Restaurants.UpdateStatusGuard(c.db(ctx), id, models.RestaurantPending, to, reason)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStatusConflict
	}
	c.log.Info("restaurant_reviewed", logger.RequestID(ctx), "restaurant "+string(to))
	return nil
}

// ---------------- Menu ----------------

func (c *Catalog) AddFood(ctx context.Context, restaurantID uint, food *models.Food) error {
	if !food.Price.IsPositive() {
		return ErrInvalidAmount
	}
	food.RestaurantID = restaurantID
	return c.repos.Restaurants.AddFood(c.db(ctx), food)
}

// UpdateFood applies edit to an existing food. Past orders keep their
// snapshot prices.
func (c *Catalog) UpdateFood(ctx context.Context, restaurantID, foodID uint, edit func(*models.Food)) (*models.Food, error) {
	food, err := c.repos.Restaurants.FindFood(c.db(ctx), restaurantID, foodID)
	if err != nil {
		return nil, notFound(err, ErrFoodNotFound)
	}
	edit(food)
	if !food.Price.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := c.repos.Restaurants.UpdateFood(c.db(ctx), food); err != nil {
		return nil, err
	}
	return food, nil
}

// RemoveFood takes a food off the menu. Carts still holding it fail at
// checkout and reorders skip it.
func (c *Catalog) RemoveFood(ctx context.Context, restaurantID, foodID uint) error {
	n, err := c.repos.Restaurants.RemoveFood(c.db(ctx), restaurantID, foodID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFoodNotFound
	}
	return nil
}

// ---------------- Addresses ----------------

func (c *Catalog) AddAddress(ctx context.Context, userID uint, description string, zone int) (*models.Address, error) {
	if !validZone(zone) {
		return nil, ErrInvalidZone
	}
	a := &models.Address{UserID: userID, Description: description, ZoneNumber: zone}
	if err := c.repos.Users.AddAddress(c.db(ctx), a); err != nil {
		return nil, err
	}
	return a, nil
}

func (c *Catalog) Addresses(ctx context.Context, userID uint) ([]models.Address, error) {
	return c.repos.Users.ListAddresses(ctx, userID)
}

func (c *Catalog) UpdateAddress(ctx context.Context, userID, addressID uint, edit func(*models.Address)) (*models.Address, error) {
	a, err := c.repos.Users.FindAddress(c.db(ctx), userID, addressID)
	if err != nil {
		return nil, notFound(err, ErrAddressNotFound)
	}
	edit(a)
	if !validZone(a.ZoneNumber) {
		return nil, ErrInvalidZone
	}
	if err := c.repos.Users.UpdateAddress(c.db(ctx), a); err != nil {
		return nil, err
	}
	return a, nil
}

func (c *Catalog) DeleteAddress(ctx context.Context, userID, addressID uint) error {
	n, err := c.repos.Users.DeleteAddress(c.db(ctx), userID, addressID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAddressNotFound
	}
	return nil
}
