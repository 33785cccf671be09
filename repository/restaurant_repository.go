package repository

import (
	"context"

	"food-ordering-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func menuByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *RestaurantRepository) Create(tx *gorm.DB, rest *models.Restaurant) error {
	return tx.Omit("Owner").Create(rest).Error
}

// FindByID loads the restaurant with its menu.
func (r *RestaurantRepository) FindByID(tx *gorm.DB, id uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := tx.Preload("Menu", menuByID).First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) FindByOwner(ctx context.Context, ownerID uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := r.DB.WithContext(ctx).Preload("Menu", menuByID).
		Where("owner_id = ?", ownerID).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// List returns restaurants in id order; an empty status lists all of them.
func (r *RestaurantRepository) List(ctx context.Context, status models.RestaurantStatus) ([]models.Restaurant, error) {
	var out []models.Restaurant
	q := r.DB.WithContext(ctx).Order("id ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) UpdateWallet(tx *gorm.DB, id uint, wallet decimal.Decimal) error {
	return tx.Model(&models.Restaurant{}).Where("id = ?", id).Update("wallet", wallet).Error
}

func (r *RestaurantRepository) UpdateRating(tx *gorm.DB, id uint, rating float64, count int) error {
	return tx.Model(&models.Restaurant{}).Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "rating_count": count}).Error
}

// UpdateSettings writes the location and delivery tariffs.
func (r *RestaurantRepository) UpdateSettings(tx *gorm.DB, rest *models.Restaurant) error {
	return tx.Model(&models.Restaurant{}).Where("id = ?", rest.ID).Updates(map[string]interface{}{
		"address":            rest.Address,
		"zone_number":        rest.ZoneNumber,
		"base_delivery_cost": rest.BaseDeliveryCost,
		"per_zone_cost":      rest.PerZoneCost,
	}).Error
}

// UpdateStatusGuard moves a restaurant between approval states only if it
// is still in from.
func (r *RestaurantRepository) UpdateStatusGuard(tx *gorm.DB, id uint, from, to models.RestaurantStatus, reason string) (int64, error) {
	res := tx.Model(&models.Restaurant{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "rejection_reason": reason})
	return res.RowsAffected, res.Error
}

// ---------------- Menu ----------------

func (r *RestaurantRepository) AddFood(tx *gorm.DB, f *models.Food) error {
	return tx.Create(f).Error
}

func (r *RestaurantRepository) FindFood(tx *gorm.DB, restaurantID, foodID uint) (*models.Food, error) {
	var f models.Food
	if err := tx.Where("id = ? AND restaurant_id = ?", foodID, restaurantID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *RestaurantRepository) UpdateFood(tx *gorm.DB, f *models.Food) error {
	return tx.Model(f).Select("name", "description", "price", "category", "available").Updates(f).Error
}

func (r *RestaurantRepository) RemoveFood(tx *gorm.DB, restaurantID, foodID uint) (int64, error) {
	res := tx.Where("id = ? AND restaurant_id = ?", foodID, restaurantID).Delete(&models.Food{})
	return res.RowsAffected, res.Error
}
