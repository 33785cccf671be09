package repository

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

// NextID is count(orders)+1. Orders are never deleted, so ids stay unique
// as long as the caller holds the ledger lock.
func (r *OrderRepository) NextID(tx *gorm.DB) (uint, error) {
	var n int64
	if err := tx.Model(&models.Order{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return uint(n) + 1, nil
}

// Create inserts the order together with its items and history rows.
func (r *OrderRepository) Create(tx *gorm.DB, o *models.Order) error {
	return tx.Omit("Customer", "Restaurant").Create(o).Error
}

func (r *OrderRepository) FindByID(tx *gorm.DB, id uint) (*models.Order, error) {
	var o models.Order
	if err := withDetails(tx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// Find lists orders in id order. Zero ids and no statuses mean "any".
func (r *OrderRepository) Find(ctx context.Context, customerID, restaurantID uint, statuses ...models.OrderStatus) ([]models.Order, error) {
	q := withDetails(r.DB.WithContext(ctx)).Order("id ASC")
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	if restaurantID != 0 {
		q = q.Where("restaurant_id = ?", restaurantID)
	}
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var out []models.Order
	err := q.Find(&out).Error
	return out, err
}

func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to models.OrderStatus) (int64, error) {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) AddHistory(tx *gorm.DB, h *models.OrderStatusHistory) error {
	return tx.Create(h).Error
}

// SetReview stores a review only if none was recorded yet.
func (r *OrderRepository) SetReview(tx *gorm.DB, orderID uint, rating int, comment string) (int64, error) {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND review_rating = 0", orderID).
		Updates(map[string]interface{}{"review_rating": rating, "review_comment": comment})
	return res.RowsAffected, res.Error
}
