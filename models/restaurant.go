package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestaurantStatus tracks the approval workflow run by support users
type RestaurantStatus string

const (
	RestaurantPending  RestaurantStatus = "pending_review"
	RestaurantApproved RestaurantStatus = "approved"
	RestaurantRejected RestaurantStatus = "rejected"
)

type FoodCategory string

const (
	CategoryMainDish  FoodCategory = "main_dish"
	CategoryAppetizer FoodCategory = "appetizer"
	CategoryBeverage  FoodCategory = "beverage"
)

var (
	DefaultBaseDeliveryCost = decimal.NewFromInt(5000)
	DefaultPerZoneCost      = decimal.NewFromInt(1000)
)

type Restaurant struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	OwnerID          uint             `json:"owner_id" gorm:"not null;index"`
	Owner            User             `json:"-" gorm:"foreignKey:OwnerID"`
	Name             string           `json:"name" gorm:"not null"`
	Address          string           `json:"address"`
	ZoneNumber       int              `json:"zone_number" gorm:"not null"`
	Cuisine          string           `json:"cuisine"`
	Status           RestaurantStatus `json:"status" gorm:"not null;default:'pending_review'"`
	RejectionReason  string           `json:"rejection_reason,omitempty"`
	Rating           float64          `json:"rating" gorm:"default:0"`
	RatingCount      int              `json:"rating_count" gorm:"default:0"`
	Wallet           decimal.Decimal  `json:"wallet" gorm:"type:decimal(14,2);not null"`
	BaseDeliveryCost decimal.Decimal  `json:"base_delivery_cost" gorm:"type:decimal(14,2);not null"`
	PerZoneCost      decimal.Decimal  `json:"per_zone_cost" gorm:"type:decimal(14,2);not null"`
	Menu             []Food           `json:"menu,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type Food struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	RestaurantID uint            `json:"restaurant_id" gorm:"not null;index"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(14,2);not null"`
	Category     FoodCategory    `json:"category"`
	Available    bool            `json:"available"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DeliveryCost prices a delivery into customerZone:
// base + |customerZone - ZoneNumber| * perZone.
func (r *Restaurant) DeliveryCost(customerZone int) decimal.Decimal {
	diff := customerZone - r.ZoneNumber
	if diff < 0 {
		diff = -diff
	}
	return r.BaseDeliveryCost.Add(r.PerZoneCost.Mul(decimal.NewFromInt(int64(diff))))
}

// AddRating folds one review score into the running mean.
func (r *Restaurant) AddRating(score int) {
	r.Rating = (r.Rating*float64(r.RatingCount) + float64(score)) / float64(r.RatingCount+1)
	r.RatingCount++
}

// Credit accrues revenue.
func (r *Restaurant) Credit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	r.Wallet = r.Wallet.Add(amount)
	return nil
}

// Debit pays out revenue, e.g. for a withdrawal.
func (r *Restaurant) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNegativeAmount
	}
	if r.Wallet.LessThan(amount) {
		return ErrWalletTooLow
	}
	r.Wallet = r.Wallet.Sub(amount)
	return nil
}

// IsApproved reports whether customers may order from the restaurant.
func (r *Restaurant) IsApproved() bool {
	return r.Status == RestaurantApproved
}

// FindFood looks a food up in the loaded menu.
func (r *Restaurant) FindFood(foodID uint) (Food, bool) {
	for _, f := range r.Menu {
		if f.ID == foodID {
			return f, true
		}
	}
	return Food{}, false
}
