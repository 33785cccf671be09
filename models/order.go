package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusRegistered OrderStatus = "REGISTERED"
	StatusPreparing  OrderStatus = "PREPARING"
	StatusSent       OrderStatus = "SENT"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// AddressSnapshot is the delivery address frozen at checkout time.
type AddressSnapshot struct {
	Description string `json:"description"`
	ZoneNumber  int    `json:"zone_number"`
}

// SnapshotOf copies an address so later edits do not leak into orders.
func SnapshotOf(a Address) AddressSnapshot {
	return AddressSnapshot{Description: a.Description, ZoneNumber: a.ZoneNumber}
}

type Order struct {
	ID              uint                 `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CustomerID      uint                 `json:"customer_id" gorm:"not null;index"`
	Customer        User                 `json:"-" gorm:"foreignKey:CustomerID"`
	RestaurantID    uint                 `json:"restaurant_id" gorm:"not null;index"`
	Restaurant      Restaurant           `json:"-" gorm:"foreignKey:RestaurantID"`
	Status          OrderStatus          `json:"status" gorm:"not null;default:'REGISTERED'"`
	DeliveryCost    decimal.Decimal      `json:"delivery_cost" gorm:"type:decimal(14,2);not null"`
	DeliveryAddress AddressSnapshot      `json:"delivery_address" gorm:"embedded;embeddedPrefix:delivery_"`
	OrderTime       time.Time            `json:"order_time" gorm:"not null"`
	ReviewRating    int                  `json:"review_rating" gorm:"default:0"`
	ReviewComment   string               `json:"review_comment,omitempty"`
	Items           []OrderItem          `json:"items" gorm:"foreignKey:OrderID"`
	StatusHistory   []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	OrderID   uint            `json:"-" gorm:"not null;index"`
	FoodID    uint            `json:"food_id" gorm:"not null"`
	Name      string          `json:"name"`                                        // snapshot name
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(14,2);not null"` // snapshot price
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	Actor      string      `json:"actor"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

// LineTotal is unit price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemsTotal sums the item lines.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// FinalAmount is items plus delivery, computed on demand.
func (o *Order) FinalAmount() decimal.Decimal {
	return o.ItemsTotal().Add(o.DeliveryCost)
}

// IsReviewed reports whether a review score has been recorded.
func (o *Order) IsReviewed() bool {
	return o.ReviewRating != 0
}

func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		ItemsTotal  decimal.Decimal `json:"items_total"`
		FinalAmount decimal.Decimal `json:"final_amount"`
	}{plain(o), o.ItemsTotal(), o.FinalAmount()})
}

// Invoice renders a plain-text invoice.
func (o *Order) Invoice(restaurantName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n", o.ID)
	fmt.Fprintf(&b, "Restaurant: %s\n", restaurantName)
	fmt.Fprintf(&b, "Order Time: %s\n", o.OrderTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "Delivery Address: %s (zone %d)\n", o.DeliveryAddress.Description, o.DeliveryAddress.ZoneNumber)
	fmt.Fprintf(&b, "Status: %s\n\nItems:\n", o.Status)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s x%d = %s\n", it.Name, it.Quantity, it.LineTotal().StringFixed(0))
	}
	fmt.Fprintf(&b, "\nItems Total: %s\n", o.ItemsTotal().StringFixed(0))
	fmt.Fprintf(&b, "Delivery Cost: %s\n", o.DeliveryCost.StringFixed(0))
	fmt.Fprintf(&b, "Total: %s\n", o.FinalAmount().StringFixed(0))
	return b.String()
}
