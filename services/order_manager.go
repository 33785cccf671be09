package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"food-ordering-api/logger"
	"food-ordering-api/models"
	"food-ordering-api/repository"
	"food-ordering-api/statemachine"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderManager struct {
	ledger    *Ledger
	repos     *repository.Repositories
	log       *logger.Logger
	publisher EventPublisher
	reviews   ReviewMarker
	now       func() time.Time
}

func NewOrderManager(ledger *Ledger, repos *repository.Repositories, log *logger.Logger) *OrderManager {
	return &OrderManager{ledger: ledger, repos: repos, log: log, now: time.Now}
}

// WithPublisher enables order events. A nil publisher disables them.
func (m *OrderManager) WithPublisher(p EventPublisher) *OrderManager {
	m.publisher = p
	return m
}

// WithReviewMarker enables the review marker cache.
func (m *OrderManager) WithReviewMarker(r ReviewMarker) *OrderManager {
	m.reviews = r
	return m
}

// CreateOrder registers an order without touching any wallet. Checkout uses
// createOrder inside its own transaction instead.
func (m *OrderManager) CreateOrder(ctx context.Context, customerID, restaurantID uint, items []models.OrderItem,
	deliveryCost decimal.Decimal, address models.AddressSnapshot) (*models.Order, error) {
	var order *models.Order
	err := m.ledger.RunAtomic(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = m.createOrder(tx, customerID, restaurantID, items, deliveryCost, address)
		return err
	})
	if err != nil {
		return nil, err
	}
	m.afterCreate(ctx, order)
	return order, nil
}

func (m *OrderManager) createOrder(tx *gorm.DB, customerID, restaurantID uint, items []models.OrderItem,
	deliveryCost decimal.Decimal, address models.AddressSnapshot) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	id, err := m.repos.Orders.NextID(tx)
	if err != nil {
		return nil, err
	}

	lines := make([]models.OrderItem, len(items))
	for i, it := range items {
		lines[i] = models.OrderItem{FoodID: it.FoodID, Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}

	order := &models.Order{
		ID:              id,
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		Status:          models.StatusRegistered,
		DeliveryCost:    deliveryCost,
		DeliveryAddress: address,
		OrderTime:       m.now(),
		Items:           lines,
		StatusHistory: []models.OrderStatusHistory{{
			ToStatus: models.StatusRegistered,
			Actor:    statemachine.ActorCustomer,
			Note:     "order placed",
		}},
	}
	if err := m.repos.Orders.Create(tx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (m *OrderManager) afterCreate(ctx context.Context, order *models.Order) {
	m.log.Info("order_created", logger.RequestID(ctx), "order registered",
		slog.Uint64("order_id", uint64(order.ID)),
		slog.String("final_amount", order.FinalAmount().String()))
	publish(ctx, m.publisher, m.log, models.NewOrderEvent(models.EventOrderCreated, order))
}

// ---------------- Queries ----------------

func (m *OrderManager) FindOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := m.repos.Orders.FindByID(m.repos.DB.WithContext(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

func (m *OrderManager) OrdersByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	return m.repos.Orders.Find(ctx, customerID, 0)
}

func (m *OrderManager) OrdersByRestaurant(ctx context.Context, restaurantID uint) ([]models.Order, error) {
	return m.repos.Orders.Find(ctx, 0, restaurantID)
}

// ActiveOrdersByRestaurant lists orders not yet delivered or cancelled.
func (m *OrderManager) ActiveOrdersByRestaurant(ctx context.Context, restaurantID uint) ([]models.Order, error) {
	return m.repos.Orders.Find(ctx, 0, restaurantID,
		models.StatusRegistered, models.StatusPreparing, models.StatusSent)
}

// NewOrdersByRestaurant lists orders awaiting acceptance.
func (m *OrderManager) NewOrdersByRestaurant(ctx context.Context, restaurantID uint) ([]models.Order, error) {
	return m.repos.Orders.Find(ctx, 0, restaurantID, models.StatusRegistered)
}

func (m *OrderManager) AllOrders(ctx context.Context) ([]models.Order, error) {
	return m.repos.Orders.Find(ctx, 0, 0)
}

// Dashboard summarizes all orders for support users.
type Dashboard struct {
	TotalOrders      int                        `json:"total_orders"`
	ByStatus         map[models.OrderStatus]int `json:"by_status"`
	DeliveredRevenue decimal.Decimal            `json:"delivered_revenue"`
	RefundedAmount   decimal.Decimal            `json:"refunded_amount"`
}

func (m *OrderManager) Dashboard(ctx context.Context) (*Dashboard, error) {
	orders, err := m.AllOrders(ctx)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{ByStatus: map[models.OrderStatus]int{}}
	for i := range orders {
		o := &orders[i]
		d.TotalOrders++
		d.ByStatus[o.Status]++
		switch o.Status {
		case models.StatusDelivered:
			d.DeliveredRevenue = d.DeliveredRevenue.Add(o.FinalAmount())
		case models.StatusCancelled:
			d.RefundedAmount = d.RefundedAmount.Add(o.FinalAmount())
		}
	}
	return d, nil
}

// ---------------- Lifecycle ----------------

// UpdateOrderStatus moves an order along the state machine on behalf of
// actor and applies the money side effects in the same transaction:
// REGISTERED -> CANCELLED refunds the customer, -> DELIVERED credits the
// restaurant. The write is guarded on the old status so a side effect runs
// at most once.
func (m *OrderManager) UpdateOrderStatus(ctx context.Context, orderID uint, to models.OrderStatus, actor string) (*models.Order, error) {
	var (
		order *models.Order
		from  models.OrderStatus
	)
	err := m.ledger.RunAtomic(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = m.repos.Orders.FindByID(tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		from = order.Status

		if err := statemachine.CanTransition(from, to, actor); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		affected, err := m.repos.Orders.UpdateStatusGuard(tx, order.ID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStatusConflict
		}

		switch {
		case from == models.StatusRegistered && to == models.StatusCancelled:
			if err := m.refund(tx, order); err != nil {
				return err
			}
		case to == models.StatusDelivered:
			if err := m.settle(tx, order); err != nil {
				return err
			}
		}

		h := &models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   to,
			Actor:      actor,
			Note:       fmt.Sprintf("%s by %s", statusVerb(to), actor),
		}
		if err := m.repos.Orders.AddHistory(tx, h); err != nil {
			return err
		}
		order.Status = to
		order.StatusHistory = append(order.StatusHistory, *h)
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.log.Info("order_status_changed", logger.RequestID(ctx), "order status updated",
		slog.Uint64("order_id", uint64(order.ID)),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("actor", actor))
	ev := models.NewOrderEvent(models.EventOrderStatusChanged, order)
	ev.FromStatus = from
	publish(ctx, m.publisher, m.log, ev)
	return order, nil
}

func statusVerb(s models.OrderStatus) string {
	switch s {
	case models.StatusPreparing:
		return "accepted"
	case models.StatusSent:
		return "dispatched"
	case models.StatusDelivered:
		return "delivered"
	case models.StatusCancelled:
		return "cancelled"
	}
	return "updated"
}

func (m *OrderManager) refund(tx *gorm.DB, order *models.Order) error {
	customer, err := m.repos.Users.FindByID(tx, order.CustomerID)
	if err != nil {
		return fmt.Errorf("refund: load customer: %w", err)
	}
	if err := customer.Credit(order.FinalAmount()); err != nil {
		return fmt.Errorf("refund: %w", err)
	}
	return m.repos.Users.UpdateWallet(tx, customer.ID, customer.Wallet)
}

func (m *OrderManager) settle(tx *gorm.DB, order *models.Order) error {
	rest, err := m.repos.Restaurants.FindByID(tx, order.RestaurantID)
	if err != nil {
		return fmt.Errorf("settle: load restaurant: %w", err)
	}
	if err := rest.Credit(order.FinalAmount()); err != nil {
		return fmt.Errorf("settle: %w", err)
	}
	return m.repos.Restaurants.UpdateWallet(tx, rest.ID, rest.Wallet)
}

// AddOrderReview records the single review of a delivered order and folds
// the score into the restaurant's mean rating.
func (m *OrderManager) AddOrderReview(ctx context.Context, orderID uint, rating int, comment string) (*models.Order, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if m.reviews != nil {
		seen, err := m.reviews.IsReviewed(ctx, orderID)
		if err != nil {
			m.log.Warn("review_marker", logger.RequestID(ctx), "review marker lookup failed: "+err.Error())
		} else if seen {
			return nil, ErrAlreadyReviewed
		}
	}

	var order *models.Order
	err := m.ledger.RunAtomic(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = m.repos.Orders.FindByID(tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != models.StatusDelivered {
			return ErrOrderNotDelivered
		}
		if order.IsReviewed() {
			return ErrAlreadyReviewed
		}

		affected, err := m.repos.Orders.SetReview(tx, order.ID, rating, comment)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAlreadyReviewed
		}

		rest, err := m.repos.Restaurants.FindByID(tx, order.RestaurantID)
		if err != nil {
			return err
		}
		rest.AddRating(rating)
		if err := m.repos.Restaurants.UpdateRating(tx, rest.ID, rest.Rating, rest.RatingCount); err != nil {
			return err
		}
		order.ReviewRating = rating
		order.ReviewComment = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if m.reviews != nil {
		if err := m.reviews.MarkReviewed(ctx, order.ID); err != nil {
			m.log.Warn("review_marker", logger.RequestID(ctx), "failed to set review marker: "+err.Error())
		}
	}
	m.log.Info("order_reviewed", logger.RequestID(ctx), "review recorded",
		slog.Uint64("order_id", uint64(order.ID)), slog.Int("rating", rating))
	publish(ctx, m.publisher, m.log, models.NewOrderEvent(models.EventOrderReviewed, order))
	return order, nil
}
