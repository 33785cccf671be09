package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"food-ordering-api/logger"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartManager owns the cart of one customer session.
type CartManager struct {
	mu         sync.Mutex
	customerID uint
	cart       ShoppingCart

	ledger *Ledger
	repos  *repository.Repositories
	orders *OrderManager
	log    *logger.Logger
}

func NewCartManager(customerID uint, ledger *Ledger, repos *repository.Repositories, orders *OrderManager, log *logger.Logger) *CartManager {
	return &CartManager{customerID: customerID, ledger: ledger, repos: repos, orders: orders, log: log}
}

// CartView is a read-only copy of the cart for rendering.
type CartView struct {
	RestaurantID uint               `json:"restaurant_id,omitempty"`
	Items        []models.OrderItem `json:"items"`
	ItemCount    int                `json:"item_count"`
	Total        decimal.Decimal    `json:"total"`
}

func (m *CartManager) Snapshot() CartView {
	m.mu.Lock()
	defer m.mu.Unlock()
	rid, _ := m.cart.RestaurantID()
	return CartView{
		RestaurantID: rid,
		Items:        m.cart.Items(),
		ItemCount:    m.cart.ItemCount(),
		Total:        m.cart.Total(),
	}
}

// BlocksRestaurant reports whether the cart is non-empty and bound to a
// restaurant other than restaurantID. Callers must clear the cart first.
func (m *CartManager) BlocksRestaurant(restaurantID uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blocks(restaurantID)
}

func (m *CartManager) blocks(restaurantID uint) bool {
	bound, ok := m.cart.RestaurantID()
	return ok && !m.cart.IsEmpty() && bound != restaurantID
}

// AddToCart binds the cart to restaurant and adds food at its current price.
func (m *CartManager) AddToCart(restaurant *models.Restaurant, food models.Food, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blocks(restaurant.ID) {
		return ErrCrossRestaurant
	}
	if food.RestaurantID != restaurant.ID {
		return ErrFoodNotInRestaurant
	}
	if !restaurant.IsApproved() {
		return ErrRestaurantClosed
	}
	if !food.Available {
		return ErrFoodUnavailable
	}
	m.cart.Bind(restaurant.ID)
	return m.cart.AddItem(food, quantity)
}

func (m *CartManager) RemoveFromCart(foodID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart.RemoveItem(foodID)
}

func (m *CartManager) ChangeQuantity(foodID uint, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart.ChangeQuantity(foodID, n)
}

func (m *CartManager) ClearCart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart.Clear()
}

// Checkout turns the cart into an order delivered to one of the customer's
// saved addresses. The restaurant must still be approved and every line
// still on its menu and available. The balance check, the debit and the
// order insert share one transaction; the cart is cleared only after it
// commits.
func (m *CartManager) Checkout(ctx context.Context, addressID uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	restaurantID, _ := m.cart.RestaurantID()
	items := m.cart.Items()
	itemsTotal := m.cart.Total()

	var order *models.Order
	err := m.ledger.RunAtomic(ctx, func(tx *gorm.DB) error {
		customer, err := m.repos.Users.FindByID(tx, m.customerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		if err != nil {
			return err
		}
		addr, err := m.repos.Users.FindAddress(tx, m.customerID, addressID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		if err != nil {
			return err
		}
		rest, err := m.repos.Restaurants.FindByID(tx, restaurantID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestaurantNotFound
		}
		if err != nil {
			return err
		}

		if !rest.IsApproved() {
			return ErrRestaurantClosed
		}
		for _, it := range items {
			food, ok := rest.FindFood(it.FoodID)
			if !ok || !food.Available {
				return fmt.Errorf("%w: %s", ErrFoodUnavailable, it.Name)
			}
		}

		deliveryCost := rest.DeliveryCost(addr.ZoneNumber)
		total := itemsTotal.Add(deliveryCost)
		if !customer.CanAfford(total) {
			return fmt.Errorf("%w: wallet %s, total %s", ErrInsufficientFunds, customer.Wallet, total)
		}
		if err := customer.Debit(total); err != nil {
			return err
		}
		if err := m.repos.Users.UpdateWallet(tx, customer.ID, customer.Wallet); err != nil {
			return err
		}

		order, err = m.orders.createOrder(tx, customer.ID, rest.ID, items, deliveryCost, models.SnapshotOf(*addr))
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			m.log.Info("checkout", logger.RequestID(ctx), "checkout rejected",
				slog.Uint64("customer_id", uint64(m.customerID)), slog.String("reason", err.Error()))
		}
		return nil, err
	}

	m.cart.Clear()
	m.orders.afterCreate(ctx, order)
	return order, nil
}

// ReorderResult lists which lines of the old order made it into the cart.
type ReorderResult struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped"`
}

// Reorder refills the cart from a past order of this customer at current
// menu prices. Foods since removed or marked unavailable are skipped. With
// replace set, a cart bound to another restaurant is cleared first;
// otherwise it blocks the reorder.
func (m *CartManager) Reorder(ctx context.Context, orderID uint, replace bool) (*ReorderResult, error) {
	past, err := m.orders.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if past.CustomerID != m.customerID {
		return nil, ErrOrderNotFound
	}
	rest, err := m.repos.Restaurants.FindByID(m.repos.DB.WithContext(ctx), past.RestaurantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	if !rest.IsApproved() {
		return nil, ErrRestaurantClosed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blocks(rest.ID) {
		if !replace {
			return nil, ErrCrossRestaurant
		}
		m.cart.Clear()
	}
	m.cart.Bind(rest.ID)

	res := &ReorderResult{Added: []string{}, Skipped: []string{}}
	for _, it := range past.Items {
		food, ok := rest.FindFood(it.FoodID)
		if !ok || !food.Available {
			res.Skipped = append(res.Skipped, it.Name)
			continue
		}
		if err := m.cart.AddItem(food, it.Quantity); err != nil {
			return nil, err
		}
		res.Added = append(res.Added, food.Name)
	}
	if m.cart.IsEmpty() {
		m.cart.Clear()
	}
	return res, nil
}
