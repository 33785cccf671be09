package services

import "errors"

var (
	ErrCrossRestaurant     = errors.New("cart holds items from another restaurant")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCartUnbound         = errors.New("cart is not bound to a restaurant")
	ErrFoodNotInRestaurant = errors.New("food does not belong to this restaurant")
	ErrFoodUnavailable     = errors.New("food is not available")
	ErrFoodNotFound        = errors.New("food not found")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrRestaurantClosed    = errors.New("restaurant is not approved")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrAddressNotFound     = errors.New("address not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrOrderNotDelivered   = errors.New("order is not delivered")
	ErrAlreadyReviewed     = errors.New("order already reviewed")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrStatusConflict      = errors.New("status changed concurrently")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidZone         = errors.New("zone number must be between 1 and 20")
)
