package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-ordering-api/logger"
	"food-ordering-api/middleware"
	"food-ordering-api/repository"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// Handler carries the services every endpoint needs.
type Handler struct {
	Repos    *repository.Repositories
	Catalog  *services.Catalog
	Orders   *services.OrderManager
	Sessions *services.Sessions
	Wallets  *services.Wallets
	QR       services.QRGenerator
	JWT      *middleware.JWT
	Log      *logger.Logger
}

// statusFor maps core errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrRestaurantNotFound),
		errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrAddressNotFound),
		errors.Is(err, services.ErrFoodNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrCrossRestaurant),
		errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrStatusConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrOrderNotDelivered),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrFoodUnavailable),
		errors.Is(err, services.ErrRestaurantClosed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrInvalidZone),
		errors.Is(err, services.ErrCartUnbound),
		errors.Is(err, services.ErrFoodNotInRestaurant):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c *gin.Context, action string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Log.Error(action, logger.RequestID(c.Request.Context()), "request failed", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// paramID parses a positive numeric path parameter, answering 400 otherwise.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
