package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ── Address book ─────────────────────────────────────────────────────────────

type AddAddressRequest struct {
	Description string `json:"description" binding:"required"`
	ZoneNumber  int    `json:"zone_number" binding:"required,min=1,max=20"`
}

func (h *Handler) ListAddresses(c *gin.Context) {
	addresses, err := h.Catalog.Addresses(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.fail(c, "list_addresses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(addresses), "addresses": addresses})
}

func (h *Handler) AddAddress(c *gin.Context) {
	var req AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	addr, err := h.Catalog.AddAddress(c.Request.Context(), middleware.GetUserID(c), req.Description, req.ZoneNumber)
	if err != nil {
		h.fail(c, "add_address", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address saved", "address": addr})
}

type UpdateAddressRequest struct {
	Description *string `json:"description"`
	ZoneNumber  *int    `json:"zone_number" binding:"omitempty,min=1,max=20"`
}

// UpdateAddress edits a saved address. Placed orders keep the old one.
func (h *Handler) UpdateAddress(c *gin.Context) {
	id, ok := paramID(c, "addressId")
	if !ok {
		return
	}
	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	addr, err := h.Catalog.UpdateAddress(c.Request.Context(), middleware.GetUserID(c), id, func(a *models.Address) {
		if req.Description != nil {
			a.Description = *req.Description
		}
		if req.ZoneNumber != nil {
			a.ZoneNumber = *req.ZoneNumber
		}
	})
	if err != nil {
		h.fail(c, "update_address", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address updated", "address": addr})
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	id, ok := paramID(c, "addressId")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteAddress(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		h.fail(c, "delete_address", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted", "address_id": id})
}

// ── Wallet ───────────────────────────────────────────────────────────────────

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) GetWallet(c *gin.Context) {
	balance, err := h.Wallets.Balance(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.fail(c, "get_wallet", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": balance})
}

func (h *Handler) TopUpWallet(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	balance, err := h.Wallets.TopUp(c.Request.Context(), middleware.GetUserID(c), req.Amount)
	if err != nil {
		h.fail(c, "top_up", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Wallet charged", "wallet": balance})
}

// ── Orders ───────────────────────────────────────────────────────────────────

// GetMyOrders returns all orders for the logged-in customer
func (h *Handler) GetMyOrders(c *gin.Context) {
	orders, err := h.Orders.OrdersByCustomer(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.fail(c, "list_orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ownOrder loads an order of the calling customer or writes the error.
func (h *Handler) ownOrder(c *gin.Context) (*models.Order, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	order, err := h.Orders.FindOrder(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "find_order", err)
		return nil, false
	}
	if order.CustomerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return nil, false
	}
	return order, true
}

// GetOrderDetail returns a single order's full detail with history
func (h *Handler) GetOrderDetail(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":             order,
		"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
	})
}

func (h *Handler) customerTransition(c *gin.Context, to models.OrderStatus, message string) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}
	updated, err := h.Orders.UpdateOrderStatus(c.Request.Context(), order.ID, to, statemachine.ActorCustomer)
	if err != nil {
		h.fail(c, "customer_transition", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "order": updated})
}

// CancelOrder cancels a REGISTERED order and refunds it in full
func (h *Handler) CancelOrder(c *gin.Context) {
	h.customerTransition(c, models.StatusCancelled, "Order cancelled and refunded")
}

// ConfirmDelivery marks a SENT order as DELIVERED
func (h *Handler) ConfirmDelivery(c *gin.Context) {
	h.customerTransition(c, models.StatusDelivered, "Delivery confirmed")
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *Handler) ReviewOrder(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reviewed, err := h.Orders.AddOrderReview(c.Request.Context(), order.ID, req.Rating, req.Comment)
	if err != nil {
		h.fail(c, "review_order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thanks for your review", "order": reviewed})
}

// Reorder refills the cart from a past order. ?replace=true clears a cart
// bound to another restaurant instead of refusing.
func (h *Handler) Reorder(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}
	cart := h.Sessions.Cart(middleware.GetUserID(c))
	res, err := cart.Reorder(c.Request.Context(), order.ID, c.Query("replace") == "true")
	if err != nil {
		h.fail(c, "reorder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res, "cart": cart.Snapshot()})
}

// Receipt renders the plain-text invoice of an order.
func (h *Handler) Receipt(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}
	restaurant, err := h.Catalog.Restaurant(c.Request.Context(), order.RestaurantID)
	if err != nil {
		h.fail(c, "receipt", err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(order.Invoice(restaurant.Name)))
}

// ReceiptQRCode returns a PNG pointing at the receipt.
func (h *Handler) ReceiptQRCode(c *gin.Context) {
	order, ok := h.ownOrder(c)
	if !ok {
		return
	}
	png, err := h.QR.Generate(order.ID)
	if err != nil {
		h.fail(c, "receipt_qr", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
