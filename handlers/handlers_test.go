package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/logger"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/repository"
	"food-ordering-api/routes"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	h      *handlers.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	lg := logger.Discard()
	repos := repository.New(db)
	ledger := services.NewLedger(db)
	orders := services.NewOrderManager(ledger, repos, lg)
	h := &handlers.Handler{
		Repos:    repos,
		Catalog:  services.NewCatalog(repos, lg),
		Orders:   orders,
		Sessions: services.NewSessions(ledger, repos, orders, lg),
		Wallets:  services.NewWallets(ledger, repos, lg),
		QR:       services.ReceiptQR{BaseURL: "http://example.test"},
		JWT:      middleware.NewJWT([]byte("test-secret")),
		Log:      lg,
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(lg))
	routes.SetupRoutes(r, h)
	return &testServer{t: t, router: r, h: h}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) signup(phone string, role models.UserRole) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "User " + phone, "phone": phone, "password": "secret1", "role": role,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(s.t, w)["token"].(string)
}

func (s *testServer) supportToken() string {
	s.t.Helper()
	u := &models.User{Name: "Support", Phone: "support", PasswordHash: "x", Role: models.RoleSupport}
	require.NoError(s.t, s.h.Repos.Users.Create(s.h.Repos.DB, u))
	token, err := s.h.JWT.GenerateToken(u)
	require.NoError(s.t, err)
	return token
}

type restaurantSetup struct {
	manager string
	id      uint
	foods   map[string]uint
}

// openRestaurant creates, approves and stocks a restaurant.
func (s *testServer) openRestaurant(phone, name string, zone int, support string, menu map[string]int) restaurantSetup {
	s.t.Helper()
	manager := s.signup(phone, models.RoleManager)

	w := s.do(http.MethodPost, "/api/restaurant/", manager, gin.H{"name": name, "address": "Main St", "zone_number": zone})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	rest := decode(s.t, w)["restaurant"].(map[string]interface{})
	id := uint(rest["id"].(float64))
	assert.Equal(s.t, "pending_review", rest["status"])

	w = s.do(http.MethodPut, fmt.Sprintf("/api/admin/restaurants/%d/approve", id), support, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	foods := map[string]uint{}
	for food, price := range menu {
		w = s.do(http.MethodPost, "/api/restaurant/menu", manager, gin.H{"name": food, "price": price, "category": "main_dish"})
		require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
		foods[food] = uint(decode(s.t, w)["food"].(map[string]interface{})["id"].(float64))
	}
	return restaurantSetup{manager: manager, id: id, foods: foods}
}

func TestOrderFlow(t *testing.T) {
	s := newTestServer(t)
	support := s.supportToken()
	shandiz := s.openRestaurant("0930", "Shandiz", 5, support, map[string]int{"Kebab": 30000, "Doogh": 5000})

	customer := s.signup("0912", models.RoleCustomer)
	w := s.do(http.MethodPost, "/api/customer/addresses", customer, gin.H{"description": "Home", "zone_number": 8})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	addressID := decode(t, w)["address"].(map[string]interface{})["id"]

	w = s.do(http.MethodPost, "/api/customer/wallet/top-up", customer, gin.H{"amount": 100000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/customer/cart/items", customer, gin.H{"restaurant_id": shandiz.id, "food_id": shandiz.foods["Kebab"], "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/api/customer/cart/items", customer, gin.H{"restaurant_id": shandiz.id, "food_id": shandiz.foods["Doogh"], "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cart := decode(t, w)["cart"].(map[string]interface{})
	assert.Equal(t, "65000", cart["total"])

	w = s.do(http.MethodPost, "/api/customer/cart/checkout", customer, gin.H{"address_id": addressID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode(t, w)["order"].(map[string]interface{})
	assert.EqualValues(t, 1, order["id"])
	assert.Equal(t, "73000", order["final_amount"])
	assert.Equal(t, "8000", order["delivery_cost"])

	w = s.do(http.MethodGet, "/api/customer/wallet", customer, nil)
	assert.Equal(t, "27000", decode(t, w)["wallet"])

	// the customer cannot skip ahead
	w = s.do(http.MethodPut, "/api/customer/orders/1/deliver", customer, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	for _, status := range []string{"PREPARING", "SENT"} {
		w = s.do(http.MethodPut, "/api/restaurant/orders/1/status", shandiz.manager, gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w = s.do(http.MethodPut, "/api/restaurant/orders/1/status", shandiz.manager, gin.H{"status": "CANCELLED"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["valid_next_states"], "DELIVERED")

	w = s.do(http.MethodPut, "/api/customer/orders/1/deliver", customer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/customer/orders/1/review", customer, gin.H{"rating": 4, "comment": "tasty"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/api/customer/orders/1/review", customer, gin.H{"rating": 5})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = s.do(http.MethodPost, "/api/customer/orders/1/review", customer, gin.H{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/restaurant/", shandiz.manager, nil)
	rest := decode(t, w)["restaurant"].(map[string]interface{})
	assert.Equal(t, "73000", rest["wallet"])
	assert.EqualValues(t, 4, rest["rating"])

	w = s.do(http.MethodPost, "/api/restaurant/wallet/withdraw", shandiz.manager, gin.H{"amount": 100000})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	w = s.do(http.MethodPost, "/api/restaurant/wallet/withdraw", shandiz.manager, gin.H{"amount": 70000})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3000", decode(t, w)["wallet"])

	w = s.do(http.MethodGet, "/api/customer/orders/1/receipt", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Restaurant: Shandiz")
	assert.Contains(t, w.Body.String(), "Total: 73000")

	w = s.do(http.MethodGet, "/api/customer/orders/1/qrcode", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = s.do(http.MethodGet, "/api/admin/dashboard", support, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode(t, w)["dashboard"].(map[string]interface{})
	assert.Equal(t, "73000", dash["delivered_revenue"])
}

func TestCheckoutErrors(t *testing.T) {
	s := newTestServer(t)
	support := s.supportToken()
	shandiz := s.openRestaurant("0930", "Shandiz", 5, support, map[string]int{"Kebab": 30000})
	pizza := s.openRestaurant("0931", "Pizza Station", 12, support, map[string]int{"Margherita": 45000})

	customer := s.signup("0912", models.RoleCustomer)
	w := s.do(http.MethodPost, "/api/customer/addresses", customer, gin.H{"description": "Home", "zone_number": 8})
	addressID := decode(t, w)["address"].(map[string]interface{})["id"]

	w = s.do(http.MethodPost, "/api/customer/cart/checkout", customer, gin.H{"address_id": addressID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/api/customer/cart/items", customer, gin.H{"restaurant_id": shandiz.id, "food_id": shandiz.foods["Kebab"], "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/customer/cart/items", customer, gin.H{"restaurant_id": pizza.id, "food_id": pizza.foods["Margherita"], "quantity": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, decode(t, w)["hint"])

	w = s.do(http.MethodPost, "/api/customer/cart/items", customer, gin.H{"restaurant_id": shandiz.id, "food_id": pizza.foods["Margherita"], "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// empty wallet
	w = s.do(http.MethodPost, "/api/customer/cart/checkout", customer, gin.H{"address_id": addressID})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, decode(t, w)["error"], "insufficient funds")

	w = s.do(http.MethodGet, "/api/customer/cart", customer, nil)
	assert.EqualValues(t, 1, decode(t, w)["cart"].(map[string]interface{})["item_count"])

	w = s.do(http.MethodDelete, "/api/customer/cart", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/api/customer/cart/items", customer, gin.H{"restaurant_id": pizza.id, "food_id": pizza.foods["Margherita"], "quantity": 1})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCancelRefundAndOwnership(t *testing.T) {
	s := newTestServer(t)
	support := s.supportToken()
	shandiz := s.openRestaurant("0930", "Shandiz", 5, support, map[string]int{"Kebab": 30000})

	customer := s.signup("0912", models.RoleCustomer)
	w := s.do(http.MethodPost, "/api/customer/addresses", customer, gin.H{"description": "Home", "zone_number": 5})
	addressID := decode(t, w)["address"].(map[string]interface{})["id"]
	s.do(http.MethodPost, "/api/customer/wallet/top-up", customer, gin.H{"amount": "50000"})
	s.do(http.MethodPost, "/api/customer/cart/items", customer, gin.H{"restaurant_id": shandiz.id, "food_id": shandiz.foods["Kebab"], "quantity": 1})
	w = s.do(http.MethodPost, "/api/customer/cart/checkout", customer, gin.H{"address_id": addressID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/customer/wallet", customer, nil)
	assert.Equal(t, "15000", decode(t, w)["wallet"])

	other := s.signup("0913", models.RoleCustomer)
	w = s.do(http.MethodPut, "/api/customer/orders/1/cancel", other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, "/api/customer/orders/2", customer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/api/customer/orders/abc", customer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/customer/orders/1/cancel", customer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodGet, "/api/customer/wallet", customer, nil)
	assert.Equal(t, "50000", decode(t, w)["wallet"])

	w = s.do(http.MethodPut, "/api/customer/orders/1/cancel", customer, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodGet, "/api/customer/orders/1", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode(t, w)["order"].(map[string]interface{})["status_history"].([]interface{})
	assert.Len(t, history, 2)

	w = s.do(http.MethodGet, "/api/restaurant/orders?view=active", shandiz.manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["count"])
	w = s.do(http.MethodGet, "/api/restaurant/orders?view=bogus", shandiz.manager, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthAndCatalog(t *testing.T) {
	s := newTestServer(t)
	support := s.supportToken()

	customer := s.signup("0912", models.RoleCustomer)
	w := s.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": "Dup", "phone": "0912", "password": "secret1", "role": "customer"})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = s.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": "Boss", "phone": "0999", "password": "secret1", "role": "support"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"phone": "0912", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"phone": "0912", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["token"])

	w = s.do(http.MethodGet, "/api/restaurant/", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	manager := s.signup("0930", models.RoleManager)
	w = s.do(http.MethodPost, "/api/restaurant/", manager, gin.H{"name": "Hidden", "address": "X", "zone_number": 3})
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(http.MethodPost, "/api/restaurant/", manager, gin.H{"name": "Again", "address": "X", "zone_number": 3})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/restaurants", "", nil)
	assert.EqualValues(t, 0, decode(t, w)["count"])
	w = s.do(http.MethodGet, "/api/restaurants/1/menu", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/admin/restaurants?status=pending_review", support, nil)
	assert.EqualValues(t, 1, decode(t, w)["count"])
	w = s.do(http.MethodPut, "/api/admin/restaurants/1/reject", support, gin.H{"reason": "no license"})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPut, "/api/admin/restaurants/1/approve", support, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/state-machine", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"action":"dispatch"`))
}

func TestSettingsAddressesAndMenuEdits(t *testing.T) {
	s := newTestServer(t)
	support := s.supportToken()
	shandiz := s.openRestaurant("0930", "Shandiz", 5, support, map[string]int{"Kebab": 30000, "Doogh": 5000})

	customer := s.signup("0912", models.RoleCustomer)
	w := s.do(http.MethodPost, "/api/customer/addresses", customer, gin.H{"description": "Home", "zone_number": 8})
	addressID := decode(t, w)["address"].(map[string]interface{})["id"]
	s.do(http.MethodPost, "/api/customer/wallet/top-up", customer, gin.H{"amount": 200000})

	w = s.do(http.MethodPost, "/api/customer/cart/items", customer, gin.H{"restaurant_id": shandiz.id, "food_id": shandiz.foods["Kebab"], "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	// a body without quantity must not drop the line
	w = s.do(http.MethodPut, fmt.Sprintf("/api/customer/cart/items/%d", shandiz.foods["Kebab"]), customer, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodGet, "/api/customer/cart", customer, nil)
	assert.EqualValues(t, 2, decode(t, w)["cart"].(map[string]interface{})["item_count"])

	w = s.do(http.MethodPut, fmt.Sprintf("/api/customer/cart/items/%d", shandiz.foods["Kebab"]), customer, gin.H{"quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPut, fmt.Sprintf("/api/customer/cart/items/%d", shandiz.foods["Kebab"]), customer, gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode(t, w)["cart"].(map[string]interface{})
	assert.EqualValues(t, 0, cart["item_count"])
	assert.NotContains(t, cart, "restaurant_id")

	w = s.do(http.MethodPut, "/api/restaurant/settings", shandiz.manager, gin.H{"zone_number": 25})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPut, "/api/restaurant/settings", shandiz.manager, gin.H{"zone_number": 8, "base_delivery_cost": 4000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "4000", decode(t, w)["restaurant"].(map[string]interface{})["base_delivery_cost"])

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/restaurant/menu/%d", shandiz.foods["Doogh"]), shandiz.manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodDelete, fmt.Sprintf("/api/restaurant/menu/%d", shandiz.foods["Doogh"]), shandiz.manager, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodPost, "/api/customer/cart/items", customer, gin.H{"restaurant_id": shandiz.id, "food_id": shandiz.foods["Doogh"], "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/customer/cart/items", customer, gin.H{"restaurant_id": shandiz.id, "food_id": shandiz.foods["Kebab"], "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/api/customer/cart/checkout", customer, gin.H{"address_id": addressID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "4000", decode(t, w)["order"].(map[string]interface{})["delivery_cost"])

	addrPath := fmt.Sprintf("/api/customer/addresses/%v", addressID)
	w = s.do(http.MethodPut, addrPath, customer, gin.H{"description": "Office"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Office", decode(t, w)["address"].(map[string]interface{})["description"])

	other := s.signup("0913", models.RoleCustomer)
	w = s.do(http.MethodDelete, addrPath, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodDelete, addrPath, customer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/customer/orders/1", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	delivery := decode(t, w)["order"].(map[string]interface{})["delivery_address"].(map[string]interface{})
	assert.Equal(t, "Home", delivery["description"])
}
