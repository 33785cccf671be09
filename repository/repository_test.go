package repository_test

import (
	"path/filepath"
	"testing"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*repository.Repositories, *models.User, *models.Restaurant) {
	t.Helper()
	db, err := config.OpenDB(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	repos := repository.New(db)

	customer := &models.User{Name: "Sara", Phone: "0912", PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, repos.Users.Create(db, customer))
	manager := &models.User{Name: "Ali", Phone: "0930", PasswordHash: "x", Role: models.RoleManager}
	require.NoError(t, repos.Users.Create(db, manager))

	rest := &models.Restaurant{
		OwnerID:          manager.ID,
		Name:             "Shandiz",
		ZoneNumber:       5,
		Status:           models.RestaurantPending,
		BaseDeliveryCost: decimal.NewFromInt(5000),
		PerZoneCost:      decimal.NewFromInt(1000),
	}
	require.NoError(t, repos.Restaurants.Create(db, rest))
	return repos, customer, rest
}

func newOrder(id, customerID, restaurantID uint) *models.Order {
	return &models.Order{
		ID:           id,
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Status:       models.StatusRegistered,
		DeliveryCost: decimal.NewFromInt(5000),
		OrderTime:    time.Now(),
		Items: []models.OrderItem{
			{FoodID: 1, Name: "Kebab", Quantity: 2, UnitPrice: decimal.NewFromInt(30000)},
		},
	}
}

func TestOrderRepository_IDsAndGuards(t *testing.T) {
	repos, customer, rest := setup(t)
	db := repos.DB

	id, err := repos.Orders.NextID(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)

	require.NoError(t, repos.Orders.Create(db, newOrder(id, customer.ID, rest.ID)))
	id, err = repos.Orders.NextID(db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, id)

	got, err := repos.Orders.FindByID(db, 1)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "65000", got.FinalAmount().String())

	n, err := repos.Orders.UpdateStatusGuard(db, 1, models.StatusRegistered, models.StatusPreparing)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repos.Orders.UpdateStatusGuard(db, 1, models.StatusRegistered, models.StatusCancelled)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "stale from-status must not match")

	n, err = repos.Orders.SetReview(db, 1, 4, "good")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repos.Orders.SetReview(db, 1, 1, "changed my mind")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	got, err = repos.Orders.FindByID(db, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, got.ReviewRating)
	assert.Equal(t, "good", got.ReviewComment)
}

func TestOrderRepository_Find(t *testing.T) {
	repos, customer, rest := setup(t)
	db := repos.DB

	for i := uint(1); i <= 3; i++ {
		require.NoError(t, repos.Orders.Create(db, newOrder(i, customer.ID, rest.ID)))
	}
	_, err := repos.Orders.UpdateStatusGuard(db, 2, models.StatusRegistered, models.StatusCancelled)
	require.NoError(t, err)

	all, err := repos.Orders.Find(t.Context(), customer.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.EqualValues(t, []uint{1, 2, 3}, []uint{all[0].ID, all[1].ID, all[2].ID})

	open, err := repos.Orders.Find(t.Context(), 0, rest.ID, models.StatusRegistered)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	none, err := repos.Orders.Find(t.Context(), customer.ID+100, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRestaurantRepository_StatusAndFood(t *testing.T) {
	repos, _, rest := setup(t)
	db := repos.DB

	n, err := repos.Restaurants.UpdateStatusGuard(db, rest.ID, models.RestaurantPending, models.RestaurantApproved, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repos.Restaurants.UpdateStatusGuard(db, rest.ID, models.RestaurantPending, models.RestaurantRejected, "late")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	food := &models.Food{RestaurantID: rest.ID, Name: "Doogh", Price: decimal.NewFromInt(5000), Available: false}
	require.NoError(t, repos.Restaurants.AddFood(db, food))

	got, err := repos.Restaurants.FindFood(db, rest.ID, food.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)

	_, err = repos.Restaurants.FindFood(db, rest.ID+1, food.ID)
	assert.Error(t, err)

	approved, err := repos.Restaurants.List(t.Context(), models.RestaurantApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Shandiz", approved[0].Name)
}
