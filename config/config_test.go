package config

import (
	"path/filepath"
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("SEED", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "food_ordering.db", cfg.DBPath)
	assert.Equal(t, "order-events", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Broker)
	assert.False(t, cfg.Seed)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEED", "true")
	t.Setenv("KAFKA_BROKER", "localhost:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "localhost:9092", cfg.Kafka.Broker)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("SEED", "maybe")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SEED", "")
	t.Setenv("PORT", "http")
	_, err = Load()
	assert.Error(t, err)
}

func TestOpenDBAndSeed(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	require.NoError(t, Seed(db))
	// second run is a no-op
	require.NoError(t, Seed(db))

	var users, restaurants, foods int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Restaurant{}).Count(&restaurants)
	db.Model(&models.Food{}).Count(&foods)
	assert.EqualValues(t, 4, users)
	assert.EqualValues(t, 2, restaurants)
	assert.EqualValues(t, 6, foods)

	var customer models.User
	require.NoError(t, db.Preload("Addresses").Where("role = ?", models.RoleCustomer).First(&customer).Error)
	assert.Equal(t, "100000", customer.Wallet.String())
	require.Len(t, customer.Addresses, 1)
	assert.Equal(t, 8, customer.Addresses[0].ZoneNumber)
}
