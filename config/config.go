package config

import (
	"fmt"
	"os"
	"strconv"

	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port      string
	GinMode   string
	DBPath    string
	JWTSecret []byte
	PublicURL string
	Seed      bool

	Kafka struct {
		Broker string
		Topic  string
	}
	RedisAddr string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the environment, pulling in a local .env first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		DBPath:    getEnv("DB_PATH", "food_ordering.db"),
		JWTSecret: []byte(getEnv("JWT_SECRET", "food_ordering_dev_secret")),
		PublicURL: getEnv("PUBLIC_URL", "http://localhost:8080"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = getEnv("KAFKA_TOPIC", "order-events")

	if raw := os.Getenv("SEED"); raw != "" {
		seed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("SEED must be a boolean: %w", err)
		}
		cfg.Seed = seed
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	return cfg, nil
}

// OpenDB connects to the SQLite file at path and migrates every model.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection keeps transactions serial.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Restaurant{},
		&models.Food{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
