package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/logger"
	"food-ordering-api/middleware"
	"food-ordering-api/repository"
	"food-ordering-api/routes"
	"food-ordering-api/services"
	"food-ordering-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

const serviceName = "food-ordering-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Fatalf("food-ordering-api: %v", err)
	}
}

// run wires the service and serves until ctx is done. Deferred cleanups
// run before it returns.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lg := logger.New(serviceName)
	gin.SetMode(cfg.GinMode)

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if cfg.Seed {
		if err := config.Seed(db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		lg.Info("seed", "", "demo data ready")
	}

	repos := repository.New(db)
	ledger := services.NewLedger(db)
	orders := services.NewOrderManager(ledger, repos, lg)

	if cfg.Kafka.Broker != "" {
		writer := storage.NewKafkaWriter(cfg.Kafka.Broker, cfg.Kafka.Topic)
		defer writer.Close()
		orders.WithPublisher(storage.NewKafkaPublisher(writer))
		lg.Info("kafka", "", "publishing order events to "+cfg.Kafka.Topic)
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		orders.WithReviewMarker(storage.NewRedisReviewCache(rdb, 30*24*time.Hour))
		lg.Info("redis", "", "review markers enabled")
	}

	h := &handlers.Handler{
		Repos:    repos,
		Catalog:  services.NewCatalog(repos, lg),
		Orders:   orders,
		Sessions: services.NewSessions(ledger, repos, orders, lg),
		Wallets:  services.NewWallets(ledger, repos, lg),
		QR:       services.ReceiptQR{BaseURL: cfg.PublicURL},
		JWT:      middleware.NewJWT(cfg.JWTSecret),
		Log:      lg,
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(lg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Ordering API",
			"version": "1.0.0",
		})
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Food Ordering API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "manager", "support"},
		})
	})

	routes.SetupRoutes(r, h)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("startup", "", "server running on http://localhost:"+cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutdown", "", "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Error("shutdown", "", "server stopped with error", err)
		return err
	}
	lg.Info("shutdown", "", "server exited")
	return nil
}
