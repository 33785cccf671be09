package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"food-ordering-api/logger"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallets handles money moved in or out of the platform by hand: customer
// top-ups and restaurant withdrawals.
type Wallets struct {
	ledger *Ledger
	repos  *repository.Repositories
	log    *logger.Logger
}

func NewWallets(ledger *Ledger, repos *repository.Repositories, log *logger.Logger) *Wallets {
	return &Wallets{ledger: ledger, repos: repos, log: log}
}

func (w *Wallets) Balance(ctx context.Context, customerID uint) (decimal.Decimal, error) {
	u, err := w.repos.Users.FindByID(w.repos.DB.WithContext(ctx), customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, ErrCustomerNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return u.Wallet, nil
}

func (w *Wallets) TopUp(ctx context.Context, customerID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	var balance decimal.Decimal
	err := w.ledger.RunAtomic(ctx, func(tx *gorm.DB) error {
		u, err := w.repos.Users.FindByID(tx, customerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		if err != nil {
			return err
		}
		if err := u.Credit(amount); err != nil {
			return err
		}
		balance = u.Wallet
		return w.repos.Users.UpdateWallet(tx, u.ID, u.Wallet)
	})
	if err != nil {
		return decimal.Zero, err
	}
	w.log.Info("wallet_top_up", logger.RequestID(ctx), "customer wallet charged",
		slog.Uint64("customer_id", uint64(customerID)), slog.String("amount", amount.String()))
	return balance, nil
}

// Withdraw pays amount out of a restaurant's wallet.
func (w *Wallets) Withdraw(ctx context.Context, restaurantID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	var balance decimal.Decimal
	err := w.ledger.RunAtomic(ctx, func(tx *gorm.DB) error {
		rest, err := w.repos.Restaurants.FindByID(tx, restaurantID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestaurantNotFound
		}
		if err != nil {
			return err
		}
		if err := rest.Debit(amount); err != nil {
			if errors.Is(err, models.ErrWalletTooLow) {
				return fmt.Errorf("%w: wallet %s, requested %s", ErrInsufficientFunds, rest.Wallet, amount)
			}
			return err
		}
		balance = rest.Wallet
		return w.repos.Restaurants.UpdateWallet(tx, rest.ID, rest.Wallet)
	})
	if err != nil {
		return decimal.Zero, err
	}
	w.log.Info("wallet_withdraw", logger.RequestID(ctx), "restaurant withdrawal",
		slog.Uint64("restaurant_id", uint64(restaurantID)), slog.String("amount", amount.String()))
	return balance, nil
}
