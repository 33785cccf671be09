package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleManager  UserRole = "manager"
	RoleSupport  UserRole = "support"
)

var (
	ErrNegativeAmount = errors.New("amount must be positive")
	ErrWalletTooLow   = errors.New("wallet balance too low")
)

type User struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"not null"`
	LastName     string          `json:"last_name"`
	Phone        string          `json:"phone" gorm:"uniqueIndex;not null"`
	PasswordHash string          `json:"-" gorm:"not null"`
	Role         UserRole        `json:"role" gorm:"not null;default:'customer'"`
	Wallet       decimal.Decimal `json:"wallet" gorm:"type:decimal(14,2);not null"`
	Addresses    []Address       `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Address is a saved delivery location. Zone numbers drive delivery pricing.
type Address struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	Description string `json:"description" gorm:"not null"`
	ZoneNumber  int    `json:"zone_number" gorm:"not null"`
}

// Credit adds a positive amount to the wallet.
func (u *User) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNegativeAmount
	}
	u.Wallet = u.Wallet.Add(amount)
	return nil
}

// Debit removes amount from the wallet; the balance never goes below zero.
func (u *User) Debit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if u.Wallet.LessThan(amount) {
		return ErrWalletTooLow
	}
	u.Wallet = u.Wallet.Sub(amount)
	return nil
}

// CanAfford reports whether the wallet covers amount.
func (u *User) CanAfford(amount decimal.Decimal) bool {
	return u.Wallet.GreaterThanOrEqual(amount)
}
