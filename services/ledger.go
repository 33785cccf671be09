package services

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// Ledger is the single path for writes that touch wallets or the order
// store. The mutex serializes them; the transaction makes each one all or
// nothing.
type Ledger struct {
	mu sync.Mutex
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// RunAtomic executes fn within a transaction. fn must only use tx.
func (l *Ledger) RunAtomic(ctx context.Context, fn func(tx *gorm.DB) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db.WithContext(ctx).Transaction(fn)
}
