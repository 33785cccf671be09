package services

import (
	"sync"

	"food-ordering-api/logger"
	"food-ordering-api/repository"
)

// Sessions hands out one CartManager per customer. Carts live only in
// memory and are lost on restart.
type Sessions struct {
	mu     sync.Mutex
	carts  map[uint]*CartManager
	ledger *Ledger
	repos  *repository.Repositories
	orders *OrderManager
	log    *logger.Logger
}

func NewSessions(ledger *Ledger, repos *repository.Repositories, orders *OrderManager, log *logger.Logger) *Sessions {
	return &Sessions{
		carts:  make(map[uint]*CartManager),
		ledger: ledger,
		repos:  repos,
		orders: orders,
		log:    log,
	}
}

func (s *Sessions) Cart(customerID uint) *CartManager {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm, ok := s.carts[customerID]
	if !ok {
		cm = NewCartManager(customerID, s.ledger, s.repos, s.orders, s.log)
		s.carts[customerID] = cm
	}
	return cm
}
