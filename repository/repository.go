package repository

import "gorm.io/gorm"

// Repositories groups the gorm-backed stores. Methods taking a tx must be
// called with the transaction handle when running inside one.
type Repositories struct {
	DB          *gorm.DB
	Users       *UserRepository
	Restaurants *RestaurantRepository
	Orders      *OrderRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:          db,
		Users:       NewUserRepository(db),
		Restaurants: NewRestaurantRepository(db),
		Orders:      NewOrderRepository(db),
	}
}
