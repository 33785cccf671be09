package config

import (
	"fmt"

	"food-ordering-api/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "password123"

// Seed fills an empty database with demo accounts, restaurants and menus.
// It does nothing when any user already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := []models.User{
			{Name: "Sara", LastName: "Ahmadi", Phone: "09120000001", Role: models.RoleCustomer, Wallet: decimal.NewFromInt(100000),
				Addresses: []models.Address{{Description: "Home, Valiasr St", ZoneNumber: 8}}},
			{Name: "Reza", LastName: "Karimi", Phone: "09120000002", Role: models.RoleManager},
			{Name: "Mina", LastName: "Rahimi", Phone: "09120000003", Role: models.RoleManager},
			{Name: "Support", Phone: "09120000009", Role: models.RoleSupport},
		}
		for i := range users {
			users[i].PasswordHash = string(hash)
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
		}

		restaurants := []models.Restaurant{
			{
				OwnerID: users[1].ID, Name: "Shandiz", Address: "Azadi Sq", ZoneNumber: 5, Cuisine: "Persian",
				Status: models.RestaurantApproved, BaseDeliveryCost: models.DefaultBaseDeliveryCost, PerZoneCost: models.DefaultPerZoneCost,
				Menu: []models.Food{
					{Name: "Kebab", Price: decimal.NewFromInt(30000), Category: models.CategoryMainDish, Available: true},
					{Name: "Salad Shirazi", Price: decimal.NewFromInt(8000), Category: models.CategoryAppetizer, Available: true},
					{Name: "Doogh", Price: decimal.NewFromInt(5000), Category: models.CategoryBeverage, Available: true},
				},
			},
			{
				OwnerID: users[2].ID, Name: "Pizza Station", Address: "Tajrish", ZoneNumber: 12, Cuisine: "Italian",
				Status: models.RestaurantApproved, BaseDeliveryCost: models.DefaultBaseDeliveryCost, PerZoneCost: models.DefaultPerZoneCost,
				Menu: []models.Food{
					{Name: "Margherita", Price: decimal.NewFromInt(45000), Category: models.CategoryMainDish, Available: true},
					{Name: "Garlic Bread", Price: decimal.NewFromInt(12000), Category: models.CategoryAppetizer, Available: true},
					{Name: "Cola", Price: decimal.NewFromInt(4000), Category: models.CategoryBeverage, Available: true},
				},
			},
		}
		for i := range restaurants {
			if err := tx.Omit("Owner").Create(&restaurants[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
