package repository

import (
	"context"

	"food-ordering-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(tx *gorm.DB, u *models.User) error {
	return tx.Create(u).Error
}

func (r *UserRepository) FindByID(tx *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	if err := tx.Preload("Addresses", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("phone = ?", phone).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) PhoneTaken(ctx context.Context, phone string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Where("phone = ?", phone).Count(&n).Error
	return n > 0, err
}

// UpdateWallet writes the already-validated balance.
func (r *UserRepository) UpdateWallet(tx *gorm.DB, userID uint, wallet decimal.Decimal) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).Update("wallet", wallet).Error
}

// ---------------- Addresses ----------------

func (r *UserRepository) AddAddress(tx *gorm.DB, a *models.Address) error {
	return tx.Create(a).Error
}

func (r *UserRepository) FindAddress(tx *gorm.DB, userID, addressID uint) (*models.Address, error) {
	var a models.Address
	if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *UserRepository) ListAddresses(ctx context.Context, userID uint) ([]models.Address, error) {
	var out []models.Address
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *UserRepository) UpdateAddress(tx *gorm.DB, a *models.Address) error {
	return tx.Model(a).Select("description", "zone_number").Updates(a).Error
}

// DeleteAddress removes one of the user's addresses. Orders keep their own
// snapshot of it.
func (r *UserRepository) DeleteAddress(tx *gorm.DB, userID, addressID uint) (int64, error) {
	res := tx.Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.Address{})
	return res.RowsAffected, res.Error
}
