package repository

import (
	"gorm.io/gorm"

	"eats-api/internal/models"
)

type PaymentRepository interface {
	FindByUser(userID uint) ([]models.Payment, error)
	Create(payment *models.Payment) error
}

type gormPayments struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &gormPayments{db: db}
}

func (r *gormPayments) FindByUser(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&payments).Error
	return payments, err
}

func (r *gormPayments) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}
