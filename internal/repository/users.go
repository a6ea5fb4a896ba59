package repository

import (
	"gorm.io/gorm"

	"eats-api/internal/models"
)

type UserRepository interface {
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	Create(user *models.User) error
	Save(user *models.User) error
	Delete(id uint) error
}

type gormUsers struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUsers{db: db}
}

func (r *gormUsers) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUsers) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUsers) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormUsers) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *gormUsers) Save(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *gormUsers) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

type VerificationRepository interface {
	// Replace deletes any existing verification for the user and creates a
	// fresh one, returning the new code.
	Replace(userID uint) (*models.Verification, error)
	FindByCode(code string) (*models.Verification, error)
	Delete(id uint) error
}

type gormVerifications struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &gormVerifications{db: db}
}

func (r *gormVerifications) Replace(userID uint) (*models.Verification, error) {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.Verification{}).Error; err != nil {
		return nil, err
	}
	verification := models.Verification{UserID: userID}
	if err := r.db.Create(&verification).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *gormVerifications) FindByCode(code string) (*models.Verification, error) {
	var verification models.Verification
	if err := r.db.Preload("User").Where("code = ?", code).First(&verification).Error; err != nil {
		return nil, translate(err)
	}
	return &verification, nil
}

func (r *gormVerifications) Delete(id uint) error {
	return r.db.Delete(&models.Verification{}, id).Error
}
