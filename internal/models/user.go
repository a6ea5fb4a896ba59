package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRole defines allowed roles in the system. A user's role is fixed at
// registration and decides which mutations the authorization guard permits.
type UserRole string

const (
	RoleClient   UserRole = "Client"
	RoleOwner    UserRole = "Owner"
	RoleDelivery UserRole = "Delivery"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleClient, RoleOwner, RoleDelivery:
		return true
	}
	return false
}

type User struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Email       string       `json:"email" gorm:"uniqueIndex;not null"`
	Password    string       `json:"-" gorm:"not null"`
	Role        UserRole     `json:"role" gorm:"not null"`
	Verified    bool         `json:"verified" gorm:"default:false"`
	Restaurants []Restaurant `json:"restaurants,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Orders      []Order      `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
	Deliveries  []Order      `json:"deliveries,omitempty" gorm:"foreignKey:DriverID"`
	Payments    []Payment    `json:"payments,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// BeforeSave re-hashes the password whenever it is set in plain text,
// on insert as well as update. Already-hashed values pass through so
// that saving a loaded user does not double-hash.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password == "" || strings.HasPrefix(u.Password, "$2") {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword compares a plain-text password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// Verification holds a one-time e-mail verification code. A row is created
// whenever an account is created or its e-mail changes, and deleted exactly
// once on successful verification.
type Verification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User      User      `json:"user,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *Verification) BeforeCreate(tx *gorm.DB) error {
	if v.Code == "" {
		v.Code = uuid.NewString()
	}
	return nil
}
