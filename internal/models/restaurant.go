package models

import (
	"time"

	"gorm.io/datatypes"
)

type Category struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"uniqueIndex;not null"`
	Slug        string       `json:"slug" gorm:"uniqueIndex;not null"`
	CoverImage  string       `json:"cover_image"`
	Restaurants []Restaurant `json:"restaurants,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Restaurant struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Address    string    `json:"address"`
	CoverImage string    `json:"cover_image"`
	// IsPromoted/PromotedUntil are mutated only by payment creation and the
	// promotion-expiry sweep. PromotedUntil is null unless IsPromoted is true.
	IsPromoted    bool       `json:"is_promoted" gorm:"default:false"`
	PromotedUntil *time.Time `json:"promoted_until"`
	OwnerID       uint       `json:"owner_id" gorm:"not null"`
	Owner         User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	CategoryID    *uint      `json:"category_id"`
	Category      *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Menu          []Dish     `json:"menu,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Orders        []Order    `json:"orders,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// DishChoice is a selectable value inside a DishOption, optionally carrying
// an extra price.
type DishChoice struct {
	Name  string `json:"name"`
	Extra int    `json:"extra,omitempty"`
}

// DishOption is part of the structured blob attached to a dish. An option
// either carries its own flat extra price or a list of priced choices.
type DishOption struct {
	Name    string       `json:"name"`
	Choices []DishChoice `json:"choices,omitempty"`
	Extra   int          `json:"extra,omitempty"`
}

type Dish struct {
	ID           uint                               `json:"id" gorm:"primaryKey"`
	Name         string                             `json:"name" gorm:"not null"`
	Price        int                                `json:"price" gorm:"not null"`
	Description  string                             `json:"description"`
	Photo        string                             `json:"photo"`
	RestaurantID uint                               `json:"restaurant_id" gorm:"not null"`
	Restaurant   Restaurant                         `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Options      datatypes.JSONType[[]DishOption]   `json:"options"`
	CreatedAt    time.Time                          `json:"created_at"`
	UpdatedAt    time.Time                          `json:"updated_at"`
}
