package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus represents the states of an order's lifecycle:
// Pending → Cooking → Cooked → PickedUp → Delivered.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCooking   OrderStatus = "Cooking"
	StatusCooked    OrderStatus = "Cooked"
	StatusPickedUp  OrderStatus = "PickedUp"
	StatusDelivered OrderStatus = "Delivered"
)

// AllStatuses lists every order status, in lifecycle order.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending, StatusCooking, StatusCooked, StatusPickedUp, StatusDelivered,
	}
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s OrderStatus) bool {
	for _, known := range AllStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// OrderItemOption is the immutable snapshot of one option selection made at
// order-creation time: the option name, the chosen value if the option has
// choices, and the resolved extra price.
type OrderItemOption struct {
	Name   string `json:"name"`
	Choice string `json:"choice,omitempty"`
	Extra  int    `json:"extra,omitempty"`
}

type OrderItem struct {
	ID        uint                                  `json:"id" gorm:"primaryKey"`
	DishID    *uint                                 `json:"dish_id"`
	Dish      *Dish                                 `json:"dish,omitempty" gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE"`
	Options   datatypes.JSONType[[]OrderItemOption] `json:"options"`
	CreatedAt time.Time                             `json:"created_at"`
}

type Order struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	CustomerID   *uint       `json:"customer_id"`
	Customer     *User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	DriverID     *uint       `json:"driver_id"`
	Driver       *User       `json:"driver,omitempty" gorm:"foreignKey:DriverID;constraint:OnDelete:SET NULL"`
	RestaurantID *uint       `json:"restaurant_id"`
	Restaurant   *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:SET NULL"`
	Items        []OrderItem `json:"items,omitempty" gorm:"many2many:order_order_items"`
	Total        int         `json:"total"`
	Status       OrderStatus `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
