package statemachine

import (
	"errors"

	"eats-api/internal/models"
)

// Transition defines a status an actor role is allowed to set on an order.
// Owners move orders through the kitchen, delivery workers through the road:
// Pending → Cooking → Cooked (Owner) → PickedUp → Delivered (Delivery).
type Transition struct {
	Role models.UserRole
	To   models.OrderStatus
}

// validTransitions is the authoritative definition of who may set what.
var validTransitions = []Transition{
	{Role: models.RoleOwner, To: models.StatusCooking},
	{Role: models.RoleOwner, To: models.StatusCooked},
	{Role: models.RoleDelivery, To: models.StatusPickedUp},
	{Role: models.RoleDelivery, To: models.StatusDelivered},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ErrNotAllowed is returned when a role may not set the requested status.
var ErrNotAllowed = errors.New("role is not allowed to set this status")

// CanSet checks whether the given role may move an order to the target
// status. Any (role, status) pair outside the table is rejected.
func CanSet(role models.UserRole, to models.OrderStatus) error {
	if transitionMap[Transition{Role: role, To: to}] {
		return nil
	}
	return ErrNotAllowed
}

// AllowedFor returns every status the given role may set, in lifecycle order.
func AllowedFor(role models.UserRole) []models.OrderStatus {
	var allowed []models.OrderStatus
	for _, t := range validTransitions {
		if t.Role == role {
			allowed = append(allowed, t.To)
		}
	}
	return allowed
}

// AllTransitions returns the full table for documentation endpoints.
func AllTransitions() []Transition {
	return validTransitions
}
