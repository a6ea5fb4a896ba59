package service

import (
	"errors"

	"gorm.io/datatypes"

	"eats-api/internal/events"
	"eats-api/internal/models"
	"eats-api/internal/repository"
	"eats-api/internal/statemachine"
)

type Orders struct {
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
	dishes      repository.DishRepository
	hub         *events.Hub
}

func NewOrders(orders repository.OrderRepository, restaurants repository.RestaurantRepository, dishes repository.DishRepository, hub *events.Hub) *Orders {
	return &Orders{orders: orders, restaurants: restaurants, dishes: dishes, hub: hub}
}

// CreateOrderItemInput is one requested dish with the option selections made
// by the customer.
type CreateOrderItemInput struct {
	DishID  uint                     `json:"dish_id"`
	Options []models.OrderItemOption `json:"options"`
}

// CreateOrder prices the requested items against the dish catalog, persists
// the order with immutable item snapshots, and announces it to the
// restaurant owner's pending-order subscription.
func (s *Orders) CreateOrder(customer *models.User, restaurantID uint, items []CreateOrderItemInput) (uint, error) {
	restaurant, err := s.restaurants.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, NotFound("Restaurant not found.")
		}
		return 0, Internal("Could not create order.")
	}

	total := 0
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		dish, err := s.dishes.FindByID(item.DishID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, NotFound("Dish not found.")
			}
			return 0, Internal("Could not create order.")
		}
		total += itemPrice(dish, item.Options)
		dishID := dish.ID
		orderItems = append(orderItems, models.OrderItem{
			DishID:  &dishID,
			Options: datatypes.NewJSONType(item.Options),
		})
	}

	order := models.Order{
		CustomerID:   &customer.ID,
		RestaurantID: &restaurant.ID,
		Items:        orderItems,
		Total:        total,
		Status:       models.StatusPending,
	}
	if err := s.orders.Create(&order); err != nil {
		return 0, Internal("Could not create order.")
	}

	s.hub.Publish(events.TopicPendingOrders, events.PendingOrder{
		Order:   order,
		OwnerID: restaurant.OwnerID,
	})
	return order.ID, nil
}

// itemPrice computes one item's price: the dish base price plus, per
// selected option, either the option's own flat extra or the extra of the
// matching choice. A selection with no match contributes zero.
func itemPrice(dish *models.Dish, selections []models.OrderItemOption) int {
	price := dish.Price
	options := dish.Options.Data()
	for _, selection := range selections {
		for _, option := range options {
			if option.Name != selection.Name {
				continue
			}
			if option.Extra != 0 {
				price += option.Extra
				break
			}
			for _, choice := range option.Choices {
				if choice.Name == selection.Choice {
					price += choice.Extra
					break
				}
			}
			break
		}
	}
	return price
}

func (s *Orders) GetOrder(user *models.User, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Order not found.")
		}
		return nil, Internal("Could not get order.")
	}
	if !WillAllowOrder(user, order) {
		return nil, Forbidden("You don't have permission to see this order.")
	}
	return order, nil
}

// GetOrders lists orders scoped by role: clients see orders they placed,
// owners see every order across the restaurants they own, delivery workers
// see orders assigned to them. Owners' status filter is applied after the
// cross-restaurant union is loaded.
func (s *Orders) GetOrders(user *models.User, status *models.OrderStatus) ([]models.Order, error) {
	switch user.Role {
	case models.RoleClient:
		orders, err := s.orders.FindByCustomer(user.ID, status)
		if err != nil {
			return nil, Internal("Could not get orders.")
		}
		return orders, nil
	case models.RoleDelivery:
		orders, err := s.orders.FindByDriver(user.ID, status)
		if err != nil {
			return nil, Internal("Could not get orders.")
		}
		return orders, nil
	case models.RoleOwner:
		ids, err := s.restaurants.IDsByOwner(user.ID)
		if err != nil {
			return nil, Internal("Could not get orders.")
		}
		orders, err := s.orders.FindByRestaurantIDs(ids)
		if err != nil {
			return nil, Internal("Could not get orders.")
		}
		if status != nil {
			filtered := orders[:0]
			for _, order := range orders {
				if order.Status == *status {
					filtered = append(filtered, order)
				}
			}
			orders = filtered
		}
		return orders, nil
	}
	return nil, nil
}

// UpdateOrder advances an order to the requested status, gated by ownership
// and by the role transition table. Cooked orders are announced to delivery
// workers; every successful update is announced on the updated-orders topic.
func (s *Orders) UpdateOrder(user *models.User, orderID uint, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Order not found.")
		}
		return nil, Internal("Could not update order.")
	}
	if !WillAllowOrder(user, order) {
		return nil, Forbidden("You don't have permission to see this order.")
	}
	if err := statemachine.CanSet(user.Role, status); err != nil {
		return nil, Forbidden("You don't have permission to do that.")
	}
	if err := s.orders.UpdateStatus(order.ID, status); err != nil {
		return nil, Internal("Could not update order.")
	}
	order.Status = status

	if user.Role == models.RoleOwner && status == models.StatusCooked {
		s.hub.Publish(events.TopicCookedOrders, *order)
	}
	s.hub.Publish(events.TopicUpdatedOrders, *order)
	return order, nil
}

// TakeOrder assigns the acting delivery worker as the order's driver. The
// assignment is a conditional update on "driver is unset", so of N racing
// workers exactly one wins; the rest get a conflict.
func (s *Orders) TakeOrder(driver *models.User, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Order not found.")
		}
		return nil, Internal("Could not take order.")
	}
	if order.DriverID != nil {
		return nil, Conflict("Order already has been taken.")
	}
	won, err := s.orders.AssignDriver(order.ID, driver.ID, models.StatusPickedUp)
	if err != nil {
		return nil, Internal("Could not take order.")
	}
	if !won {
		return nil, Conflict("Order already has been taken.")
	}
	order.DriverID = &driver.ID
	order.Driver = driver
	order.Status = models.StatusPickedUp

	s.hub.Publish(events.TopicUpdatedOrders, *order)
	return order, nil
}

// WillAllowOrder is the ownership predicate: a client may touch an order
// they placed, an owner an order for a restaurant they own, a delivery
// worker an order assigned to them. It is evaluated on every read and
// write, never cached.
func WillAllowOrder(user *models.User, order *models.Order) bool {
	switch user.Role {
	case models.RoleClient:
		return order.CustomerID != nil && *order.CustomerID == user.ID
	case models.RoleOwner:
		return order.Restaurant != nil && order.Restaurant.OwnerID == user.ID
	case models.RoleDelivery:
		return order.DriverID != nil && *order.DriverID == user.ID
	}
	return false
}
