package repository

import (
	"gorm.io/gorm"

	"eats-api/internal/models"
)

type OrderRepository interface {
	// FindByID loads an order with its restaurant, items and their dishes,
	// which the ownership predicate and subscribers need.
	FindByID(id uint) (*models.Order, error)
	FindByCustomer(customerID uint, status *models.OrderStatus) ([]models.Order, error)
	FindByDriver(driverID uint, status *models.OrderStatus) ([]models.Order, error)
	FindByRestaurantIDs(restaurantIDs []uint) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id uint, status models.OrderStatus) error
	// AssignDriver atomically assigns a driver to an order that has none and
	// forces the given status. It reports whether the conditional update won:
	// false means another driver got there first.
	AssignDriver(orderID, driverID uint, status models.OrderStatus) (bool, error)
}

type gormOrders struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrders{db: db}
}

func (r *gormOrders) loaded() *gorm.DB {
	return r.db.Preload("Restaurant").Preload("Items.Dish")
}

func (r *gormOrders) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.loaded().First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *gormOrders) FindByCustomer(customerID uint, status *models.OrderStatus) ([]models.Order, error) {
	query := r.loaded().Where("customer_id = ?", customerID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var orders []models.Order
	err := query.Order("created_at desc").Find(&orders).Error
	return orders, err
}

func (r *gormOrders) FindByDriver(driverID uint, status *models.OrderStatus) ([]models.Order, error) {
	query := r.loaded().Where("driver_id = ?", driverID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var orders []models.Order
	err := query.Order("created_at desc").Find(&orders).Error
	return orders, err
}

func (r *gormOrders) FindByRestaurantIDs(restaurantIDs []uint) ([]models.Order, error) {
	if len(restaurantIDs) == 0 {
		return nil, nil
	}
	var orders []models.Order
	err := r.loaded().Where("restaurant_id IN ?", restaurantIDs).
		Order("created_at desc").Find(&orders).Error
	return orders, err
}

func (r *gormOrders) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *gormOrders) UpdateStatus(id uint, status models.OrderStatus) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

func (r *gormOrders) AssignDriver(orderID, driverID uint, status models.OrderStatus) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND driver_id IS NULL", orderID).
		Updates(map[string]interface{}{"driver_id": driverID, "status": status})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
