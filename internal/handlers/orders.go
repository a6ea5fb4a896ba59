package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eats-api/internal/middleware"
	"eats-api/internal/models"
	"eats-api/internal/service"
	"eats-api/internal/statemachine"
)

type OrderHandler struct {
	orders *service.Orders
}

func NewOrderHandler(orders *service.Orders) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	RestaurantID uint                           `json:"restaurant_id" binding:"required"`
	Items        []service.CreateOrderItemInput `json:"items" binding:"required,min=1"`
}

// CreateOrder places a new order for the authenticated client.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	customer := middleware.CurrentUser(c)
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	orderID, err := h.orders.CreateOrder(customer, req.RestaurantID, req.Items)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"order_id": orderID})
}

// GetOrder returns one order, subject to the ownership check.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	order, err := h.orders.GetOrder(user, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"order": order})
}

// GetOrders lists the caller's orders, optionally filtered by status.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := models.OrderStatus(raw)
		if !models.ValidStatus(s) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid order status"})
			return
		}
		status = &s
	}
	orders, err := h.orders.GetOrders(user, status)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"orders": orders})
}

type updateOrderRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrder advances an order's status.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid order status"})
		return
	}
	order, err := h.orders.UpdateOrder(user, id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"order": order})
}

// TakeOrder claims an unassigned order for the authenticated driver.
func (h *OrderHandler) TakeOrder(c *gin.Context) {
	driver := middleware.CurrentUser(c)
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	order, err := h.orders.TakeOrder(driver, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"order": order})
}

// StateMachineInfo documents the role-gated transition table.
func (h *OrderHandler) StateMachineInfo(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{
		"statuses":    models.AllStatuses(),
		"transitions": statemachine.AllTransitions(),
	})
}
