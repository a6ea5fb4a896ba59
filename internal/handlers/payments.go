package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eats-api/internal/middleware"
	"eats-api/internal/service"
)

type PaymentHandler struct {
	payments *service.Payments
}

func NewPaymentHandler(payments *service.Payments) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createPaymentRequest struct {
	RestaurantID  uint   `json:"restaurant_id" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"required"`
}

// CreatePayment records a promotion purchase for one of the owner's
// restaurants.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	payment, err := h.payments.CreatePayment(owner, req.RestaurantID, req.TransactionID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"payment": payment})
}

// GetPayments lists the owner's payments.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	payments, err := h.payments.Payments(owner)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"payments": payments})
}
