package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"eats-api/internal/events"
	"eats-api/internal/middleware"
	"eats-api/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SubscriptionHandler serves the live order-event feeds over WebSocket.
// Each connection subscribes to one hub topic and applies its own filter
// before forwarding a payload to the client.
type SubscriptionHandler struct {
	hub *events.Hub
}

func NewSubscriptionHandler(hub *events.Hub) *SubscriptionHandler {
	return &SubscriptionHandler{hub: hub}
}

// allowPendingOrder delivers a pending-order event only to the owner of the
// restaurant the order was placed at.
func allowPendingOrder(payload events.PendingOrder, user *models.User) bool {
	return payload.OwnerID == user.ID
}

// allowCookedOrder delivers cooked-order events to every connected delivery
// worker, unfiltered.
func allowCookedOrder(_ models.Order, _ *models.User) bool {
	return true
}

// allowOrderUpdate delivers an order-updated event to the order's customer,
// driver, or restaurant owner, and only for the order id the subscription
// asked for. The id argument is compared numerically whether it arrived as
// a number or a numeric string.
func allowOrderUpdate(order models.Order, user *models.User, rawOrderID string) bool {
	wantID, err := strconv.ParseFloat(rawOrderID, 64)
	if err != nil || float64(order.ID) != wantID {
		return false
	}
	if order.CustomerID != nil && *order.CustomerID == user.ID {
		return true
	}
	if order.DriverID != nil && *order.DriverID == user.ID {
		return true
	}
	if order.Restaurant != nil && order.Restaurant.OwnerID == user.ID {
		return true
	}
	return false
}

// PendingOrders notifies the restaurant owner of new pending orders.
func (h *SubscriptionHandler) PendingOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.serve(c, events.TopicPendingOrders, func(payload interface{}) (interface{}, bool) {
		pending, isPending := payload.(events.PendingOrder)
		if !isPending || !allowPendingOrder(pending, user) {
			return nil, false
		}
		return pending, true
	})
}

// CookedOrders notifies delivery workers of orders ready for pickup.
func (h *SubscriptionHandler) CookedOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.serve(c, events.TopicCookedOrders, func(payload interface{}) (interface{}, bool) {
		order, isOrder := payload.(models.Order)
		if !isOrder || !allowCookedOrder(order, user) {
			return nil, false
		}
		return order, true
	})
}

// OrderUpdates streams every status change of one order to its
// participants. The order id is passed as the "id" query argument.
func (h *SubscriptionHandler) OrderUpdates(c *gin.Context) {
	user := middleware.CurrentUser(c)
	rawOrderID := c.Query("id")
	h.serve(c, events.TopicUpdatedOrders, func(payload interface{}) (interface{}, bool) {
		order, isOrder := payload.(models.Order)
		if !isOrder || !allowOrderUpdate(order, user, rawOrderID) {
			return nil, false
		}
		return order, true
	})
}

// serve upgrades the connection, registers on the topic, and forwards
// payloads that pass the filter until either side goes away. A dropped
// connection just stops future deliveries to this listener.
func (h *SubscriptionHandler) serve(c *gin.Context, topic events.Topic, filter func(interface{}) (interface{}, bool)) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(topic)
	defer sub.Close()

	// Reader goroutine detects the peer closing the connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case payload, open := <-sub.C:
			if !open {
				return
			}
			msg, deliver := filter(payload)
			if !deliver {
				continue
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
