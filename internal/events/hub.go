// Package events provides the process-wide publish/subscribe bus used to
// push order events to live subscribers. There is no persistence or replay:
// a listener registered after a publish never sees it.
package events

import (
	"sync"

	"eats-api/internal/models"
)

type Topic string

const (
	TopicPendingOrders Topic = "new.pending.order"
	TopicCookedOrders  Topic = "new.cooked.order"
	TopicUpdatedOrders Topic = "new.updated.order"
)

// PendingOrder is the payload published when a customer places an order.
// OwnerID identifies the restaurant owner the event is meant for.
type PendingOrder struct {
	Order   models.Order `json:"order"`
	OwnerID uint         `json:"owner_id"`
}

const subscriberBuffer = 16

// Subscription is one listener's registration on a topic. Receive from C;
// call Close to stop future deliveries.
type Subscription struct {
	C     chan interface{}
	hub   *Hub
	topic Topic
	once  sync.Once
}

// Close unregisters the subscription. In-flight deliveries to other
// listeners are unaffected.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		if subs, ok := s.hub.subs[s.topic]; ok {
			delete(subs, s)
		}
		s.hub.mu.Unlock()
		close(s.C)
	})
}

// Hub fans payloads out to every subscription currently registered on a
// topic. Publish is fire-and-forget: it never blocks the publisher and a
// subscriber failure never affects the request that triggered the publish.
type Hub struct {
	mu   sync.Mutex
	subs map[Topic]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[Topic]map[*Subscription]struct{})}
}

// Subscribe registers a new listener on the topic.
func (h *Hub) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		C:     make(chan interface{}, subscriberBuffer),
		hub:   h,
		topic: topic,
	}
	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Publish delivers payload to every current subscriber of the topic. A
// subscriber whose buffer is full misses the payload rather than blocking
// the publisher.
func (h *Hub) Publish(topic Topic, payload interface{}) {
	// Sends stay under the lock so a concurrent Close cannot close a
	// channel mid-delivery; they are non-blocking, so the lock is never
	// held up by a slow subscriber.
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[topic] {
		select {
		case sub.C <- payload:
		default:
		}
	}
}
