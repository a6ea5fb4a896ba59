package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eats-api/internal/models"
)

func receive(t *testing.T, sub *Subscription) interface{} {
	t.Helper()
	select {
	case payload := <-sub.C:
		return payload
	default:
		t.Fatal("expected a payload, got none")
		return nil
	}
}

func assertEmpty(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case payload := <-sub.C:
		t.Fatalf("expected no payload, got %v", payload)
	default:
	}
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe(TopicUpdatedOrders)
	second := hub.Subscribe(TopicUpdatedOrders)
	defer first.Close()
	defer second.Close()

	order := models.Order{ID: 7, Status: models.StatusCooking}
	hub.Publish(TopicUpdatedOrders, order)

	assert.Equal(t, order, receive(t, first))
	assert.Equal(t, order, receive(t, second))
}

func TestPublishIsScopedToTopic(t *testing.T) {
	hub := NewHub()
	cooked := hub.Subscribe(TopicCookedOrders)
	pending := hub.Subscribe(TopicPendingOrders)
	defer cooked.Close()
	defer pending.Close()

	hub.Publish(TopicCookedOrders, models.Order{ID: 1})

	require.NotNil(t, receive(t, cooked))
	assertEmpty(t, pending)
}

func TestLateSubscriberMissesEarlierPublishes(t *testing.T) {
	hub := NewHub()
	hub.Publish(TopicPendingOrders, PendingOrder{OwnerID: 1})

	late := hub.Subscribe(TopicPendingOrders)
	defer late.Close()
	assertEmpty(t, late)
}

func TestClosedSubscriptionStopsDeliveries(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(TopicUpdatedOrders)
	other := hub.Subscribe(TopicUpdatedOrders)
	defer other.Close()

	sub.Close()
	hub.Publish(TopicUpdatedOrders, models.Order{ID: 2})

	require.NotNil(t, receive(t, other))
	_, open := <-sub.C
	assert.False(t, open)
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(TopicUpdatedOrders)
	defer sub.Close()

	// Twice the buffer; excess payloads are dropped, not blocked on.
	for i := 0; i < subscriberBuffer*2; i++ {
		hub.Publish(TopicUpdatedOrders, models.Order{ID: uint(i)})
	}
	assert.Len(t, sub.C, subscriberBuffer)
}

func TestCloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(TopicCookedOrders)
	sub.Close()
	sub.Close()
}
