package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eats-api/internal/models"
	"eats-api/internal/repository"
)

func newPaymentsService(t *testing.T) (*Payments, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPayments(repository.NewPaymentRepository(db), repository.NewRestaurantRepository(db))
	return svc, db
}

func TestCreatePayment(t *testing.T) {
	svc, db := newPaymentsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	restaurant := createRestaurant(t, db, owner, "Promoted Place")

	before := time.Now()
	payment, err := svc.CreatePayment(owner, restaurant.ID, "tx-123")
	require.NoError(t, err)
	assert.Equal(t, "tx-123", payment.TransactionID)
	assert.Equal(t, owner.ID, payment.UserID)
	assert.Equal(t, restaurant.ID, payment.RestaurantID)

	var promoted models.Restaurant
	require.NoError(t, db.First(&promoted, restaurant.ID).Error)
	assert.True(t, promoted.IsPromoted)
	require.NotNil(t, promoted.PromotedUntil)
	assert.WithinDuration(t, before.Add(PromotionDuration), *promoted.PromotedUntil, 5*time.Second)
}

func TestCreatePaymentAuthorization(t *testing.T) {
	svc, db := newPaymentsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	restaurant := createRestaurant(t, db, owner, "Someone's Place")

	t.Run("not the owner", func(t *testing.T) {
		other := createUser(t, db, "other@example.com", models.RoleOwner)
		_, err := svc.CreatePayment(other, restaurant.ID, "tx-456")
		requireKind(t, err, KindForbidden)
		assert.EqualError(t, err, "You don't have permission to do that.")
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		_, err := svc.CreatePayment(owner, 999, "tx-789")
		requireKind(t, err, KindNotFound)
	})
}

func TestPaymentsListing(t *testing.T) {
	svc, db := newPaymentsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	other := createUser(t, db, "other@example.com", models.RoleOwner)
	mine := createRestaurant(t, db, owner, "Mine")
	theirs := createRestaurant(t, db, other, "Theirs")

	_, err := svc.CreatePayment(owner, mine.ID, "tx-1")
	require.NoError(t, err)
	_, err = svc.CreatePayment(other, theirs.ID, "tx-2")
	require.NoError(t, err)

	payments, err := svc.Payments(owner)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "tx-1", payments[0].TransactionID)
}

func TestSweepExpiredPromotions(t *testing.T) {
	svc, db := newPaymentsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	expired := createRestaurant(t, db, owner, "Expired")
	active := createRestaurant(t, db, owner, "Active")
	never := createRestaurant(t, db, owner, "Never Promoted")

	_, err := svc.CreatePayment(owner, expired.ID, "tx-expired")
	require.NoError(t, err)
	_, err = svc.CreatePayment(owner, active.ID, "tx-active")
	require.NoError(t, err)

	// Jump the clock past the first restaurant's window only.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Restaurant{}).
		Where("id = ?", expired.ID).Update("promoted_until", past).Error)

	cleared, err := svc.SweepExpiredPromotions()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	var got models.Restaurant
	require.NoError(t, db.First(&got, expired.ID).Error)
	assert.False(t, got.IsPromoted)
	assert.Nil(t, got.PromotedUntil)

	require.NoError(t, db.First(&got, active.ID).Error)
	assert.True(t, got.IsPromoted)
	assert.NotNil(t, got.PromotedUntil)

	require.NoError(t, db.First(&got, never.ID).Error)
	assert.False(t, got.IsPromoted)

	// Idempotent: a second sweep finds nothing.
	cleared, err = svc.SweepExpiredPromotions()
	require.NoError(t, err)
	assert.Zero(t, cleared)
}

func TestSweepUsesInjectedClock(t *testing.T) {
	svc, db := newPaymentsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	restaurant := createRestaurant(t, db, owner, "Clocked")

	_, err := svc.CreatePayment(owner, restaurant.ID, "tx-clock")
	require.NoError(t, err)

	// Advance the service clock beyond the promotion window.
	svc.now = func() time.Time { return time.Now().Add(PromotionDuration + time.Hour) }

	cleared, err := svc.SweepExpiredPromotions()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)
}
