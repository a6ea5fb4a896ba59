package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"eats-api/internal/models"
	"eats-api/internal/repository"
)

// PromotionDuration is how long one payment promotes a restaurant.
const PromotionDuration = 7 * 24 * time.Hour

type Payments struct {
	payments    repository.PaymentRepository
	restaurants repository.RestaurantRepository
	now         func() time.Time
}

func NewPayments(payments repository.PaymentRepository, restaurants repository.RestaurantRepository) *Payments {
	return &Payments{payments: payments, restaurants: restaurants, now: time.Now}
}

// CreatePayment records a promotion purchase and promotes the restaurant
// for the next seven days.
func (s *Payments) CreatePayment(owner *models.User, restaurantID uint, transactionID string) (*models.Payment, error) {
	restaurant, err := s.restaurants.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Restaurant not found.")
		}
		return nil, Internal("Could not create payment.")
	}
	if restaurant.OwnerID != owner.ID {
		return nil, Forbidden("You don't have permission to do that.")
	}
	payment := models.Payment{
		TransactionID: transactionID,
		UserID:        owner.ID,
		RestaurantID:  restaurant.ID,
	}
	if err := s.payments.Create(&payment); err != nil {
		return nil, Internal("Could not create payment.")
	}
	until := s.now().Add(PromotionDuration)
	restaurant.IsPromoted = true
	restaurant.PromotedUntil = &until
	if err := s.restaurants.Save(restaurant); err != nil {
		return nil, Internal("Could not create payment.")
	}
	return &payment, nil
}

func (s *Payments) Payments(user *models.User) ([]models.Payment, error) {
	payments, err := s.payments.FindByUser(user.ID)
	if err != nil {
		return nil, Internal("Could not get payments.")
	}
	return payments, nil
}

// SweepExpiredPromotions un-promotes every restaurant whose promotion window
// has passed. Returns how many were reset.
func (s *Payments) SweepExpiredPromotions() (int64, error) {
	cleared, err := s.restaurants.ClearExpiredPromotions(s.now())
	if err != nil {
		return 0, Internal("Could not sweep expired promotions.")
	}
	return cleared, nil
}

// RunPromotionSweeper runs the expiry sweep on a fixed schedule until the
// context is cancelled. It runs independently of request handling and does
// not coordinate with concurrent payment creation; promotion windows are
// day-granular, so the read-timing race with a fresh payment is accepted.
func (s *Payments) RunPromotionSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleared, err := s.SweepExpiredPromotions()
			if err != nil {
				logrus.WithError(err).Error("promotion sweep failed")
				continue
			}
			if cleared > 0 {
				logrus.WithField("restaurants", cleared).Info("cleared expired promotions")
			}
		}
	}
}
