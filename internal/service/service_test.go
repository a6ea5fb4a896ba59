package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"eats-api/internal/config"
	"eats-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database
	// and serializes concurrent writers.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "abcdef", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createRestaurant(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: name, Address: "123 Main St", OwnerID: owner.ID}
	require.NoError(t, db.Create(&restaurant).Error)
	return &restaurant
}

func createDish(t *testing.T, db *gorm.DB, restaurant *models.Restaurant, name string, price int, options []models.DishOption) *models.Dish {
	t.Helper()
	dish := models.Dish{
		Name:         name,
		Price:        price,
		Description:  "test dish",
		RestaurantID: restaurant.ID,
	}
	if options != nil {
		dish.Options = dishOptionsColumn(options)
	}
	require.NoError(t, db.Create(&dish).Error)
	return &dish
}

// fakeMailer records verification mail instead of sending it.
type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) SendVerificationEmail(to, code string) error {
	m.sent = append(m.sent, to)
	return nil
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err))
}
