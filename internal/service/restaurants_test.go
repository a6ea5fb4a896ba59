package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eats-api/internal/models"
	"eats-api/internal/repository"
)

func newRestaurantsService(t *testing.T) (*Restaurants, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewRestaurants(
		repository.NewRestaurantRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewDishRepository(db),
	)
	return svc, db
}

func TestCategorySlug(t *testing.T) {
	assert.Equal(t, "fast-food", CategorySlug("Fast Food"))
	assert.Equal(t, "fast-food", CategorySlug("  Fast Food  "))
	assert.Equal(t, "korean-bbq-grill", CategorySlug("Korean BBQ Grill"))
	assert.Equal(t, "pizza", CategorySlug("PIZZA"))
}

func TestCreateRestaurant(t *testing.T) {
	svc, db := newRestaurantsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)

	restaurant, err := svc.CreateRestaurant(owner, CreateRestaurantInput{
		Name:         "Seoul Bites",
		Address:      "42 Noodle Ave",
		CategoryName: "Korean Food",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, restaurant.OwnerID)
	require.NotNil(t, restaurant.CategoryID)

	var category models.Category
	require.NoError(t, db.First(&category, *restaurant.CategoryID).Error)
	assert.Equal(t, "korean-food", category.Slug)

	// A second restaurant with the same category name reuses the category row.
	second, err := svc.CreateRestaurant(owner, CreateRestaurantInput{
		Name:         "Gangnam Grill",
		Address:      "7 Kimchi St",
		CategoryName: "korean food",
	})
	require.NoError(t, err)
	require.NotNil(t, second.CategoryID)
	assert.Equal(t, *restaurant.CategoryID, *second.CategoryID)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateRestaurantOwnership(t *testing.T) {
	svc, db := newRestaurantsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	intruder := createUser(t, db, "intruder@example.com", models.RoleOwner)
	restaurant := createRestaurant(t, db, owner, "Original Name")

	newName := "Renamed"
	_, err := svc.UpdateRestaurant(intruder, restaurant.ID, UpdateRestaurantInput{Name: &newName})
	requireKind(t, err, KindForbidden)
	assert.EqualError(t, err, "You can not update restaurant what you not own.")

	updated, err := svc.UpdateRestaurant(owner, restaurant.ID, UpdateRestaurantInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "123 Main St", updated.Address)

	_, err = svc.UpdateRestaurant(owner, 999, UpdateRestaurantInput{Name: &newName})
	requireKind(t, err, KindNotFound)
}

func TestDeleteRestaurantOwnership(t *testing.T) {
	svc, db := newRestaurantsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	intruder := createUser(t, db, "intruder@example.com", models.RoleOwner)
	restaurant := createRestaurant(t, db, owner, "Doomed")

	err := svc.DeleteRestaurant(intruder, restaurant.ID)
	requireKind(t, err, KindForbidden)
	assert.EqualError(t, err, "You can not delete restaurant what you not own.")

	require.NoError(t, svc.DeleteRestaurant(owner, restaurant.ID))
	_, err = svc.FindRestaurantByID(restaurant.ID)
	requireKind(t, err, KindNotFound)
}

func TestAllRestaurantsPagination(t *testing.T) {
	svc, db := newRestaurantsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	for i := 0; i < 7; i++ {
		createRestaurant(t, db, owner, fmt.Sprintf("Place %d", i))
	}

	page, err := svc.AllRestaurants(1, 3)
	require.NoError(t, err)
	assert.Len(t, page.Results, 3)
	assert.Equal(t, int64(7), page.TotalResults)
	assert.Equal(t, 3, page.TotalPages)

	last, err := svc.AllRestaurants(3, 3)
	require.NoError(t, err)
	assert.Len(t, last.Results, 1)

	// Out-of-range pages turn up empty, not an error.
	empty, err := svc.AllRestaurants(9, 3)
	require.NoError(t, err)
	assert.Empty(t, empty.Results)

	// Page zero is normalized to the first page.
	first, err := svc.AllRestaurants(0, 3)
	require.NoError(t, err)
	assert.Equal(t, page.Results[0].ID, first.Results[0].ID)
}

func TestSearchRestaurantsByName(t *testing.T) {
	svc, db := newRestaurantsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	createRestaurant(t, db, owner, "Burger Palace")
	createRestaurant(t, db, owner, "The Burger Joint")
	createRestaurant(t, db, owner, "Sushi Spot")

	page, err := svc.SearchRestaurantsByName("burger", 1, 25)
	require.NoError(t, err)
	assert.Len(t, page.Results, 2)
	assert.Equal(t, int64(2), page.TotalResults)

	page, err = svc.SearchRestaurantsByName("SUSHI", 1, 25)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Sushi Spot", page.Results[0].Name)

	page, err = svc.SearchRestaurantsByName("tacos", 1, 25)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
}

func TestCategories(t *testing.T) {
	svc, db := newRestaurantsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)

	_, err := svc.CreateRestaurant(owner, CreateRestaurantInput{Name: "A", Address: "a", CategoryName: "Pizza"})
	require.NoError(t, err)
	_, err = svc.CreateRestaurant(owner, CreateRestaurantInput{Name: "B", Address: "b", CategoryName: "Pizza"})
	require.NoError(t, err)
	_, err = svc.CreateRestaurant(owner, CreateRestaurantInput{Name: "C", Address: "c", CategoryName: "Sushi"})
	require.NoError(t, err)

	counts, err := svc.AllCategories()
	require.NoError(t, err)
	require.Len(t, counts, 2)
	byName := map[string]int64{}
	for _, c := range counts {
		byName[c.Category.Name] = c.RestaurantsCount
	}
	assert.Equal(t, int64(2), byName["Pizza"])
	assert.Equal(t, int64(1), byName["Sushi"])

	view, err := svc.CategoryBySlug("pizza", 1, 25)
	require.NoError(t, err)
	assert.Equal(t, "Pizza", view.Category.Name)
	assert.Len(t, view.Restaurants, 2)
	assert.Equal(t, int64(2), view.TotalResults)

	_, err = svc.CategoryBySlug("nope", 1, 25)
	requireKind(t, err, KindNotFound)
	assert.EqualError(t, err, "Category not found.")
}

func TestMyRestaurants(t *testing.T) {
	svc, db := newRestaurantsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	other := createUser(t, db, "other@example.com", models.RoleOwner)
	createRestaurant(t, db, owner, "Mine One")
	createRestaurant(t, db, owner, "Mine Two")
	createRestaurant(t, db, other, "Not Mine")

	mine, err := svc.MyRestaurants(owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestDishCRUD(t *testing.T) {
	svc, db := newRestaurantsService(t)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	intruder := createUser(t, db, "intruder@example.com", models.RoleOwner)
	restaurant := createRestaurant(t, db, owner, "Dish Place")

	t.Run("create", func(t *testing.T) {
		dish, err := svc.CreateDish(owner, CreateDishInput{
			RestaurantID: restaurant.ID,
			Name:         "Ramen",
			Price:        11,
			Options: []models.DishOption{
				{Name: "Spice", Choices: []models.DishChoice{{Name: "Mild"}, {Name: "Hot", Extra: 1}}},
			},
		})
		require.NoError(t, err)
		options := dish.Options.Data()
		require.Len(t, options, 1)
		assert.Equal(t, "Spice", options[0].Name)

		_, err = svc.CreateDish(intruder, CreateDishInput{RestaurantID: restaurant.ID, Name: "Nope", Price: 1})
		requireKind(t, err, KindForbidden)
		assert.EqualError(t, err, "You can not add a dish to restaurant what you not own.")

		_, err = svc.CreateDish(owner, CreateDishInput{RestaurantID: 999, Name: "Ghost", Price: 1})
		requireKind(t, err, KindNotFound)
	})

	t.Run("update", func(t *testing.T) {
		dish := createDish(t, db, restaurant, "Udon", 9, nil)

		newPrice := 12
		updated, err := svc.UpdateDish(owner, dish.ID, UpdateDishInput{Price: &newPrice})
		require.NoError(t, err)
		assert.Equal(t, 12, updated.Price)
		assert.Equal(t, "Udon", updated.Name)

		_, err = svc.UpdateDish(intruder, dish.ID, UpdateDishInput{Price: &newPrice})
		requireKind(t, err, KindForbidden)

		_, err = svc.UpdateDish(owner, 999, UpdateDishInput{Price: &newPrice})
		requireKind(t, err, KindNotFound)
		assert.EqualError(t, err, "Dish not found.")
	})

	t.Run("delete", func(t *testing.T) {
		dish := createDish(t, db, restaurant, "Soba", 7, nil)

		err := svc.DeleteDish(intruder, dish.ID)
		requireKind(t, err, KindForbidden)
		assert.EqualError(t, err, "You can not delete a dish of restaurant what you not own.")

		require.NoError(t, svc.DeleteDish(owner, dish.ID))
		err = svc.DeleteDish(owner, dish.ID)
		requireKind(t, err, KindNotFound)
	})

	t.Run("menu on restaurant detail", func(t *testing.T) {
		found, err := svc.FindRestaurantByID(restaurant.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, found.Menu)
	})
}
