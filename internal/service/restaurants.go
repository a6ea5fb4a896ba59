package service

import (
	"errors"
	"strings"

	"gorm.io/datatypes"

	"eats-api/internal/models"
	"eats-api/internal/repository"
)

func dishOptionsColumn(options []models.DishOption) datatypes.JSONType[[]models.DishOption] {
	return datatypes.NewJSONType(options)
}

type Restaurants struct {
	restaurants repository.RestaurantRepository
	categories  repository.CategoryRepository
	dishes      repository.DishRepository
}

func NewRestaurants(restaurants repository.RestaurantRepository, categories repository.CategoryRepository, dishes repository.DishRepository) *Restaurants {
	return &Restaurants{restaurants: restaurants, categories: categories, dishes: dishes}
}

// RestaurantPage is the shape of every paginated restaurant listing.
type RestaurantPage struct {
	Results      []models.Restaurant `json:"results"`
	TotalPages   int                 `json:"total_pages"`
	TotalResults int64               `json:"total_results"`
}

// CategorySlug derives the unique slug for a category name.
func CategorySlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

type CreateRestaurantInput struct {
	Name         string
	Address      string
	CoverImage   string
	CategoryName string
}

func (s *Restaurants) CreateRestaurant(owner *models.User, input CreateRestaurantInput) (*models.Restaurant, error) {
	restaurant := models.Restaurant{
		Name:       input.Name,
		Address:    input.Address,
		CoverImage: input.CoverImage,
		OwnerID:    owner.ID,
	}
	if input.CategoryName != "" {
		category, err := s.categories.GetOrCreate(input.CategoryName, CategorySlug(input.CategoryName))
		if err != nil {
			return nil, Internal("Could not create restaurant.")
		}
		restaurant.CategoryID = &category.ID
	}
	if err := s.restaurants.Create(&restaurant); err != nil {
		return nil, Internal("Could not create restaurant.")
	}
	return &restaurant, nil
}

type UpdateRestaurantInput struct {
	Name         *string
	Address      *string
	CoverImage   *string
	CategoryName *string
}

func (s *Restaurants) UpdateRestaurant(owner *models.User, restaurantID uint, input UpdateRestaurantInput) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Restaurant not found.")
		}
		return nil, Internal("Could not update restaurant.")
	}
	if restaurant.OwnerID != owner.ID {
		return nil, Forbidden("You can not update restaurant what you not own.")
	}
	if input.Name != nil {
		restaurant.Name = *input.Name
	}
	if input.Address != nil {
		restaurant.Address = *input.Address
	}
	if input.CoverImage != nil {
		restaurant.CoverImage = *input.CoverImage
	}
	if input.CategoryName != nil && *input.CategoryName != "" {
		category, err := s.categories.GetOrCreate(*input.CategoryName, CategorySlug(*input.CategoryName))
		if err != nil {
			return nil, Internal("Could not update restaurant.")
		}
		restaurant.CategoryID = &category.ID
	}
	if err := s.restaurants.Save(restaurant); err != nil {
		return nil, Internal("Could not update restaurant.")
	}
	return restaurant, nil
}

func (s *Restaurants) DeleteRestaurant(owner *models.User, restaurantID uint) error {
	restaurant, err := s.restaurants.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Restaurant not found.")
		}
		return Internal("Could not delete restaurant.")
	}
	if restaurant.OwnerID != owner.ID {
		return Forbidden("You can not delete restaurant what you not own.")
	}
	if err := s.restaurants.Delete(restaurantID); err != nil {
		return Internal("Could not delete restaurant.")
	}
	return nil
}

func (s *Restaurants) MyRestaurants(owner *models.User) ([]models.Restaurant, error) {
	restaurants, err := s.restaurants.FindByOwner(owner.ID)
	if err != nil {
		return nil, Internal("Could not load restaurants.")
	}
	return restaurants, nil
}

func (s *Restaurants) FindRestaurantByID(restaurantID uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByIDWithMenu(restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Restaurant not found.")
		}
		return nil, Internal("Could not find restaurant by id.")
	}
	return restaurant, nil
}

func (s *Restaurants) AllRestaurants(page, take int) (*RestaurantPage, error) {
	page, take = normalizePage(page, take)
	restaurants, total, err := s.restaurants.FindAndCount(paginationOffset(page, take), take)
	if err != nil {
		return nil, Internal("Could not load restaurants.")
	}
	return &RestaurantPage{Results: restaurants, TotalPages: totalPages(total, take), TotalResults: total}, nil
}

func (s *Restaurants) SearchRestaurantsByName(query string, page, take int) (*RestaurantPage, error) {
	page, take = normalizePage(page, take)
	restaurants, total, err := s.restaurants.SearchByName(query, paginationOffset(page, take), take)
	if err != nil {
		return nil, Internal("Could not search restaurants by name.")
	}
	return &RestaurantPage{Results: restaurants, TotalPages: totalPages(total, take), TotalResults: total}, nil
}

// CategoryCount pairs a category with how many restaurants belong to it.
type CategoryCount struct {
	Category         models.Category `json:"category"`
	RestaurantsCount int64           `json:"restaurants_count"`
}

func (s *Restaurants) AllCategories() ([]CategoryCount, error) {
	categories, err := s.categories.All()
	if err != nil {
		return nil, Internal("Could not load categories.")
	}
	counts := make([]CategoryCount, 0, len(categories))
	for _, category := range categories {
		count, err := s.categories.CountRestaurants(category.ID)
		if err != nil {
			return nil, Internal("Could not load categories.")
		}
		counts = append(counts, CategoryCount{Category: category, RestaurantsCount: count})
	}
	return counts, nil
}

// CategoryView is a category together with one page of its restaurants.
type CategoryView struct {
	Category     models.Category     `json:"category"`
	Restaurants  []models.Restaurant `json:"restaurants"`
	TotalPages   int                 `json:"total_pages"`
	TotalResults int64               `json:"total_results"`
}

func (s *Restaurants) CategoryBySlug(slug string, page, take int) (*CategoryView, error) {
	category, err := s.categories.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Category not found.")
		}
		return nil, Internal("Could not find category by slug.")
	}
	page, take = normalizePage(page, take)
	restaurants, total, err := s.restaurants.FindByCategory(category.ID, paginationOffset(page, take), take)
	if err != nil {
		return nil, Internal("Could not find category by slug.")
	}
	return &CategoryView{
		Category:     *category,
		Restaurants:  restaurants,
		TotalPages:   totalPages(total, take),
		TotalResults: total,
	}, nil
}

type CreateDishInput struct {
	RestaurantID uint
	Name         string
	Price        int
	Description  string
	Photo        string
	Options      []models.DishOption
}

func (s *Restaurants) CreateDish(owner *models.User, input CreateDishInput) (*models.Dish, error) {
	restaurant, err := s.restaurants.FindByID(input.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Restaurant not found.")
		}
		return nil, Internal("Could not create dish.")
	}
	if restaurant.OwnerID != owner.ID {
		return nil, Forbidden("You can not add a dish to restaurant what you not own.")
	}
	dish := models.Dish{
		Name:         input.Name,
		Price:        input.Price,
		Description:  input.Description,
		Photo:        input.Photo,
		RestaurantID: restaurant.ID,
	}
	if input.Options != nil {
		dish.Options = dishOptionsColumn(input.Options)
	}
	if err := s.dishes.Create(&dish); err != nil {
		return nil, Internal("Could not create dish.")
	}
	return &dish, nil
}

type UpdateDishInput struct {
	Name        *string
	Price       *int
	Description *string
	Photo       *string
	Options     []models.DishOption
}

func (s *Restaurants) UpdateDish(owner *models.User, dishID uint, input UpdateDishInput) (*models.Dish, error) {
	dish, err := s.dishes.FindByIDWithRestaurant(dishID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Dish not found.")
		}
		return nil, Internal("Could not update dish.")
	}
	if dish.Restaurant.OwnerID != owner.ID {
		return nil, Forbidden("You can not update a dish of restaurant what you not own.")
	}
	if input.Name != nil {
		dish.Name = *input.Name
	}
	if input.Price != nil {
		dish.Price = *input.Price
	}
	if input.Description != nil {
		dish.Description = *input.Description
	}
	if input.Photo != nil {
		dish.Photo = *input.Photo
	}
	if input.Options != nil {
		dish.Options = dishOptionsColumn(input.Options)
	}
	if err := s.dishes.Save(dish); err != nil {
		return nil, Internal("Could not update dish.")
	}
	return dish, nil
}

func (s *Restaurants) DeleteDish(owner *models.User, dishID uint) error {
	dish, err := s.dishes.FindByIDWithRestaurant(dishID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Dish not found.")
		}
		return Internal("Could not delete dish.")
	}
	if dish.Restaurant.OwnerID != owner.ID {
		return Forbidden("You can not delete a dish of restaurant what you not own.")
	}
	if err := s.dishes.Delete(dishID); err != nil {
		return Internal("Could not delete dish.")
	}
	return nil
}
