package repository

import (
	"time"

	"gorm.io/gorm"

	"eats-api/internal/models"
)

type RestaurantRepository interface {
	FindByID(id uint) (*models.Restaurant, error)
	FindByIDWithMenu(id uint) (*models.Restaurant, error)
	FindByOwner(ownerID uint) ([]models.Restaurant, error)
	IDsByOwner(ownerID uint) ([]uint, error)
	FindAndCount(offset, take int) ([]models.Restaurant, int64, error)
	SearchByName(query string, offset, take int) ([]models.Restaurant, int64, error)
	FindByCategory(categoryID uint, offset, take int) ([]models.Restaurant, int64, error)
	Create(restaurant *models.Restaurant) error
	Save(restaurant *models.Restaurant) error
	Delete(id uint) error
	// ClearExpiredPromotions un-promotes every restaurant whose promotion
	// window ended before now, in one conditional update. Returns the number
	// of rows changed.
	ClearExpiredPromotions(now time.Time) (int64, error)
}

type gormRestaurants struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &gormRestaurants{db: db}
}

func (r *gormRestaurants) FindByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

func (r *gormRestaurants) FindByIDWithMenu(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.Preload("Menu").Preload("Category").First(&restaurant, id).Error; err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

func (r *gormRestaurants) FindByOwner(ownerID uint) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.Where("owner_id = ?", ownerID).Find(&restaurants).Error
	return restaurants, err
}

func (r *gormRestaurants) IDsByOwner(ownerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Restaurant{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

func (r *gormRestaurants) FindAndCount(offset, take int) ([]models.Restaurant, int64, error) {
	var restaurants []models.Restaurant
	var total int64
	if err := r.db.Model(&models.Restaurant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Offset(offset).Limit(take).Order("id").Find(&restaurants).Error
	return restaurants, total, err
}

func (r *gormRestaurants) SearchByName(query string, offset, take int) ([]models.Restaurant, int64, error) {
	var restaurants []models.Restaurant
	var total int64
	pattern := "%" + query + "%"
	base := r.db.Model(&models.Restaurant{}).Where("lower(name) LIKE lower(?)", pattern)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("lower(name) LIKE lower(?)", pattern).
		Offset(offset).Limit(take).Order("id").Find(&restaurants).Error
	return restaurants, total, err
}

func (r *gormRestaurants) FindByCategory(categoryID uint, offset, take int) ([]models.Restaurant, int64, error) {
	var restaurants []models.Restaurant
	var total int64
	if err := r.db.Model(&models.Restaurant{}).Where("category_id = ?", categoryID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("category_id = ?", categoryID).
		Offset(offset).Limit(take).Order("id").Find(&restaurants).Error
	return restaurants, total, err
}

func (r *gormRestaurants) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

func (r *gormRestaurants) Save(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

func (r *gormRestaurants) Delete(id uint) error {
	return r.db.Delete(&models.Restaurant{}, id).Error
}

func (r *gormRestaurants) ClearExpiredPromotions(now time.Time) (int64, error) {
	result := r.db.Model(&models.Restaurant{}).
		Where("is_promoted = ? AND promoted_until < ?", true, now).
		Updates(map[string]interface{}{"is_promoted": false, "promoted_until": nil})
	return result.RowsAffected, result.Error
}

type CategoryRepository interface {
	GetOrCreate(name, slug string) (*models.Category, error)
	All() ([]models.Category, error)
	FindBySlug(slug string) (*models.Category, error)
	CountRestaurants(categoryID uint) (int64, error)
}

type gormCategories struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &gormCategories{db: db}
}

func (r *gormCategories) GetOrCreate(name, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	category = models.Category{Name: name, Slug: slug}
	if err := r.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *gormCategories) All() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Find(&categories).Error
	return categories, err
}

func (r *gormCategories) FindBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *gormCategories) CountRestaurants(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Restaurant{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

type DishRepository interface {
	FindByID(id uint) (*models.Dish, error)
	FindByIDWithRestaurant(id uint) (*models.Dish, error)
	Create(dish *models.Dish) error
	Save(dish *models.Dish) error
	Delete(id uint) error
}

type gormDishes struct {
	db *gorm.DB
}

func NewDishRepository(db *gorm.DB) DishRepository {
	return &gormDishes{db: db}
}

func (r *gormDishes) FindByID(id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.First(&dish, id).Error; err != nil {
		return nil, translate(err)
	}
	return &dish, nil
}

func (r *gormDishes) FindByIDWithRestaurant(id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.Preload("Restaurant").First(&dish, id).Error; err != nil {
		return nil, translate(err)
	}
	return &dish, nil
}

func (r *gormDishes) Create(dish *models.Dish) error {
	return r.db.Create(dish).Error
}

func (r *gormDishes) Save(dish *models.Dish) error {
	return r.db.Save(dish).Error
}

func (r *gormDishes) Delete(id uint) error {
	return r.db.Delete(&models.Dish{}, id).Error
}
