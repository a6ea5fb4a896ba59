package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eats-api/internal/middleware"
	"eats-api/internal/models"
	"eats-api/internal/service"
)

type RestaurantHandler struct {
	restaurants *service.Restaurants
}

func NewRestaurantHandler(restaurants *service.Restaurants) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func pageArgs(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	take, _ := strconv.Atoi(c.DefaultQuery("take", strconv.Itoa(service.DefaultTake)))
	return page, take
}

type createRestaurantRequest struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	CoverImage   string `json:"cover_image"`
	CategoryName string `json:"category_name"`
}

func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	var req createRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	restaurant, err := h.restaurants.CreateRestaurant(owner, service.CreateRestaurantInput{
		Name:         req.Name,
		Address:      req.Address,
		CoverImage:   req.CoverImage,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"restaurant": restaurant})
}

type updateRestaurantRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	CoverImage   *string `json:"cover_image"`
	CategoryName *string `json:"category_name"`
}

func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	var req updateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	restaurant, err := h.restaurants.UpdateRestaurant(owner, id, service.UpdateRestaurantInput{
		Name:         req.Name,
		Address:      req.Address,
		CoverImage:   req.CoverImage,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"restaurant": restaurant})
}

func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	if err := h.restaurants.DeleteRestaurant(owner, id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{})
}

func (h *RestaurantHandler) MyRestaurants(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	restaurants, err := h.restaurants.MyRestaurants(owner)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"restaurants": restaurants})
}

func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	restaurant, err := h.restaurants.FindRestaurantByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"restaurant": restaurant})
}

func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	page, take := pageArgs(c)
	result, err := h.restaurants.AllRestaurants(page, take)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"results":       result.Results,
		"total_pages":   result.TotalPages,
		"total_results": result.TotalResults,
	})
}

func (h *RestaurantHandler) SearchRestaurants(c *gin.Context) {
	page, take := pageArgs(c)
	result, err := h.restaurants.SearchRestaurantsByName(c.Query("query"), page, take)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"results":       result.Results,
		"total_pages":   result.TotalPages,
		"total_results": result.TotalResults,
	})
}

func (h *RestaurantHandler) ListCategories(c *gin.Context) {
	categories, err := h.restaurants.AllCategories()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"categories": categories})
}

func (h *RestaurantHandler) GetCategory(c *gin.Context) {
	page, take := pageArgs(c)
	view, err := h.restaurants.CategoryBySlug(c.Param("slug"), page, take)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"category":      view.Category,
		"restaurants":   view.Restaurants,
		"total_pages":   view.TotalPages,
		"total_results": view.TotalResults,
	})
}

type createDishRequest struct {
	RestaurantID uint                `json:"restaurant_id" binding:"required"`
	Name         string              `json:"name" binding:"required"`
	Price        int                 `json:"price" binding:"required"`
	Description  string              `json:"description"`
	Photo        string              `json:"photo"`
	Options      []models.DishOption `json:"options"`
}

func (h *RestaurantHandler) CreateDish(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	var req createDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	dish, err := h.restaurants.CreateDish(owner, service.CreateDishInput{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Price:        req.Price,
		Description:  req.Description,
		Photo:        req.Photo,
		Options:      req.Options,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"dish": dish})
}

type updateDishRequest struct {
	Name        *string             `json:"name"`
	Price       *int                `json:"price"`
	Description *string             `json:"description"`
	Photo       *string             `json:"photo"`
	Options     []models.DishOption `json:"options"`
}

func (h *RestaurantHandler) UpdateDish(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	var req updateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	dish, err := h.restaurants.UpdateDish(owner, id, service.UpdateDishInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Photo:       req.Photo,
		Options:     req.Options,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"dish": dish})
}

func (h *RestaurantHandler) DeleteDish(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	if err := h.restaurants.DeleteDish(owner, id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{})
}
