package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestaurantHandler handles restaurant-related HTTP requests.
type RestaurantHandler struct {
	restaurantService services.RestaurantService
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(restaurantService services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
	}
}

// CreateRestaurant handles POST /restaurants
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var request struct {
		Name    string  `json:"name" binding:"required"`
		Cuisine string  `json:"cuisine"`
		Rating  float64 `json:"rating" binding:"min=0,max=5"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := &models.Restaurant{
		Name:    request.Name,
		Cuisine: request.Cuisine,
		Rating:  request.Rating,
	}
	created, err := h.restaurantService.CreateRestaurant(c.Request.Context(), restaurant)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetRestaurantByID handles GET /restaurants/:id
func (h *RestaurantHandler) GetRestaurantByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	restaurant, err := h.restaurantService.GetRestaurantByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// GetAllRestaurants handles GET /restaurants
func (h *RestaurantHandler) GetAllRestaurants(c *gin.Context) {
	offset, limit := pagination(c)

	restaurants, err := h.restaurantService.GetAllRestaurants(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// SearchRestaurants handles GET /restaurants/search
func (h *RestaurantHandler) SearchRestaurants(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	filter := models.RestaurantFilter{
		Name:          c.Query("name"),
		Cuisine:       c.Query("cuisine"),
		OrderByRating: c.Query("top") == "true",
		Limit:         limit,
	}

	restaurants, err := h.restaurantService.SearchRestaurants(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// UpdateRestaurant handles PUT /restaurants/:id
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var update models.RestaurantUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// DeleteRestaurant handles DELETE /restaurants/:id
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.restaurantService.DeleteRestaurant(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}
