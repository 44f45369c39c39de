package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bookify/reservations-api/config"
	"github.com/bookify/reservations-api/middleware"
	"github.com/bookify/reservations-api/models"

	"github.com/gin-gonic/gin"
)

type CreateRestaurantRequest struct {
	Name         string          `json:"name" binding:"required"`
	Address      string          `json:"address" binding:"required"`
	Cuisine      string          `json:"cuisine"`
	Capacity     int             `json:"capacity" binding:"required,gt=0"`
	Description  string          `json:"description"`
	OpeningHours json.RawMessage `json:"opening_hours"`
}

const openingHoursRule = `opening_hours must be an object like {"Mon": {"open":"09:00","close":"22:00"}}`

// parseOpeningHours validates the structural shape only. Open/close
// ordering per day is accepted as-is.
func parseOpeningHours(raw json.RawMessage) (models.OpeningHours, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return models.OpeningHours{}, true
	}
	var hours models.OpeningHours
	if err := json.Unmarshal(raw, &hours); err != nil {
		return nil, false
	}
	return hours, true
}

// CreateRestaurant lets an owner create their restaurant. One
// restaurant per owner: a second create points at the edit endpoint
// instead.
func CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var existing models.Restaurant
	if result := config.DB.Where("owner_id = ?", ownerID).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":    "You already have a restaurant",
			"edit_url": "/api/owner/restaurant",
		})
		return
	}

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hours, ok := parseOpeningHours(req.OpeningHours)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"opening_hours": openingHoursRule}})
		return
	}

	restaurant := models.Restaurant{
		OwnerID:      ownerID,
		Name:         req.Name,
		Address:      req.Address,
		Cuisine:      req.Cuisine,
		Capacity:     req.Capacity,
		Description:  req.Description,
		OpeningHours: hours,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// GetMyRestaurant fetches the restaurant owned by the logged-in user
func GetMyRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// UpdateRestaurant updates restaurant details
func UpdateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req map[string]json.RawMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only allow safe fields
	for key, raw := range req {
		switch key {
		case "name":
			if json.Unmarshal(raw, &restaurant.Name) != nil {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{key: "must be a string"}})
				return
			}
		case "address":
			if json.Unmarshal(raw, &restaurant.Address) != nil {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{key: "must be a string"}})
				return
			}
		case "cuisine":
			if json.Unmarshal(raw, &restaurant.Cuisine) != nil {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{key: "must be a string"}})
				return
			}
		case "description":
			if json.Unmarshal(raw, &restaurant.Description) != nil {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{key: "must be a string"}})
				return
			}
		case "capacity":
			var capacity int
			if json.Unmarshal(raw, &capacity) != nil || capacity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{key: "must be a positive integer"}})
				return
			}
			restaurant.Capacity = capacity
		case "opening_hours":
			hours, ok := parseOpeningHours(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{key: openingHoursRule}})
				return
			}
			restaurant.OpeningHours = hours
		}
	}

	if err := config.DB.Save(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}
