package handlers

import (
	"net/http"
	"strings"

	"github.com/bookify/reservations-api/config"
	"github.com/bookify/reservations-api/models"
	"github.com/bookify/reservations-api/statemachine"

	"github.com/gin-gonic/gin"
)

// orderings whitelists the ?ordering= values for the browse endpoint
var orderings = map[string]string{
	"rating":    "rating asc",
	"-rating":   "rating desc",
	"name":      "name asc",
	"-name":     "name desc",
	"capacity":  "capacity asc",
	"-capacity": "capacity desc",
}

// ListRestaurants is the public browse endpoint with search and
// ordering. Default order is rating descending, then name.
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB.Model(&models.Restaurant{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(cuisine) LIKE ? OR LOWER(address) LIKE ?",
			like, like, like,
		)
	}
	if cuisine := strings.TrimSpace(c.Query("cuisine")); cuisine != "" {
		query = query.Where("LOWER(cuisine) = ?", strings.ToLower(cuisine))
	}

	order := "rating desc, name asc"
	if requested, ok := orderings[c.Query("ordering")]; ok {
		order = requested + ", name asc"
	}

	query.Order(order).Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant (public)
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetStateMachineInfo returns the reservation lifecycle for documentation
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.ReservationStatus{models.StatusCancelled, models.StatusDeclined},
		"description":     "Restaurant Reservation Lifecycle State Machine",
	})
}
