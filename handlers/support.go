package handlers

import (
	"net/http"

	"github.com/bookify/reservations-api/config"
	"github.com/bookify/reservations-api/models"

	"github.com/gin-gonic/gin"
)

// SupportDashboard gives support staff read-only totals across the system
func SupportDashboard(c *gin.Context) {
	var users, restaurants, reservations, invitations int64
	config.DB.Model(&models.User{}).Count(&users)
	config.DB.Model(&models.Restaurant{}).Count(&restaurants)
	config.DB.Model(&models.Reservation{}).Count(&reservations)
	config.DB.Model(&models.StaffInvitation{}).Count(&invitations)

	summary := map[string]int{}
	var all []models.Reservation
	config.DB.Find(&all)
	for _, r := range all {
		summary[string(r.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"users":               users,
		"restaurants":         restaurants,
		"reservations":        reservations,
		"invitations":         invitations,
		"reservation_summary": summary,
	})
}

// SupportListUsers returns all users, optionally filtered by role
func SupportListUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// SupportListRestaurants returns all restaurants with their owners
func SupportListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	config.DB.Preload("Owner").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// SupportListReservations returns all reservations with filters
func SupportListReservations(c *gin.Context) {
	var reservations []models.Reservation
	query := config.DB.Preload("Customer").Preload("Restaurant")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	query.Order("created_at desc").Find(&reservations)
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}
