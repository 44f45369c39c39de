package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/bookify/reservations-api/config"
	"github.com/bookify/reservations-api/middleware"
	"github.com/bookify/reservations-api/models"

	"github.com/gin-gonic/gin"
)

const dashboardLimit = 5

// slotKey sorts chronologically because both layouts are
// fixed-width and zero-padded.
func slotKey(r models.Reservation) string {
	return r.ReservationDate + " " + r.ReservationTime
}

// CustomerDashboard partitions the customer's reservations into
// upcoming and past. Cancelled and declined bookings always land in
// past, whatever their date.
func CustomerDashboard(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var reservations []models.Reservation
	config.DB.Preload("Restaurant").
		Where("customer_id = ?", customerID).
		Find(&reservations)

	today := time.Now().Format(models.DateLayout)
	var upcoming, past []models.Reservation
	for _, r := range reservations {
		active := r.Status != models.StatusCancelled && r.Status != models.StatusDeclined
		if active && r.ReservationDate >= today {
			upcoming = append(upcoming, r)
		} else {
			past = append(past, r)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool { return slotKey(upcoming[i]) < slotKey(upcoming[j]) })
	sort.Slice(past, func(i, j int) bool { return slotKey(past[i]) > slotKey(past[j]) })

	c.JSON(http.StatusOK, gin.H{
		"upcoming_count": len(upcoming),
		"past_count":     len(past),
		"upcoming":       truncate(upcoming),
		"past":           truncate(past),
	})
}

func truncate(rs []models.Reservation) []models.Reservation {
	if len(rs) > dashboardLimit {
		return rs[:dashboardLimit]
	}
	return rs
}

// OwnerDashboard shows the owner's actionable reservations and the
// state of their staff invitations. Past reservations are dropped
// from this view entirely.
func OwnerDashboard(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	now := time.Now()

	payload := gin.H{"has_restaurant": false}

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err == nil {
		payload["has_restaurant"] = true
		payload["restaurant"] = restaurant

		var reservations []models.Reservation
		config.DB.Preload("Customer").
			Where("restaurant_id = ?", restaurant.ID).
			Order("reservation_date asc, reservation_time asc").
			Find(&reservations)

		pending := []models.Reservation{}
		upcoming := []models.Reservation{}
		for _, r := range reservations {
			slot, err := r.SlotTime()
			if err != nil || slot.Before(now) {
				continue
			}
			switch r.Status {
			case models.StatusPending:
				pending = append(pending, r)
			case models.StatusConfirmed, models.StatusCancelled:
				upcoming = append(upcoming, r)
			}
		}
		payload["pending"] = pending
		payload["upcoming"] = upcoming
	}

	var invitations []models.StaffInvitation
	config.DB.Where("invited_by_id = ?", ownerID).Order("created_at desc").Find(&invitations)

	active := []models.StaffInvitation{}
	expired := []models.StaffInvitation{}
	accepted := 0
	for _, inv := range invitations {
		switch {
		case inv.IsAccepted():
			accepted++
		case inv.IsExpired(now):
			expired = append(expired, inv)
		default:
			active = append(active, inv)
		}
	}
	payload["invitations"] = gin.H{
		"active":         active,
		"expired":        expired,
		"accepted_count": accepted,
	}

	c.JSON(http.StatusOK, payload)
}

// StaffDashboard shows the staff member's profile and the restaurant
// their invitation attached them to, if any.
func StaffDashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	payload := gin.H{"user": user}

	var inv models.StaffInvitation
	err := config.DB.Preload("Restaurant").
		Where("LOWER(email) = ? AND accepted_at IS NOT NULL", user.Email).
		Order("accepted_at desc").
		First(&inv).Error
	if err == nil && inv.Restaurant != nil {
		payload["restaurant"] = inv.Restaurant
	}

	c.JSON(http.StatusOK, payload)
}
