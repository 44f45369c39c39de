package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bookify/reservations-api/config"
	"github.com/bookify/reservations-api/middleware"
	"github.com/bookify/reservations-api/models"
	"github.com/bookify/reservations-api/statemachine"

	"github.com/gin-gonic/gin"
)

type CreateReservationRequest struct {
	RestaurantID    uint   `json:"restaurant_id" binding:"required"`
	ReservationDate string `json:"reservation_date" binding:"required"`
	ReservationTime string `json:"reservation_time" binding:"required"`
	PartySize       int    `json:"party_size" binding:"required"`
	Notes           string `json:"notes"`
}

// CreateReservation submits a booking request (customer only). The
// request starts PENDING; the owner confirms or declines it. Multiple
// reservations for the same slot are allowed: capacity bounds a
// single party, it is not decremented per slot.
func CreateReservation(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	fieldErrors := gin.H{}
	if req.PartySize < 1 {
		fieldErrors["party_size"] = "Party size must be at least 1 guest."
	} else if req.PartySize > restaurant.Capacity {
		fieldErrors["party_size"] = "Maximum party size is " + strconv.Itoa(restaurant.Capacity) + " seats."
	}

	slot, err := time.ParseInLocation(
		models.DateLayout+" "+models.TimeLayout,
		req.ReservationDate+" "+req.ReservationTime,
		time.Local,
	)
	if err != nil {
		fieldErrors["reservation_date"] = "Use the formats " + models.DateLayout + " and " + models.TimeLayout + "."
		fieldErrors["reservation_time"] = fieldErrors["reservation_date"]
	} else if slot.Before(time.Now()) {
		msg := "Please choose a future date and time."
		fieldErrors["reservation_date"] = msg
		fieldErrors["reservation_time"] = msg
	}

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	reservation := models.Reservation{
		RestaurantID:    restaurant.ID,
		CustomerID:      customerID,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		PartySize:       req.PartySize,
		Status:          models.StatusPending,
		Notes:           req.Notes,
	}
	if err := config.DB.Create(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}

	recordTransition(reservation.ID, "", models.StatusPending, customerID, "Reservation requested by customer")

	config.DB.Preload("Restaurant").First(&reservation, reservation.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation requested",
		"reservation": reservation,
	})
}

// GetMyReservations returns all reservations of the logged-in customer
func GetMyReservations(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var reservations []models.Reservation
	config.DB.Preload("Restaurant").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&reservations)
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

// GetReservationDetail returns a single reservation with its history
func GetReservationDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var reservation models.Reservation
	if err := config.DB.
		Preload("Restaurant").
		Preload("StatusHistory").
		First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}
	if reservation.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This reservation does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

// CancelReservation cancels the customer's own reservation.
// Re-cancelling is a no-op; a declined reservation stays declined.
func CancelReservation(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var reservation models.Reservation
	if err := config.DB.First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}
	if reservation.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This reservation does not belong to you"})
		return
	}

	if reservation.Status == models.StatusCancelled {
		c.JSON(http.StatusOK, gin.H{
			"message": "Reservation is already cancelled",
			"status":  reservation.Status,
		})
		return
	}

	if err := statemachine.CanTransition(reservation.Status, models.StatusCancelled, statemachine.ActorCustomer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel reservation",
			"reason":        err.Error(),
			"current_state": reservation.Status,
		})
		return
	}

	prev := reservation.Status
	config.DB.Model(&reservation).Update("status", models.StatusCancelled)
	recordTransition(reservation.ID, prev, models.StatusCancelled, customerID, "Reservation cancelled by customer")

	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled", "reservation_id": reservation.ID})
}

// ConfirmReservation is the owner accepting a pending request
func ConfirmReservation(c *gin.Context) {
	ownerTransition(c, models.StatusConfirmed, "Reservation confirmed by restaurant")
}

// DeclineReservation is the owner rejecting a pending or confirmed request
func DeclineReservation(c *gin.Context) {
	ownerTransition(c, models.StatusDeclined, "Reservation declined by restaurant")
}

func ownerTransition(c *gin.Context, to models.ReservationStatus, note string) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var reservation models.Reservation
	if err := config.DB.First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}
	if reservation.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This reservation does not belong to your restaurant"})
		return
	}

	if err := statemachine.CanTransition(reservation.Status, to, statemachine.ActorOwner); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    reservation.Status,
			"requested":         to,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(reservation.Status),
		})
		return
	}

	prev := reservation.Status
	config.DB.Model(&reservation).Update("status", to)
	recordTransition(reservation.ID, prev, to, ownerID, note)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Reservation status updated",
		"reservation_id":  reservation.ID,
		"previous_status": prev,
		"current_status":  to,
	})
}

// GetRestaurantReservations lists reservations for the owner's
// restaurant with an optional status filter and a per-status summary
func GetRestaurantReservations(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var reservations []models.Reservation
	query := config.DB.Preload("Customer").Where("restaurant_id = ?", restaurant.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("reservation_date asc, reservation_time asc").Find(&reservations)

	summary := map[string]int{}
	for _, r := range reservations {
		summary[string(r.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":          restaurant.Name,
		"reservation_summary": summary,
		"count":               len(reservations),
		"reservations":        reservations,
	})
}

func recordTransition(reservationID uint, from, to models.ReservationStatus, by uint, note string) {
	config.DB.Create(&models.ReservationStatusHistory{
		ReservationID: reservationID,
		FromStatus:    from,
		ToStatus:      to,
		ChangedBy:     by,
		Note:          note,
	})
}

