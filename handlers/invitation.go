package handlers

import (
	"net/http"
	"time"

	"github.com/bookify/reservations-api/config"
	"github.com/bookify/reservations-api/mailer"
	"github.com/bookify/reservations-api/middleware"
	"github.com/bookify/reservations-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type CreateInvitationRequest struct {
	Email        string `json:"email" binding:"required,email"`
	RestaurantID *uint  `json:"restaurant_id"`
}

// CreateInvitation lets an owner invite a staff member by email
func CreateInvitation(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := models.NormalizeEmail(req.Email)

	if req.RestaurantID != nil {
		var restaurant models.Restaurant
		if err := config.DB.Where("id = ? AND owner_id = ?", *req.RestaurantID, ownerID).First(&restaurant).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this restaurant"})
			return
		}
	}

	// One active invite per inviter+email
	var active models.StaffInvitation
	err := config.DB.Where(
		"invited_by_id = ? AND LOWER(email) = ? AND accepted_at IS NULL AND expires_at > ?",
		ownerID, email, time.Now(),
	).First(&active).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An active invitation for this email already exists"})
		return
	}

	inv := models.StaffInvitation{
		Email:        email,
		RestaurantID: req.RestaurantID,
		Token:        models.NewInviteToken(),
		InvitedByID:  ownerID,
		Role:         models.RoleStaff,
		ExpiresAt:    time.Now().Add(config.InviteTTL),
	}
	if err := config.DB.Create(&inv).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	link := config.BaseURL + "/api/invitations/accept?token=" + inv.Token
	mailer.Send(email,
		"Your Bookify staff invite",
		"Open this link to join: "+link,
	)

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Invitation sent to " + email,
		"invitation": inv,
	})
}

// ShowInvitation is the public validity probe behind the accept link
func ShowInvitation(c *gin.Context) {
	inv, ok := findValidInvitation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":      inv.Email,
		"role":       inv.Role,
		"expires_at": inv.ExpiresAt,
	})
}

type AcceptInvitationRequest struct {
	Token     string `json:"token" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AcceptInvitation consumes a token and creates a pre-verified STAFF
// account. A token is usable exactly once.
func AcceptInvitation(c *gin.Context) {
	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var inv models.StaffInvitation
	if err := config.DB.Where("token = ?", req.Token).First(&inv).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired invitation."})
		return
	}
	if !inv.IsValid(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired invitation."})
		return
	}

	if !models.ValidPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"password": models.PasswordRule}})
		return
	}

	var existing models.User
	if result := config.DB.Where("LOWER(email) = ?", models.NormalizeEmail(inv.Email)).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           models.NormalizeEmail(inv.Email),
		PasswordHash:    string(hash),
		Role:            inv.Role,
		IsEmailVerified: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	now := time.Now()
	config.DB.Model(&inv).Update("accepted_at", &now)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created. You can log in.",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func findValidInvitation(c *gin.Context) (*models.StaffInvitation, bool) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired invitation."})
		return nil, false
	}
	var inv models.StaffInvitation
	if err := config.DB.Where("token = ?", token).First(&inv).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired invitation."})
		return nil, false
	}
	if !inv.IsValid(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired invitation."})
		return nil, false
	}
	return &inv, true
}
