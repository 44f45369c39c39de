package handlers

import (
	"net/http"

	"github.com/bookify/reservations-api/config"
	"github.com/bookify/reservations-api/mailer"
	"github.com/bookify/reservations-api/middleware"
	"github.com/bookify/reservations-api/models"
	"github.com/bookify/reservations-api/signing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required"`
	Role      models.Role `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func emailSigner() *signing.Signer {
	return signing.New(config.SigningKey)
}

func sendVerificationEmail(user *models.User) {
	token := emailSigner().MakeEmailToken(user.ID)
	link := config.BaseURL + "/api/auth/verify-email?token=" + token
	mailer.Send(user.Email,
		"Verify your Bookify email",
		"Click to verify your account: "+link,
	)
}

// Register creates a new customer or owner account. Staff accounts
// are invite-only; support accounts are created by operators.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role == models.RoleStaff {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Staff accounts are invite-only. Ask your manager for an invite link.",
		})
		return
	}
	if !req.Role.SelfRegisterable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: CUSTOMER or OWNER"})
		return
	}

	if !models.ValidPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"password": models.PasswordRule}})
		return
	}

	email := models.NormalizeEmail(req.Email)
	var existing models.User
	if result := config.DB.Where("LOWER(email) = ?", email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	sendVerificationEmail(&user)

	// No session until the address is verified
	c.JSON(http.StatusCreated, gin.H{
		"message":         "Account created. Check your email to verify your address.",
		"verify_required": true,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login authenticates a user and returns a JWT. Unverified accounts
// get the verification prompt instead of a session.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("LOWER(email) = ?", models.NormalizeEmail(req.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !user.IsEmailVerified {
		c.JSON(http.StatusOK, gin.H{
			"verify_required": true,
			"email":           user.Email,
			"message":         "Verify your email before logging in. Check your inbox for the link.",
		})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// VerifyEmail consumes a signed verification token and flips the
// user's verified flag. The error is deliberately the same for every
// failure mode.
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification link."})
		return
	}

	userID, err := emailSigner().VerifyEmailToken(token, config.VerifyMaxAge)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification link."})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification link."})
		return
	}

	if !user.IsEmailVerified {
		config.DB.Model(&user).Update("is_email_verified", true)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified. You can now log in."})
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout ends a session. Tokens are stateless, so the server has
// nothing to tear down; the client discards the token.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out. Discard your token."})
}

// PostLogin routes a fresh session to its role dashboard
func PostLogin(c *gin.Context) {
	var path string
	switch middleware.GetRole(c) {
	case models.RoleCustomer:
		path = "/api/dashboard/customer"
	case models.RoleOwner:
		path = "/api/dashboard/owner"
	case models.RoleStaff:
		path = "/api/dashboard/staff"
	case models.RoleSupport:
		path = "/api/dashboard/support"
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Unknown role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": path})
}
