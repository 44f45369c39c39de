package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bookify/reservations-api/config"
	"github.com/bookify/reservations-api/middleware"
	"github.com/bookify/reservations-api/models"
	"github.com/bookify/reservations-api/routes"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var dbCounter int64

// newTestRouter wires a fresh in-memory database and the full route
// table. Each call gets its own named shared-cache DSN so gorm's
// connection pool sees one database per test.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()
	n := atomic.AddInt64(&dbCounter, 1)
	config.InitDB(fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", n))

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// createUser inserts a user directly and returns it with a session
// token. MinCost keeps fixtures fast.
func createUser(t *testing.T, email string, role models.Role, verified bool) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("passw0rd"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Email:           models.NormalizeEmail(email),
		PasswordHash:    string(hash),
		Role:            role,
		IsEmailVerified: verified,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := middleware.GenerateToken(&user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

func createRestaurant(t *testing.T, ownerID uint, capacity int) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		OwnerID:  ownerID,
		Name:     "Test Bistro",
		Address:  "1 Test Street",
		Cuisine:  "Italian",
		Capacity: capacity,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	return restaurant
}

func saveInvitation(t *testing.T, inv *models.StaffInvitation) {
	t.Helper()
	if err := config.DB.Save(inv).Error; err != nil {
		t.Fatalf("save invitation: %v", err)
	}
}

// doJSON performs a request with an optional bearer token and JSON body
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
	return out
}

// slotAt returns the date and time strings for now+d in local time
func slotAt(d time.Duration) (string, string) {
	at := time.Now().Add(d)
	return at.Format(models.DateLayout), at.Format(models.TimeLayout)
}

func reservationStatus(t *testing.T, id uint) models.ReservationStatus {
	t.Helper()
	var reservation models.Reservation
	if err := config.DB.First(&reservation, id).Error; err != nil {
		t.Fatalf("load reservation %d: %v", id, err)
	}
	return reservation.Status
}
