package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bookify/reservations-api/config"
	"github.com/bookify/reservations-api/models"
)

func TestCreateRestaurantOncePerOwner(t *testing.T) {
	r := newTestRouter(t)
	_, ownerToken := createUser(t, "owner@example.com", models.RoleOwner, true)

	payload := map[string]interface{}{
		"name":     "Trattoria Uno",
		"address":  "12 Via Roma",
		"cuisine":  "Italian",
		"capacity": 20,
	}
	if resp := doJSON(t, r, http.MethodPost, "/api/owner/restaurant", ownerToken, payload); resp.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	second := doJSON(t, r, http.MethodPost, "/api/owner/restaurant", ownerToken, payload)
	if second.Code != http.StatusConflict {
		t.Fatalf("second create: expected 409, got %d", second.Code)
	}
	if decodeBody(t, second)["edit_url"] != "/api/owner/restaurant" {
		t.Fatalf("expected edit_url pointer, got %s", second.Body.String())
	}

	var count int64
	config.DB.Model(&models.Restaurant{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one restaurant, got %d", count)
	}
}

func TestCreateRestaurantInvalidOpeningHours(t *testing.T) {
	r := newTestRouter(t)
	_, ownerToken := createUser(t, "owner@example.com", models.RoleOwner, true)

	for _, hours := range []interface{}{"not an object", []string{"Mon"}, map[string]interface{}{"Mon": "09:00"}} {
		resp := doJSON(t, r, http.MethodPost, "/api/owner/restaurant", ownerToken, map[string]interface{}{
			"name":          "Bad Hours",
			"address":       "1 Somewhere",
			"capacity":      10,
			"opening_hours": hours,
		})
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("hours %v: expected 400, got %d: %s", hours, resp.Code, resp.Body.String())
		}
	}
}

func TestCreateRestaurantOpeningHoursRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	owner, ownerToken := createUser(t, "owner@example.com", models.RoleOwner, true)

	resp := doJSON(t, r, http.MethodPost, "/api/owner/restaurant", ownerToken, map[string]interface{}{
		"name":     "Clockwork",
		"address":  "1 Time Square",
		"capacity": 10,
		"opening_hours": map[string]interface{}{
			"Mon": map[string]string{"open": "09:00", "close": "22:00"},
			// Reversed hours are accepted as-is, no ordering check
			"Tue": map[string]string{"open": "23:00", "close": "01:00"},
		},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", owner.ID).First(&restaurant).Error; err != nil {
		t.Fatalf("load restaurant: %v", err)
	}
	if restaurant.OpeningHours["Mon"].Open != "09:00" || restaurant.OpeningHours["Tue"].Close != "01:00" {
		t.Fatalf("opening hours did not round-trip: %+v", restaurant.OpeningHours)
	}
}

func TestUpdateRestaurantAllowedFieldsOnly(t *testing.T) {
	r := newTestRouter(t)
	owner, ownerToken := createUser(t, "owner@example.com", models.RoleOwner, true)
	createRestaurant(t, owner.ID, 10)

	resp := doJSON(t, r, http.MethodPut, "/api/owner/restaurant", ownerToken, map[string]interface{}{
		"name":     "Renamed",
		"capacity": 12,
		"rating":   5.0, // not an updatable field
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var restaurant models.Restaurant
	config.DB.Where("owner_id = ?", owner.ID).First(&restaurant)
	if restaurant.Name != "Renamed" || restaurant.Capacity != 12 {
		t.Fatalf("update not applied: %+v", restaurant)
	}
	if restaurant.Rating != 0 {
		t.Fatalf("rating must not be client-updatable, got %v", restaurant.Rating)
	}
}

func seedBrowseFixture(t *testing.T) {
	t.Helper()
	owners := []struct {
		email   string
		name    string
		cuisine string
		address string
		rating  float64
	}{
		{"a@example.com", "Akira Sushi", "Japanese", "3 Harbor Road", 4.5},
		{"b@example.com", "Bella Pasta", "Italian", "9 Canal Street", 4.5},
		{"c@example.com", "Canal House", "French", "2 Sushi Lane", 3.0},
	}
	for _, o := range owners {
		owner, _ := createUser(t, o.email, models.RoleOwner, true)
		if err := config.DB.Create(&models.Restaurant{
			OwnerID: owner.ID, Name: o.name, Cuisine: o.cuisine,
			Address: o.address, Capacity: 10, Rating: o.rating,
		}).Error; err != nil {
			t.Fatalf("seed restaurant: %v", err)
		}
	}
}

func listNames(t *testing.T, body []byte) []string {
	t.Helper()
	var out struct {
		Restaurants []models.Restaurant `json:"restaurants"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	names := make([]string, len(out.Restaurants))
	for i, r := range out.Restaurants {
		names[i] = r.Name
	}
	return names
}

func TestListRestaurantsDefaultOrdering(t *testing.T) {
	r := newTestRouter(t)
	seedBrowseFixture(t)

	resp := doJSON(t, r, http.MethodGet, "/api/restaurants", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	names := listNames(t, resp.Body.Bytes())
	// rating desc, ties broken by name asc
	want := []string{"Akira Sushi", "Bella Pasta", "Canal House"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, names, want)
		}
	}
}

func TestListRestaurantsSearchAcrossFields(t *testing.T) {
	r := newTestRouter(t)
	seedBrowseFixture(t)

	// "sushi" matches Akira Sushi by name and Canal House by address
	resp := doJSON(t, r, http.MethodGet, "/api/restaurants?search=SUSHI", "", nil)
	names := listNames(t, resp.Body.Bytes())
	if len(names) != 2 {
		t.Fatalf("expected 2 matches, got %v", names)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/restaurants?search=italian", "", nil)
	names = listNames(t, resp.Body.Bytes())
	if len(names) != 1 || names[0] != "Bella Pasta" {
		t.Fatalf("cuisine search failed: %v", names)
	}
}

func TestListRestaurantsOrderingParam(t *testing.T) {
	r := newTestRouter(t)
	seedBrowseFixture(t)

	resp := doJSON(t, r, http.MethodGet, "/api/restaurants?ordering=name", "", nil)
	names := listNames(t, resp.Body.Bytes())
	want := []string{"Akira Sushi", "Bella Pasta", "Canal House"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("name ordering mismatch: got %v", names)
		}
	}

	// Unknown ordering falls back to the default
	resp = doJSON(t, r, http.MethodGet, "/api/restaurants?ordering=id;drop", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("unknown ordering: expected 200, got %d", resp.Code)
	}
}
