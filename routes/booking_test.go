package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chef-booking-server/models"
	"chef-booking-server/storage"
)

func TestBookingFlowOverHTTP(t *testing.T) {
	app := buildTestApp(t)

	owner := models.User{Username: "chefowner", Email: "chefowner@example.com"}
	customer := models.User{Username: "customer", Email: "customer@example.com"}
	if err := storage.DB.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	if err := storage.DB.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	chef := models.Chef{UserID: owner.ID, Name: "chefowner", Specialty: "Italian", Experience: 4, PricePerPerson: 30.00}
	if err := storage.DB.Create(&chef).Error; err != nil {
		t.Fatalf("seed chef: %v", err)
	}

	customerToken := signTestToken(customer.ID, models.RoleUser)
	ownerToken := signTestToken(owner.ID, models.RoleUser)

	// customer places a booking request
	body := `{"date":"2099-05-01","time":"18:30","person":4}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/chef/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+customerToken)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating booking, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		Data models.Booking `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Data.Status != models.BookingPending {
		t.Fatalf("new booking should be Pending, got %q", created.Data.Status)
	}
	if created.Data.TotalPrice != 120.00 {
		t.Fatalf("expected total 120.00, got %v", created.Data.TotalPrice)
	}

	// the customer cannot accept their own request
	statusBody := `{"status":"Accepted"}`
	req2 := httptest.NewRequest(http.MethodPatch, "/api/bookings/1/status", strings.NewReader(statusBody))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("Authorization", "Bearer "+customerToken)
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner status change, got %d", resp2.Code)
	}

	// the chef accepts it
	req3 := httptest.NewRequest(http.MethodPatch, "/api/bookings/1/status", strings.NewReader(statusBody))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("Authorization", "Bearer "+ownerToken)
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 accepting booking, got %d: %s", resp3.Code, resp3.Body.String())
	}

	var updated models.Booking
	if err := storage.DB.First(&updated, created.Data.ID).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if updated.Status != models.BookingAccepted {
		t.Fatalf("expected Accepted, got %q", updated.Status)
	}

	// accepted is terminal
	rejectBody := `{"status":"Rejected"}`
	req4 := httptest.NewRequest(http.MethodPatch, "/api/bookings/1/status", strings.NewReader(rejectBody))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("Authorization", "Bearer "+ownerToken)
	resp4 := httptest.NewRecorder()
	app.ServeHTTP(resp4, req4)
	if resp4.Code != http.StatusConflict {
		t.Fatalf("expected 409 on terminal transition, got %d", resp4.Code)
	}
}

func TestCreateBookingRejectsBadPayload(t *testing.T) {
	app := buildTestApp(t)

	owner := models.User{Username: "chefowner", Email: "chefowner@example.com"}
	customer := models.User{Username: "customer", Email: "customer@example.com"}
	storage.DB.Create(&owner)
	storage.DB.Create(&customer)
	storage.DB.Create(&models.Chef{UserID: owner.ID, Name: "chefowner", PricePerPerson: 30.00})

	token := signTestToken(customer.ID, models.RoleUser)

	// person below minimum
	body := `{"date":"2099-05-01","time":"18:30","person":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/chef/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for person=0, got %d", resp.Code)
	}

	// malformed date
	body = `{"date":"01-05-2099","time":"18:30","person":2}`
	req = httptest.NewRequest(http.MethodPost, "/api/bookings/chef/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", resp.Code)
	}
}
