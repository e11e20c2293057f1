package contact

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	contactmodel "github.com/emergency-ai/backend/internal/model/contact"
)

func setupRouter() (*chi.Mux, *contactmodel.Store) {
	store := contactmodel.NewStore()
	handler := New(store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func TestAddContact(t *testing.T) {
	r, store := setupRouter()

	payload, _ := json.Marshal(map[string]string{"name": "Alex", "phone": "555-0100"})
	req := httptest.NewRequest(http.MethodPost, "/contacts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if len(store.List()) != 1 {
		t.Fatalf("expected 1 stored contact, got %d", len(store.List()))
	}
}

func TestAddContactMissingFields(t *testing.T) {
	r, _ := setupRouter()

	payload := []byte(`{"name":"Alex"}`)
	req := httptest.NewRequest(http.MethodPost, "/contacts", bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestRemoveContactNotFound(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodDelete, "/contacts/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestMedicalCardRoundTrip(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/medical-card", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 before any card is set, got %d", resp.Code)
	}

	payload := []byte(`{"bloodType":"O+","allergies":["penicillin"]}`)
	req = httptest.NewRequest(http.MethodPut, "/medical-card", bytes.NewReader(payload))
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/medical-card", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var card contactmodel.MedicalCard
	if err := json.Unmarshal(resp.Body.Bytes(), &card); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if card.BloodType != "O+" {
		t.Fatalf("unexpected blood type: %s", card.BloodType)
	}
}
