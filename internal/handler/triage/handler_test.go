package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/emergency-ai/backend/internal/model/firstaid"
	"github.com/emergency-ai/backend/internal/service/classify"
	triageservice "github.com/emergency-ai/backend/internal/service/triage"
)

type classifierFunc func(ctx context.Context, req classify.Request) (string, error)

func (f classifierFunc) Classify(ctx context.Context, req classify.Request) (string, error) {
	return f(ctx, req)
}

func setupRouter(fn classifierFunc) (*chi.Mux, *triageservice.Service) {
	var client classify.Client
	if fn != nil {
		client = fn
	}
	svc := triageservice.NewService(client, firstaid.NewCatalog(firstaid.Seed()), 8)
	handler := New(svc, time.Second)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, svc
}

func createSession(t *testing.T, r *chi.Mux) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var body struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
		Turns []struct {
			Role string `json:"role"`
			Text string `json:"text"`
		} `json:"turns"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.Session.ID == "" {
		t.Fatal("expected session id")
	}
	if len(body.Turns) != 1 || body.Turns[0].Role != "assistant" {
		t.Fatalf("expected seeded greeting turn, got %+v", body.Turns)
	}
	return body.Session.ID
}

func TestSubmitEmergencyFlow(t *testing.T) {
	raw := `{"severity":"EMERGENCY","riskScore":92,"advice":"Call an ambulance now.","disclaimer":"This is not a medical diagnosis."}`
	r, _ := setupRouter(func(context.Context, classify.Request) (string, error) {
		return raw, nil
	})
	sessionID := createSession(t, r)

	payload, _ := json.Marshal(map[string]string{"text": "chest pain and pressure"})
	req := httptest.NewRequest(http.MethodPost, "/session/"+sessionID+"/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Reply struct {
			Text string `json:"text"`
		} `json:"reply"`
		FirstAid []struct {
			Key string `json:"key"`
		} `json:"firstAid"`
		Session struct {
			RiskScore       *int `json:"riskScore"`
			EmergencyActive bool `json:"emergencyActive"`
		} `json:"session"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}

	if !body.Session.EmergencyActive {
		t.Fatal("expected emergencyActive=true")
	}
	if body.Session.RiskScore == nil || *body.Session.RiskScore != 92 {
		t.Fatalf("expected riskScore 92, got %v", body.Session.RiskScore)
	}
	if got := body.Reply.Text; len(got) < 19 || got[:19] != "Severity: EMERGENCY" {
		t.Fatalf("unexpected reply text: %q", got)
	}
}

func TestSubmitEmptyTextRejected(t *testing.T) {
	r, _ := setupRouter(func(context.Context, classify.Request) (string, error) {
		t.Fatal("classifier must not be called")
		return "", nil
	})
	sessionID := createSession(t, r)

	payload := []byte(`{"text":"   "}`)
	req := httptest.NewRequest(http.MethodPost, "/session/"+sessionID+"/messages", bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	r, _ := setupRouter(nil)

	payload := []byte(`{"text":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/session/missing/messages", bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestResetClearsEmergency(t *testing.T) {
	r, svc := setupRouter(func(context.Context, classify.Request) (string, error) {
		return `{"severity":"EMERGENCY","riskScore":90,"advice":"Call an ambulance now."}`, nil
	})
	sessionID := createSession(t, r)

	payload := []byte(`{"text":"cannot breathe"}`)
	req := httptest.NewRequest(http.MethodPost, "/session/"+sessionID+"/messages", bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/session/"+sessionID+"/reset", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	session, err := svc.GetSession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if session.EmergencyActive {
		t.Fatal("expected emergency flag cleared after reset")
	}
}

func TestEndSessionThenGetReturns404(t *testing.T) {
	r, _ := setupRouter(nil)
	sessionID := createSession(t, r)

	req := httptest.NewRequest(http.MethodDelete, "/session/"+sessionID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/session/"+sessionID, nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
