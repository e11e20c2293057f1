package triage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	triageservice "github.com/emergency-ai/backend/internal/service/triage"
	"github.com/emergency-ai/backend/pkg/utils"
)

// Handler exposes the triage session lifecycle over HTTP.
type Handler struct {
	svc            *triageservice.Service
	requestTimeout time.Duration
}

// New creates the triage handler. requestTimeout caps each classification
// round-trip; expiry degrades to the safety fallback reply.
func New(svc *triageservice.Service, requestTimeout time.Duration) *Handler {
	return &Handler{svc: svc, requestTimeout: requestTimeout}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Post("/session/{sessionID}/messages", h.handleSubmit)
	r.Post("/session/{sessionID}/reset", h.handleReset)
	r.Delete("/session/{sessionID}", h.handleEndSession)
	r.Get("/session/{sessionID}/events", h.handleEvents)
	r.Get("/session/{sessionID}/watch", h.handleWatch)
}

type sessionResponse struct {
	Session interface{} `json:"session"`
	Turns   interface{} `json:"turns"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	turns, err := h.svc.Transcript(r.Context(), session.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, sessionResponse{Session: session, Turns: turns})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.svc.GetSession(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	turns, err := h.svc.Transcript(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, sessionResponse{Session: session, Turns: turns})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	result, err := h.svc.Submit(ctx, sessionID, payload.Text)
	if err != nil {
		switch {
		case errors.Is(err, triageservice.ErrEmptyMessage):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, triageservice.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.svc.ClearEmergency(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.svc.EndSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}
