package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	contactmodel "github.com/emergency-ai/backend/internal/model/contact"
	"github.com/emergency-ai/backend/pkg/utils"
)

// Handler exposes emergency contacts and the medical card.
type Handler struct {
	store *contactmodel.Store
}

// New creates the contact handler.
func New(store *contactmodel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the contact and medical-card routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/contacts", h.handleList)
	r.Post("/contacts", h.handleAdd)
	r.Delete("/contacts/{contactID}", h.handleRemove)
	r.Get("/medical-card", h.handleGetCard)
	r.Put("/medical-card", h.handlePutCard)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"contacts": h.store.List()})
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	added, err := h.store.Add(payload.Name, payload.Phone)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, added)
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	if err := h.store.Remove(contactID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, contactmodel.ErrContactNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) handleGetCard(w http.ResponseWriter, r *http.Request) {
	card, ok := h.store.MedicalCard()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	utils.RespondJSON(w, http.StatusOK, card)
}

func (h *Handler) handlePutCard(w http.ResponseWriter, r *http.Request) {
	var card contactmodel.MedicalCard
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.store.SetMedicalCard(card)
	utils.RespondJSON(w, http.StatusOK, card)
}
