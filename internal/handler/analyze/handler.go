package analyze

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/emergency-ai/backend/internal/service/classify"
	"github.com/emergency-ai/backend/pkg/utils"
)

// Handler serves the stateless /analyze endpoint: the caller supplies the
// conversation history and receives the model's raw text. Session state,
// interpretation, and escalation stay client-side on this path.
type Handler struct {
	client         classify.Client
	historyLimit   int
	requestTimeout time.Duration
}

// New creates the analyze handler. client may be nil when no backend is
// configured; requests then fail with a 500 as the original contract
// documents.
func New(client classify.Client, historyLimit int, requestTimeout time.Duration) *Handler {
	return &Handler{client: client, historyLimit: historyLimit, requestTimeout: requestTimeout}
}

// RegisterRoutes registers the analyze route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.handleAnalyze)
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Messages []struct {
			Role    interface{} `json:"role"`
			Content interface{} `json:"content"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "messages is required.")
		return
	}

	// Keep only well-formed {role, content} string pairs, then the
	// trailing window.
	cleaned := make([]classify.Message, 0, len(payload.Messages))
	for _, msg := range payload.Messages {
		role, roleOK := msg.Role.(string)
		content, contentOK := msg.Content.(string)
		if !roleOK || !contentOK {
			continue
		}
		cleaned = append(cleaned, classify.Message{Role: role, Content: content})
	}
	if len(cleaned) > h.historyLimit {
		cleaned = cleaned[len(cleaned)-h.historyLimit:]
	}

	if len(cleaned) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "messages is required.")
		return
	}

	if h.client == nil {
		utils.RespondError(w, http.StatusInternalServerError, "model credentials are not configured.")
		return
	}

	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	text, err := h.client.Classify(ctx, classify.Request{
		Instructions: classify.Instructions,
		History:      cleaned,
	})
	if err != nil {
		log.Printf("[analyze] classification failed: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "model request failed.", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"text": text})
}
