package firstaid

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	firstaidmodel "github.com/emergency-ai/backend/internal/model/firstaid"
	"github.com/emergency-ai/backend/pkg/utils"
)

// Handler serves the static first-aid catalog.
type Handler struct {
	catalog *firstaidmodel.Catalog
}

// New creates the first-aid handler.
func New(catalog *firstaidmodel.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes registers the catalog route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/first-aid", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"guides": h.catalog.List()})
}
