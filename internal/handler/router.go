package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	analyzeHandler "github.com/emergency-ai/backend/internal/handler/analyze"
	contactHandler "github.com/emergency-ai/backend/internal/handler/contact"
	firstaidHandler "github.com/emergency-ai/backend/internal/handler/firstaid"
	triageHandler "github.com/emergency-ai/backend/internal/handler/triage"
	middlewarePkg "github.com/emergency-ai/backend/internal/middleware"
	"github.com/emergency-ai/backend/pkg/utils"
)

// Deps bundles everything the router wires to routes.
type Deps struct {
	Triage   *triageHandler.Handler
	Analyze  *analyzeHandler.Handler
	Contacts *contactHandler.Handler
	FirstAid *firstaidHandler.Handler
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})

		deps.Triage.RegisterRoutes(api)
		deps.Analyze.RegisterRoutes(api)
		deps.Contacts.RegisterRoutes(api)
		deps.FirstAid.RegisterRoutes(api)
	})

	return r
}
