package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	sessionHandler "github.com/Opirel/finalProj-dnd-backend/internal/handler/session"
	middlewarePkg "github.com/Opirel/finalProj-dnd-backend/internal/middleware"
	"github.com/Opirel/finalProj-dnd-backend/internal/observability"
	sessionService "github.com/Opirel/finalProj-dnd-backend/internal/service/session"
	"github.com/Opirel/finalProj-dnd-backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(sessionSvc *sessionService.Service, metrics *observability.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.PathFilter)
	r.Use(middlewarePkg.CORS)
	if metrics != nil {
		r.Use(middlewarePkg.Metrics(metrics))
	}

	sessionHandler.New(sessionSvc).RegisterRoutes(r)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", observability.MetricsHandler())

	return r
}
