package di

import (
	"net/http"
	"time"

	"claimgraph-backend/internal/config"
	"claimgraph-backend/internal/handlers"
	appMiddleware "claimgraph-backend/internal/middleware"
	"claimgraph-backend/pkg/api"
	"claimgraph-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

// setupRouter builds the chi router with the full middleware chain and all
// API routes mounted.
func setupRouter(
	cfg *config.Config,
	caseHandler *handlers.CaseHandler,
	eligibilityHandler *handlers.EligibilityHandler,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(appMiddleware.RequestID)
	r.Use(appMiddleware.Recovery(logger))
	r.Use(appMiddleware.Timeout(requestTimeout, logger))
	if cfg.Features.EnableMetrics {
		r.Use(metrics.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	if cfg.Features.EnableMetrics {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Features.EnableCircuitBreaker {
			r.Use(appMiddleware.CircuitBreaker(
				appMiddleware.DefaultCircuitBreakerConfig("api"), logger))
		}

		r.Route("/cases", func(r chi.Router) {
			r.Post("/", caseHandler.CreateCase)

			r.Route("/{caseId}", func(r chi.Router) {
				r.Delete("/", caseHandler.DeleteCase)
				r.Get("/graph", caseHandler.GetGraph)
				r.Post("/migrate", caseHandler.MigrateCase)

				r.Post("/nodes", caseHandler.AddNode)
				r.Put("/nodes/{nodeId}", caseHandler.UpdateNode)
				r.Delete("/nodes/{nodeId}", caseHandler.RemoveNode)

				r.Post("/edges", caseHandler.AddEdge)
				r.Delete("/edges/{edgeId}", caseHandler.RemoveEdge)
				r.Post("/links", caseHandler.LinkEvidence)

				r.Get("/readiness", caseHandler.Readiness)
				r.Get("/score", caseHandler.Score)
				r.Get("/health", caseHandler.Health)
			})
		})

		r.Post("/claims/score", caseHandler.ScoreLegacy)
		r.Post("/eligibility", eligibilityHandler.Check)
	})

	return r
}
