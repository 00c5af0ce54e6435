package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tenderbook/internal/http/export"
	"github.com/MrJamesThe3rd/tenderbook/internal/http/importcsv"
	"github.com/MrJamesThe3rd/tenderbook/internal/http/respond"
	"github.com/MrJamesThe3rd/tenderbook/internal/http/summary"
	"github.com/MrJamesThe3rd/tenderbook/internal/http/tender"
	"github.com/MrJamesThe3rd/tenderbook/internal/http/transaction"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
	"github.com/MrJamesThe3rd/tenderbook/internal/metrics"
)

// Handlers groups the versioned API handlers mounted by New.
type Handlers struct {
	Tenders      *tender.Handler
	Transactions *transaction.Handler
	Import       *importcsv.Handler
	Summary      *summary.Handler
	Export       *export.Handler
}

func New(allowedOrigins []string, m *metrics.Metrics, ledgerSvc *ledger.Service, v1 Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(m.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", healthz(ledgerSvc))
	router.Method(http.MethodGet, "/metrics", m.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/tenders", func(r chi.Router) {
			r.Route("/{id}/transactions/import", v1.Import.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				v1.Tenders.Routes(r)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Transactions.Routes(r)
		})

		r.Route("/summary", v1.Summary.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Export.Routes(r)
		})
	})

	return router
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// healthz reports degraded while the ledger runs on an empty fallback after a
// failed load.
func healthz(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if err := svc.LoadError(); err != nil {
			respond.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Error: err.Error()})
			return
		}

		respond.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
