// Package chi is the HTTP transport: hand-written handlers on a chi router.
package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdeck/internal/domain"
	"github.com/kailas-cloud/searchdeck/internal/querystate"
	healthuc "github.com/kailas-cloud/searchdeck/internal/usecase/health"
	invoiceuc "github.com/kailas-cloud/searchdeck/internal/usecase/invoice"
	searchuc "github.com/kailas-cloud/searchdeck/internal/usecase/search"
	sessionuc "github.com/kailas-cloud/searchdeck/internal/usecase/session"
	suggestuc "github.com/kailas-cloud/searchdeck/internal/usecase/suggest"
)

// Server holds the services behind the HTTP API.
type Server struct {
	sessions      *sessionuc.Manager
	search        *searchuc.Service
	invoices      *invoiceuc.Service
	suggest       *suggestuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	sessions *sessionuc.Manager,
	search *searchuc.Service,
	invoices *invoiceuc.Service,
	suggest *suggestuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		sessions: sessions,
		search:   search,
		invoices: invoices,
		suggest:  suggest,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, CodeSessionNotFound),
		sentinelHandler(domain.ErrInvoiceNotFound, http.StatusNotFound, CodeInvoiceNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists),
		sentinelHandler(domain.ErrSuggestDisabled, http.StatusNotImplemented, CodeSuggestDisabled),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingError),
		sentinelHandler(querystate.ErrInvalidPage, http.StatusBadRequest, CodeInvalidPage),
		sentinelHandler(querystate.ErrClosed, http.StatusGone, CodeSessionClosed),
	}
	return s
}

// Routes mounts all API handlers on a fresh router. Middleware (auth,
// logging, metrics, recovery) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/v1", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.createSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getSession)
				r.Delete("/", s.deleteSession)
				r.Post("/input", s.sessionInput)
				r.Post("/page", s.sessionPage)
				r.Get("/results", s.sessionResults)
			})
		})

		r.Get("/search", s.searchInvoices)
		r.Get("/search/suggest", s.suggestTerms)

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", s.invoiceStats)
			r.Post("/", s.createInvoice)
			r.Get("/{id}", s.getInvoice)
			r.Delete("/{id}", s.deleteInvoice)
		})
	})

	r.Get("/health", s.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	st := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if !st.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, st)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
