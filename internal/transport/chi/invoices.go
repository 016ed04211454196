package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
	invoiceuc "github.com/kailas-cloud/searchdeck/internal/usecase/invoice"
)

// createInvoice handles POST /v1/invoices.
func (s *Server) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string `json:"id"`
		Customer    string `json:"customer"`
		Email       string `json:"email"`
		AmountCents int64  `json:"amount_cents"`
		Status      string `json:"status"`
		Date        string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeValidationFailed, "date must be YYYY-MM-DD")
			return
		}
	}

	inv, err := s.invoices.Create(r.Context(), invoiceuc.CreateParams{
		ID:          req.ID,
		Customer:    req.Customer,
		Email:       req.Email,
		AmountCents: req.AmountCents,
		Status:      dominv.Status(req.Status),
		Date:        date,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, invoiceToResponse(inv))
}

// getInvoice handles GET /v1/invoices/{id}.
func (s *Server) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := s.invoices.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoiceToResponse(inv))
}

// deleteInvoice handles DELETE /v1/invoices/{id}.
func (s *Server) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := s.invoices.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// invoiceStats handles GET /v1/invoices.
func (s *Server) invoiceStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.invoices.Count(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total_items": count})
}
