package chi

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
	searchuc "github.com/kailas-cloud/searchdeck/internal/usecase/search"
)

type invoiceResponse struct {
	ID          string `json:"id"`
	Customer    string `json:"customer"`
	Email       string `json:"email"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

type pageResponse struct {
	Items      []invoiceResponse `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

func invoiceToResponse(inv dominv.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:          inv.ID(),
		Customer:    inv.Customer(),
		Email:       inv.Email(),
		AmountCents: inv.AmountCents(),
		Amount:      inv.Amount(),
		Status:      string(inv.Status()),
		Date:        inv.Date().Format("2006-01-02"),
	}
}

func pageToResponse(p searchuc.Page) pageResponse {
	items := make([]invoiceResponse, len(p.Items))
	for i, inv := range p.Items {
		items[i] = invoiceToResponse(inv)
	}
	return pageResponse{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// searchInvoices handles GET /v1/search. Stateless: the query parameters are
// the whole search state, same shape a session's canonical location has.
func (s *Server) searchInvoices(w http.ResponseWriter, r *http.Request) {
	var params struct {
		Query    *string
		Page     *int
		PageSize *int
	}
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "query", q, &params.Query); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "invalid query parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &params.Page); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "page must be an integer")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "page_size", q, &params.PageSize); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "page_size must be an integer")
		return
	}

	term := ""
	if params.Query != nil {
		term = *params.Query
	}

	result, err := s.search.Search(r.Context(), term, derefInt(params.Page), derefInt(params.PageSize))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.recordTerm(r.Context(), term)
	writeJSON(w, http.StatusOK, pageToResponse(result))
}

// suggestTerms handles GET /v1/search/suggest.
func (s *Server) suggestTerms(w http.ResponseWriter, r *http.Request) {
	var params struct {
		Query *string
		Limit *int
	}
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "query", q, &params.Query); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "invalid query parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "limit must be an integer")
		return
	}

	if params.Query == nil || *params.Query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query is required")
		return
	}

	suggestions, err := s.suggest.Suggest(r.Context(), *params.Query, derefInt(params.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	type suggestionResponse struct {
		Term  string  `json:"term"`
		Score float64 `json:"score"`
	}
	items := make([]suggestionResponse, len(suggestions))
	for i, sg := range suggestions {
		items[i] = suggestionResponse{Term: sg.Term, Score: sg.Score}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
