package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdeck/internal/metrics"
	"github.com/kailas-cloud/searchdeck/internal/querystate"
	sessionuc "github.com/kailas-cloud/searchdeck/internal/usecase/session"
)

type sessionResponse struct {
	ID           string `json:"id"`
	Location     string `json:"location"`
	Path         string `json:"path"`
	Query        string `json:"query,omitempty"`
	Page         int    `json:"page,omitempty"`
	DisplayValue string `json:"display_value"`
}

func sessionToResponse(sess *sessionuc.Session) sessionResponse {
	loc := sess.Location()
	resp := sessionResponse{
		ID:           sess.ID(),
		Location:     loc.String(),
		Path:         loc.Path,
		Query:        loc.Params.Get(querystate.KeyQuery),
		DisplayValue: sess.Controller().DisplayValue(),
	}
	if n, err := strconv.Atoi(loc.Params.Get(querystate.KeyPage)); err == nil {
		resp.Page = n
	}
	return resp
}

// createSession handles POST /v1/sessions.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path  string `json:"path"`
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess := s.sessions.Open(req.Path, req.Query)
	writeJSON(w, http.StatusCreated, sessionToResponse(sess))
}

// getSession handles GET /v1/sessions/{id}.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// sessionInput handles POST /v1/sessions/{id}/input. The keystroke is
// recorded and debounced; 202 says accepted, not committed.
func (s *Server) sessionInput(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	metrics.KeystrokesTotal.Inc()
	sess.Controller().SetInput(req.Value)

	writeJSON(w, http.StatusAccepted, map[string]string{
		"display_value": sess.Controller().DisplayValue(),
	})
}

// sessionPage handles POST /v1/sessions/{id}/page. Applied immediately.
func (s *Server) sessionPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := sess.Controller().SelectPage(req.Page); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// sessionResults handles GET /v1/sessions/{id}/results. It runs the search
// the session's canonical location describes.
func (s *Server) sessionResults(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var pageSize *int
	if err := runtime.BindQueryParameter("form", true, false, "page_size", r.URL.Query(), &pageSize); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "page_size must be an integer")
		return
	}

	loc := sess.Location()
	term := loc.Params.Get(querystate.KeyQuery)
	page, _ := strconv.Atoi(loc.Params.Get(querystate.KeyPage))

	result, err := s.search.Search(r.Context(), term, page, derefInt(pageSize))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.recordTerm(r.Context(), term)
	writeJSON(w, http.StatusOK, pageToResponse(result))
}

// deleteSession handles DELETE /v1/sessions/{id}. Unmount: any pending
// commit is cancelled before the response is written.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recordTerm stores a searched term for future suggestions without holding
// up the response. Failures are logged and dropped.
func (s *Server) recordTerm(ctx context.Context, term string) {
	if term == "" || !s.suggest.Enabled() {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := s.suggest.Record(ctx, term); err != nil {
			s.logger.Warn("record search term", zap.Error(err))
		}
	}()
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
