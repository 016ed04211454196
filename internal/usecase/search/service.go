// Package search executes term-filtered, paginated invoice searches driven
// by a view's canonical location.
package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
)

// Pagination limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxTermLength bounds the search term; longer input is truncated
	// rather than rejected since it arrives keystroke by keystroke.
	MaxTermLength = 256
)

// Page is one window of search results.
type Page struct {
	Items      []dominv.Invoice
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Service handles invoice search with term filtering and pagination.
type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{
		repo:            repo,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
}

// WithPagination overrides the default and maximum page sizes.
func (s *Service) WithPagination(defaultSize, maxSize int) *Service {
	if defaultSize > 0 {
		s.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// Search runs a term-filtered search and returns the requested page.
// Out-of-range page numbers and sizes are clamped, not rejected: the values
// come straight from a URL that anyone may have edited.
func (s *Service) Search(ctx context.Context, term string, page, pageSize int) (Page, error) {
	term = strings.TrimSpace(term)
	if len(term) > MaxTermLength {
		cut := MaxTermLength
		for cut > 0 && !utf8.RuneStart(term[cut]) {
			cut--
		}
		term = term[:cut]
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	offset := (page - 1) * pageSize
	items, total, err := s.repo.Find(ctx, term, offset, pageSize)
	if err != nil {
		return Page{}, fmt.Errorf("find invoices: %w", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
