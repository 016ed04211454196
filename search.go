package searchdeck

import (
	"context"
	"fmt"

	searchuc "github.com/kailas-cloud/searchdeck/internal/usecase/search"
)

// ResultPage is one page of filtered invoices.
type ResultPage struct {
	Items      []Invoice
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// SearchService filters and paginates invoices.
type SearchService struct {
	svc *searchuc.Service
}

// Query returns the invoices matching term, newest first. An empty term
// matches everything; page and pageSize fall back to sane defaults when
// zero or out of range.
func (s *SearchService) Query(ctx context.Context, term string, page, pageSize int) (ResultPage, error) {
	result, err := s.svc.Search(ctx, term, page, pageSize)
	if err != nil {
		return ResultPage{}, fmt.Errorf("search: %w", err)
	}

	items := make([]Invoice, len(result.Items))
	for i, inv := range result.Items {
		items[i] = fromDomainInvoice(inv)
	}
	return ResultPage{
		Items:      items,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	}, nil
}
