package searchdeck

import (
	"github.com/kailas-cloud/searchdeck/internal/domain"
	"github.com/kailas-cloud/searchdeck/internal/querystate"
)

// Sentinel errors returned by the SDK. Test with errors.Is.
var (
	// ErrInvoiceNotFound signals a missing invoice.
	ErrInvoiceNotFound = domain.ErrInvoiceNotFound
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = domain.ErrAlreadyExists
	// ErrValidation signals rejected input.
	ErrValidation = domain.ErrValidation
	// ErrSuggestDisabled signals that no embedder was configured.
	ErrSuggestDisabled = domain.ErrSuggestDisabled
	// ErrInvalidPage signals a page selection below 1.
	ErrInvalidPage = querystate.ErrInvalidPage
	// ErrSessionClosed signals an operation on a closed query session.
	ErrSessionClosed = querystate.ErrClosed
)
