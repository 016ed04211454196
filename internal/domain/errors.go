package domain

import "errors"

var (
	// ErrInvoiceNotFound signals a missing invoice.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrSessionNotFound signals a missing or expired live-search session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation signals rejected input.
	ErrValidation = errors.New("validation failed")
	// ErrSuggestDisabled signals that query suggestions are not configured.
	ErrSuggestDisabled = errors.New("query suggestions are not configured")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
