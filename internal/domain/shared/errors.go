package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation          = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrQuoteExpired        = NewDomainError("QUOTE_EXPIRED", "Quote validity period has elapsed")
)

// NewInsufficientStockError reports a failed stock reservation for a product.
// The product ID is embedded so callers can render an actionable message.
func NewInsufficientStockError(productID string, requested int64) *DomainError {
	return NewDomainError(
		"INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock for product %s: requested %d", productID, requested),
	)
}

// NewInvalidTransitionError reports an unreachable status transition.
func NewInvalidTransitionError(from, to string) *DomainError {
	return NewDomainError(
		"INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition from %s to %s", from, to),
	)
}
