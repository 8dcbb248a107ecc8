package models

import "errors"

// DomainError carries a stable machine code alongside the human-readable
// message returned to clients.
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

// Error codes shared across controllers
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeProtectedAdmin = "PROTECTED_ADMIN"
	CodeUpstream       = "UPSTREAM_ERROR"
	CodeDatabase       = "DATABASE_ERROR"
)

// Common domain errors
var (
	ErrOrderNotFound   = NewDomainError(CodeNotFound, "Order not found.")
	ErrUserNotFound    = NewDomainError(CodeNotFound, "User not found.")
	ErrProductNotFound = NewDomainError(CodeNotFound, "Product not found.")
	ErrProtectedAdmin  = NewDomainError(CodeProtectedAdmin, "Cannot modify protected admin.")
)

// ValidationError builds a VALIDATION_ERROR with a specific message
func ValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// UpstreamError builds an UPSTREAM_ERROR with a specific message
func UpstreamError(message string) *DomainError {
	return NewDomainError(CodeUpstream, message)
}

// AsDomainError unwraps err into a DomainError if it is one
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
