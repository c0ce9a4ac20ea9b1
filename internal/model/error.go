package model

import "fmt"

// Standard error codes for API responses
const (
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeCustomerNotFound = "CUSTOMER_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-logic error with a stable code.
type DomainError struct {
	Code    string
	Message string
}

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
	ErrCustomerNotFound = NewDomainError(ErrCodeCustomerNotFound, "Customer not found")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "Product not found")
)

// ValidationError reports a missing or empty required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// NewValidationError creates a validation error for the given field.
func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field}
}
