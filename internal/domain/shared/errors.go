package shared

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

// Error codes shared across the application
const (
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInventoryUpdate   = "INVENTORY_UPDATE_FAILED"
	CodePersistence       = "PERSISTENCE_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
)

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists     = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrValidation        = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidTransition = NewDomainError(CodeInvalidTransition, "Status transition not allowed")
	ErrInventoryUpdate   = NewDomainError(CodeInventoryUpdate, "Stock adjustment failed")
	ErrPersistence       = NewDomainError(CodePersistence, "Write to storage failed")
	ErrUnauthorized      = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden         = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
)

// CodeOf returns the domain error code for err, or PERSISTENCE_ERROR for
// errors that did not originate in the domain layer.
func CodeOf(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return CodePersistence
}
