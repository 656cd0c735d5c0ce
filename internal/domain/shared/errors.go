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

// Common domain errors. ErrNotFound deliberately covers both "absent" and
// "owned by someone else" so existence never leaks across owners.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrMutationForbidden   = NewDomainError("MUTATION_FORBIDDEN", "Sale can only be modified while in draft state")
	ErrStateConflict       = NewDomainError("STATE_CONFLICT", "Sale state changed concurrently, retry the operation")
	ErrReconciliation      = NewDomainError("RECONCILIATION_FAILED", "Link reconciliation failed and was rolled back")
	ErrConstraintViolation = NewDomainError("CONSTRAINT_VIOLATION", "Operation violates a uniqueness or reference constraint")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
)
