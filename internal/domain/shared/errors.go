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

// RetrievalError reports that a backing store could not be read.
// Op names the read that failed (e.g. "list customers").
type RetrievalError struct {
	Op  string
	Err error
}

// NewRetrievalError wraps err as a RetrievalError for the given operation
func NewRetrievalError(op string, err error) *RetrievalError {
	return &RetrievalError{Op: op, Err: err}
}

// Error implements the error interface
func (e *RetrievalError) Error() string {
	if e.Err == nil {
		return e.Op + ": retrieval failed"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying store error
func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Cause returns the message of the underlying error, or the op when there is none
func (e *RetrievalError) Cause() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Err.Error()
}
