package insight

import (
	"github.com/commerce/backend/internal/domain/shared"
)

// ErrInvalidSegment is returned for a segment filter outside all|vip|high|medium|low
var ErrInvalidSegment = shared.NewDomainError("INVALID_SEGMENT", "segment must be one of: all, vip, high, medium, low")

// RetrievalError reports a customer or order read that could not complete
type RetrievalError = shared.RetrievalError

// NewRetrievalError wraps a store error for the named read
func NewRetrievalError(op string, err error) *RetrievalError {
	return shared.NewRetrievalError(op, err)
}
