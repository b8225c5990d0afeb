package immigrow

import "github.com/immigrow/catalog/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound     = domain.ErrNotFound
	ErrInvalidQuery = domain.ErrInvalidQuery
)
