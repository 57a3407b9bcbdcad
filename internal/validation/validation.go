// Package validation checks query-surface parameters before a search
// reaches the pipeline. Invalid input is rejected up front; nothing past
// this boundary re-validates.
package validation

import (
	"fmt"
	"strings"

	"github.com/vidyarthi-io/scholarseek/internal/errors"
)

// Query and result-count bounds for the search surface.
const (
	MaxQueryLength = 500
	MinTopK        = 1
	MaxTopK        = 50
)

// Query trims and validates a search query. Browse mode (deliberately
// empty query) bypasses this and is requested explicitly, so an empty or
// whitespace-only query here is an error.
func Query(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", errors.ValidationError(errors.ErrCodeQueryEmpty,
			"query must not be empty")
	}
	if len(trimmed) > MaxQueryLength {
		return "", errors.ValidationError(errors.ErrCodeQueryTooLong,
			fmt.Sprintf("query exceeds %d characters", MaxQueryLength)).
			WithDetail("length", fmt.Sprintf("%d", len(trimmed)))
	}
	return trimmed, nil
}

// TopK validates the requested result count.
func TopK(k int) error {
	if k < MinTopK || k > MaxTopK {
		return errors.ValidationError(errors.ErrCodeInvalidTopK,
			fmt.Sprintf("top_k must be in [%d,%d]", MinTopK, MaxTopK)).
			WithDetail("top_k", fmt.Sprintf("%d", k))
	}
	return nil
}
