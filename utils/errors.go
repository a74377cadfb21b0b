package utils

import (
	"fmt"

	"auction-hub/internal/biddingerrors"
)

// ServiceError wraps err at a service boundary. Classified errors pass through
// with op as context. Anything else is logged and wrapped with ErrStoreFailure,
// so callers only ever show the generic reason.
func ServiceError(op string, err error) error {
	if biddingerrors.KindOf(err) != biddingerrors.KindStoreFailure {
		return fmt.Errorf("service: %s: %w", op, err)
	}
	Error("store failure", map[string]any{"op": op, "error": err.Error()})
	return fmt.Errorf("service: %s: %w: %w", op, biddingerrors.ErrStoreFailure, err)
}
