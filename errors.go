package pointmerge

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pointmerge/attribute"
	"github.com/hupe1980/pointmerge/internal/resource"
	"github.com/hupe1980/pointmerge/locator"
	"github.com/hupe1980/pointmerge/merge"
)

var (
	// ErrNoSources is returned when Merge is called without sources.
	ErrNoSources = errors.New("no sources to merge")

	// ErrLayoutMismatch is returned when sources do not share one grid.
	ErrLayoutMismatch = errors.New("layout mismatch")

	// ErrSchemaMismatch is returned when sources carry incompatible
	// attribute schemas.
	ErrSchemaMismatch = errors.New("attribute schema mismatch")

	// ErrCapacityExceeded is returned when the destination capacity is too
	// small for the merged points.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrMemoryLimitExceeded is returned when the destination does not fit
	// in the memory limit.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

	// ErrInvalidInput is returned for nil sources and sources that are
	// being merged into.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed is returned when the merged locator violates an
	// invariant.
	ErrValidationFailed = errors.New("validation failed")
)

// translateError maps errors of the internal packages onto the sentinels of
// this package. The original error stays reachable through errors.Is.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, locator.ErrLayoutMismatch):
		return fmt.Errorf("%w: %w", ErrLayoutMismatch, err)
	case errors.Is(err, attribute.ErrSchemaMismatch):
		return fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	case errors.Is(err, locator.ErrCapacityExceeded):
		return fmt.Errorf("%w: %w", ErrCapacityExceeded, err)
	case errors.Is(err, resource.ErrMemoryLimitExceeded):
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	case errors.Is(err, locator.ErrInvariantViolated), errors.Is(err, merge.ErrValidation):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	case errors.Is(err, merge.ErrNilLocator),
		errors.Is(err, locator.ErrMergeInProgress),
		errors.Is(err, locator.ErrFinalized):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
