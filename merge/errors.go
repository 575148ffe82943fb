package merge

import (
	"errors"

	"github.com/hupe1980/pointmerge/internal/resource"
)

var (
	// ErrMemoryLimitExceeded is returned when the destination would not fit
	// in the configured memory budget.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

	// ErrNilLocator is returned when dst or a source is nil.
	ErrNilLocator = errors.New("nil locator")

	// ErrValidation wraps the error of a failed post-merge validation.
	ErrValidation = errors.New("merge validation failed")
)
