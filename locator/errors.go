package locator

import (
	"errors"

	"github.com/hupe1980/pointmerge/attribute"
	"github.com/hupe1980/pointmerge/points"
)

var (
	// ErrLayoutMismatch is returned when merging locators whose bounds or
	// divisions differ.
	ErrLayoutMismatch = errors.New("locator layout mismatch")

	// ErrBucketOutOfRange is returned for bucket indices outside [0, NumBuckets).
	ErrBucketOutOfRange = errors.New("bucket out of range")

	// ErrRemapTooSmall is returned when an IDRemap cannot hold every source id.
	ErrRemapTooSmall = errors.New("id remap too small")

	// ErrCapacityExceeded is returned when the destination was not reserved
	// large enough for the merged points.
	ErrCapacityExceeded = points.ErrCapacityExceeded

	// ErrSchemaMismatch is returned when attribute sets are incompatible.
	ErrSchemaMismatch = attribute.ErrSchemaMismatch

	// ErrFinalized is returned when mutating a finalized locator.
	ErrFinalized = errors.New("locator is finalized")

	// ErrNotInitialized is returned when merging into a locator that has not
	// gone through InitializeMerge.
	ErrNotInitialized = errors.New("locator not initialized for merge")

	// ErrMergeInProgress is returned when inserting into a locator that is
	// being merged into.
	ErrMergeInProgress = errors.New("merge in progress")

	// ErrInvalidTolerance is returned for negative, NaN or infinite
	// tolerances and for positive tolerances too small to square.
	ErrInvalidTolerance = errors.New("invalid tolerance")

	// ErrInvariantViolated is returned by Validate.
	ErrInvariantViolated = errors.New("locator invariant violated")
)
