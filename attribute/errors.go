package attribute

import (
	"errors"

	"github.com/hupe1980/pointmerge/points"
)

var (
	// ErrSchemaMismatch is returned when two sets (or a set and a record) do
	// not share names, element types and component counts.
	ErrSchemaMismatch = errors.New("attribute schema mismatch")

	// ErrDuplicateName is returned when a set already holds an array of the
	// same name.
	ErrDuplicateName = errors.New("duplicate attribute name")

	// ErrTupleOutOfRange is returned when reading a tuple that was never
	// allocated.
	ErrTupleOutOfRange = errors.New("attribute tuple out of range")

	// ErrCapacityExceeded is returned when a concurrent write addresses a
	// tuple beyond the reserved capacity. It is the same value as
	// points.ErrCapacityExceeded.
	ErrCapacityExceeded = points.ErrCapacityExceeded
)
