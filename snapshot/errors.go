package snapshot

import "errors"

var (
	// ErrBadMagic is returned when the data does not start with the snapshot
	// magic.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrUnsupportedVersion is returned for format versions this package
	// cannot read.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrCorrupt is returned when the data is truncated, fails its checksum
	// or describes an invalid locator.
	ErrCorrupt = errors.New("snapshot: corrupt data")

	// ErrNotFinalized is returned when encoding a locator that is still being
	// populated or merged.
	ErrNotFinalized = errors.New("snapshot: locator not finalized")
)
