package merge

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/pointmerge/locator"
)

// Verify checks a finished merge. The destination must pass
// locator.Validate, the remap of every source must assign each of its ids,
// and together the remaps must reach every destination id. Failures wrap
// ErrValidation.
func Verify(res *Result, sources []*locator.Locator) error {
	if err := res.Dst.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if len(res.Remaps) != len(sources) {
		return fmt.Errorf("%w: %d remaps for %d sources", ErrValidation, len(res.Remaps), len(sources))
	}
	reached := bitset.New(uint(max(res.Dst.NumPoints(), 0)))
	for i, src := range sources {
		reached.InPlaceUnion(res.Remaps[i].Targets())
		missing := res.Remaps[i].Missing(src.NumPoints())
		if missing.None() {
			continue
		}
		first, _ := missing.NextSet(0)
		return fmt.Errorf("%w: source %d: %d ids unmapped, first %d",
			ErrValidation, i, missing.Count(), first)
	}
	// Every destination id originates from some source point.
	n := uint(max(res.Dst.NumPoints(), 0))
	if _, beyond := reached.NextSet(n); beyond || reached.Count() != n {
		return fmt.Errorf("%w: remaps reach %d of %d destination ids", ErrValidation, reached.Count(), n)
	}
	return nil
}
