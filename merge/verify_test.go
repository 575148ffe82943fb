package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pointmerge/locator"
)

func TestVerify(t *testing.T) {
	g := testGrid()
	srcs := makeSources(t, g, 3, 50)

	res, err := New(WithValidation(true)).Run(t.Context(), newDst(t, srcs[0]), srcs)
	require.NoError(t, err)
	require.NoError(t, Verify(res, srcs))

	t.Run("unmapped source ids", func(t *testing.T) {
		remaps := []*locator.IDRemap{res.Remaps[0], locator.NewIDRemap(srcs[1].NumPoints()), res.Remaps[2]}
		err := Verify(&Result{Dst: res.Dst, Remaps: remaps}, srcs)
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "source 1: 50 ids unmapped, first 0")
	})

	t.Run("remap count", func(t *testing.T) {
		err := Verify(&Result{Dst: res.Dst, Remaps: res.Remaps[:2]}, srcs)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("destination ids without source", func(t *testing.T) {
		// Source 2 contributes points nothing else maps to.
		err := Verify(&Result{Dst: res.Dst, Remaps: res.Remaps[:2]}, srcs[:2])
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "remaps reach 50 of 100 destination ids")
	})
}
