package grid

import (
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func mustGrid(t *testing.T, width int, height int) *Grid {
	g, err := NewGrid(width, height)
	require.NoError(t, err)
	return g
}

func TestNewGridRejectsEmptyDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		_, err := NewGrid(dims[0], dims[1])
		assert.True(t, errors.IsInvariantViolation(err), "dims %v", dims)
	}
}

func TestNormalizeColumns(t *testing.T) {
	g := mustGrid(t, 3, 4)
	g.Set(0, 0, 1)
	g.Set(0, 1, 3)
	g.Set(2, 3, 0.25)

	g.NormalizeColumns()

	assert.InDelta(t, 1.0, g.ColumnSum(0), 1e-5)
	assert.InDelta(t, 0.25, g.At(0, 0), 1e-12)
	assert.InDelta(t, 0.75, g.At(0, 1), 1e-12)
	assert.Equal(t, []float64{0, 0, 0, 0}, g.Column(1))
	assert.InDelta(t, 1.0, g.At(2, 3), 1e-12)
}

func TestCombineDoublesOnRepeatedFold(t *testing.T) {
	a := mustGrid(t, 2, 2)
	a.Set(0, 0, 0.5)
	a.Set(0, 1, 0.5)
	a.Set(1, 1, 1)

	once := mustGrid(t, 2, 2)
	require.NoError(t, Combine(once, a))
	twice := mustGrid(t, 2, 2)
	require.NoError(t, Combine(twice, a))
	require.NoError(t, Combine(twice, a))

	for i := range once.Cells {
		assert.Equal(t, 2*once.Cells[i], twice.Cells[i])
	}
}

func TestCombineRejectsMismatchedGrids(t *testing.T) {
	err := Combine(mustGrid(t, 2, 2), mustGrid(t, 3, 2))
	assert.True(t, errors.IsInvariantViolation(err))
}

func TestChecksum(t *testing.T) {
	a := mustGrid(t, 2, 3)
	a.Set(1, 2, 0.5)
	b := a.Clone()
	assert.Equal(t, a.Checksum(), b.Checksum())
	b.Add(1, 2, 0.5)
	assert.NotEqual(t, a.Checksum(), b.Checksum())
	assert.Equal(t, 1.0, b.Max())
}
