package raster

import (
	"github.com/kadaan/linedensity/lib/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
	"testing"
)

func newGrid(t *testing.T, width int, height int) *grid.Grid {
	g, err := grid.NewGrid(width, height)
	require.NoError(t, err)
	return g
}

func drawPolyline(t *testing.T, kind Kind, g *grid.Grid, pts ...vec.Vec2) {
	r, err := NewRasterizer(kind)
	require.NoError(t, err)
	r.DrawPolyline(g, pts)
}

func TestBresenhamSegments(t *testing.T) {
	tests := []struct {
		name     string
		pts      []vec.Vec2
		expected map[[2]int]float64
	}{
		{
			name:     "horizontal",
			pts:      []vec.Vec2{{X: 0, Y: 1}, {X: 3, Y: 1}},
			expected: map[[2]int]float64{{0, 1}: 1, {1, 1}: 1, {2, 1}: 1, {3, 1}: 1},
		},
		{
			name:     "vertical",
			pts:      []vec.Vec2{{X: 1, Y: 0}, {X: 1, Y: 2}},
			expected: map[[2]int]float64{{1, 0}: 1, {1, 1}: 1, {1, 2}: 1},
		},
		{
			name:     "diagonal",
			pts:      []vec.Vec2{{X: 0, Y: 0}, {X: 3, Y: 3}},
			expected: map[[2]int]float64{{0, 0}: 1, {1, 1}: 1, {2, 2}: 1, {3, 3}: 1},
		},
		{
			name:     "reversed",
			pts:      []vec.Vec2{{X: 3, Y: 3}, {X: 0, Y: 0}},
			expected: map[[2]int]float64{{0, 0}: 1, {1, 1}: 1, {2, 2}: 1, {3, 3}: 1},
		},
		{
			name:     "shared endpoint counted per segment",
			pts:      []vec.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
			expected: map[[2]int]float64{{0, 1}: 1, {1, 1}: 2, {2, 1}: 1},
		},
		{
			name:     "clipped outside grid",
			pts:      []vec.Vec2{{X: 2, Y: 4}, {X: 5, Y: 4}},
			expected: map[[2]int]float64{{2, 4}: 1, {3, 4}: 1},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(t, 4, 5)
			drawPolyline(t, Bresenham, g, tc.pts...)
			for x := 0; x < g.Width; x++ {
				for y := 0; y < g.Height; y++ {
					assert.Equal(t, tc.expected[[2]int{x, y}], g.At(x, y), "pixel (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestBresenhamIsDeterministic(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 3.7}, {X: 0.5, Y: 1.2}, {X: 1, Y: 9.9}, {X: 1.5, Y: 4.4}, {X: 7.9, Y: 0.1}}
	a := newGrid(t, 8, 10)
	b := newGrid(t, 8, 10)
	drawPolyline(t, Bresenham, a, pts...)
	drawPolyline(t, Bresenham, b, pts...)
	assert.Equal(t, a.Cells, b.Cells)
}

func TestAntiAliasedHorizontalCoverage(t *testing.T) {
	g := newGrid(t, 5, 4)
	drawPolyline(t, AntiAliased, g, vec.Vec2{X: 0.5, Y: 1.5}, vec.Vec2{X: 3.5, Y: 1.5})
	for x := 0; x < 4; x++ {
		assert.InDelta(t, 1.0, g.At(x, 1), 1.0/255, "pixel (%d,1)", x)
		assert.InDelta(t, 1.0, g.ColumnSum(x), 2.0/255)
	}
	assert.Equal(t, 0.0, g.ColumnSum(4))
}

func TestAntiAliasedSkipsSegmentsOutsideGrid(t *testing.T) {
	g := newGrid(t, 3, 3)
	drawPolyline(t, AntiAliased, g, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 20, Y: 10})
	assert.Equal(t, 0.0, g.Max())
}

func TestKindValue(t *testing.T) {
	var k Kind
	require.NoError(t, k.Set("AntiAliased"))
	assert.Equal(t, AntiAliased, k)
	assert.Error(t, k.Set("wu"))
	_, err := NewRasterizer("wu")
	assert.Error(t, err)
}

func TestTopEdgeBelongsToLastRow(t *testing.T) {
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			g := newGrid(t, 4, 3)
			drawPolyline(t, kind, g, vec.Vec2{X: 0, Y: 3}, vec.Vec2{X: 3.5, Y: 3})
			for x := 0; x < 4; x++ {
				assert.Greater(t, g.At(x, 2), 0.0, "column %d", x)
				assert.Equal(t, 0.0, g.At(x, 0), "column %d", x)
			}
			g.NormalizeColumns()
			for x := 0; x < 4; x++ {
				assert.InDelta(t, 1.0, g.ColumnSum(x), 1e-12, "column %d", x)
			}
		})
	}
}

func TestBresenhamFloorsNegativeCoordinates(t *testing.T) {
	g := newGrid(t, 3, 3)
	drawPolyline(t, Bresenham, g, vec.Vec2{X: -0.5, Y: 1}, vec.Vec2{X: -0.25, Y: 1})
	assert.Equal(t, 0.0, g.ColumnSum(0))
}

func TestAntiAliasedClipsToGrid(t *testing.T) {
	g := newGrid(t, 4, 3)
	a := newAntiAliased()
	a.DrawPolyline(g, []vec.Vec2{{X: -1e5, Y: 1.5}, {X: 1e5, Y: 1.5}})
	assert.LessOrEqual(t, cap(a.scratch), g.Width*g.Height)
	for x := 0; x < g.Width; x++ {
		assert.InDelta(t, 1.0, g.At(x, 1), 2.0/255, "pixel (%d,1)", x)
	}
}
