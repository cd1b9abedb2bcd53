package series

import (
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func raw(name string, values ...float64) Raw {
	r := Raw{Name: name}
	for i, v := range values {
		r.Points = append(r.Points, Point{T: float64(1000 + 10*i), V: v})
	}
	return r
}

func TestIngestScalesWithGlobalExtent(t *testing.T) {
	source, err := NewIngestedSource([]Raw{raw("a", 10, 20, 30)}, IngestConfig{Width: 3, Height: 100, K: 1})
	require.NoError(t, err)
	s, err := source.Series(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 50, 100}, s.Values())
	assert.True(t, s.Regular)
	assert.Equal(t, 2.0, s.Points[2].T)
}

func TestIngestExtentSpansAllSources(t *testing.T) {
	source, err := NewIngestedSource([]Raw{raw("a", 0, 5), raw("b", 10, 2, 99)}, IngestConfig{Width: 1, Height: 10, K: 2})
	require.NoError(t, err)
	assert.Equal(t, Extent{Min: 0, Max: 10}, source.Extent())
	b, err := source.Series(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 2}, b.Values())
}

func TestIngestConstantDataMapsToZero(t *testing.T) {
	source, err := NewIngestedSource([]Raw{raw("a", 4, 4)}, IngestConfig{Width: 2, Height: 10, K: 1})
	require.NoError(t, err)
	s, err := source.Series(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, s.Values())
}

func TestIngestRejectsShortSource(t *testing.T) {
	_, err := NewIngestedSource([]Raw{raw("a", 1, 2, 3, 4), raw("b", 1, 2, 3)}, IngestConfig{Width: 2, Height: 10, K: 2})
	assert.True(t, errors.IsDataError(err))
	_, err = NewIngestedSource(nil, IngestConfig{Width: 2, Height: 10, K: 2})
	assert.True(t, errors.IsDataError(err))
	_, err = NewIngestedSource([]Raw{raw("a", 1, math.NaN())}, IngestConfig{Width: 2, Height: 10, K: 1})
	assert.True(t, errors.IsDataError(err))
}

func TestQueryWindowSnap(t *testing.T) {
	w := QueryWindow{Start: 1000, End: 1010}.Snap(4)
	assert.Equal(t, QueryWindow{Start: 1000, End: 1016}, w)
	assert.Equal(t, w, w.Snap(4))
	assert.Equal(t, 2.0, w.Position(1008, 4))
}

func TestIngestMapsTimestampsIntoQueryWindow(t *testing.T) {
	window := &QueryWindow{Start: 1000, End: 1030}
	source, err := NewIngestedSource([]Raw{raw("a", 1, 2, 3, 4)}, IngestConfig{Width: 2, Height: 10, K: 2, QueryWindow: window})
	require.NoError(t, err)
	s, err := source.Series(0)
	require.NoError(t, err)
	assert.False(t, s.Regular)
	positions := make([]float64, len(s.Points))
	for i, p := range s.Points {
		positions[i] = p.T
	}
	assert.InDeltaSlice(t, []float64{0, 0.625, 1.25, 1.875}, positions, 1e-12)

	_, err = NewIngestedSource([]Raw{raw("a", 1, 2)}, IngestConfig{Width: 2, Height: 10, K: 1, QueryWindow: &QueryWindow{Start: 5, End: 5}})
	assert.True(t, errors.IsConfigError(err))
}

func TestExtentMergeIsOrderIndependent(t *testing.T) {
	a := EmptyExtent().Observe(3).Observe(-1)
	b := EmptyExtent().Observe(7)
	c := EmptyExtent()
	assert.Equal(t, a.Merge(b).Merge(c), c.Merge(b).Merge(a))
	assert.True(t, c.Empty())
	assert.False(t, a.Empty())
}

func TestIngestDropsSamplesOutsideQueryWindow(t *testing.T) {
	r := raw("a", 100, 1, 2, 3, 4, 100)
	window := &QueryWindow{Start: 1010, End: 1040}
	source, err := NewIngestedSource([]Raw{r}, IngestConfig{Width: 2, Height: 3, K: 2, QueryWindow: window})
	require.NoError(t, err)
	assert.Equal(t, Extent{Min: 1, Max: 4}, source.Extent())
	s, err := source.Series(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3}, s.Values())
	assert.Equal(t, 0.0, s.Points[0].T)

	_, err = NewIngestedSource([]Raw{r}, IngestConfig{Width: 2, Height: 3, K: 3, QueryWindow: window})
	assert.True(t, errors.IsDataError(err))
}
