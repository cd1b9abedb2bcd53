package downsample

import (
	"github.com/kadaan/linedensity/lib/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLttbKeepsEndpointsAndSpike(t *testing.T) {
	points := make([]series.Point, 20)
	for i := range points {
		points[i] = series.Point{T: float64(i), V: 1}
	}
	points[9].V = 50

	result, err := NewLttbDownsampler().Downsample(points, 5)
	require.NoError(t, err)
	require.Len(t, result, 5)
	assert.Equal(t, points[0], result[0])
	assert.Equal(t, points[19], result[4])
	assert.Contains(t, result, points[9])
	for i := 1; i < len(result); i++ {
		assert.Less(t, result[i-1].T, result[i].T)
	}
}

func TestLttbReturnsCopyWhenNothingToDrop(t *testing.T) {
	points := []series.Point{{T: 0, V: 1}, {T: 1, V: 2}}
	result, err := NewLttbDownsampler().Downsample(points, 10)
	require.NoError(t, err)
	assert.Equal(t, points, result)
	result[0].V = 99
	assert.Equal(t, 1.0, points[0].V)
}
