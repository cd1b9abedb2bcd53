package downsample

import (
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/lib/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand"
	"testing"
)

func TestM4SingleBucket(t *testing.T) {
	buckets, err := M4([]float64{5, 1, 9, 3}, 1)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	b := buckets[0]
	assert.Equal(t, 5.0, b.First)
	assert.Equal(t, 3.0, b.Last)
	assert.Equal(t, 1.0, b.Min)
	assert.Equal(t, 9.0, b.Max)
	assert.Equal(t, [4]float64{5, 3, 1, 9}, b.Values())
}

func TestM4ValuesSlotOrder(t *testing.T) {
	values, err := M4Values([]float64{5, 1, 9, 3, 2, 2, 8, 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 3, 1, 9, 2, 4, 2, 8}, values)
}

func TestM4TiesKeepFirstOccurrence(t *testing.T) {
	points := []series.Point{{T: 0, V: 7}, {T: 1, V: 2}, {T: 2, V: 7}, {T: 3, V: 2}}
	result, err := NewM4Downsampler().Downsample(points, 4)
	require.NoError(t, err)
	assert.Equal(t, []series.Point{
		{T: 0, V: 7},
		{T: 3, V: 2},
		{T: 1, V: 2},
		{T: 0, V: 7},
	}, result)
}

func TestM4IgnoresTail(t *testing.T) {
	buckets, err := M4([]float64{1, 2, 3, 4, 100}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, buckets[0].Last)
	assert.Equal(t, 4.0, buckets[1].Last)
	assert.Equal(t, 4.0, buckets[1].Max)
}

func TestM4Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, tc := range []struct {
		width int
		k     int
	}{{1, 1}, {4, 2}, {10, 7}, {33, 3}} {
		values := make([]float64, tc.width*tc.k)
		for i := range values {
			values[i] = rng.NormFloat64() * 10
		}
		flattened, err := M4Values(values, tc.width)
		require.NoError(t, err)
		assert.Len(t, flattened, PointsPerBucket*tc.width)

		buckets, err := M4(values, tc.width)
		require.NoError(t, err)
		for i, b := range buckets {
			raw := values[i*tc.k : (i+1)*tc.k]
			assert.Equal(t, raw[0], b.First)
			assert.Equal(t, raw[len(raw)-1], b.Last)
			for _, v := range raw {
				assert.LessOrEqual(t, b.Min, v)
				assert.GreaterOrEqual(t, b.Max, v)
			}
		}
	}
}

func TestM4Preconditions(t *testing.T) {
	_, err := M4([]float64{1, 2}, 0)
	assert.True(t, errors.IsInvariantViolation(err))
	_, err = M4([]float64{1, 2}, 3)
	assert.True(t, errors.IsInvariantViolation(err))
	_, err = NewM4Downsampler().Downsample([]series.Point{{V: 1}}, 3)
	assert.True(t, errors.IsInvariantViolation(err))
}
