package renderer

import (
	"github.com/kadaan/linedensity/config"
	"github.com/kadaan/linedensity/lib/density"
	"github.com/kadaan/linedensity/lib/downsample"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/lib/raster"
	"github.com/kadaan/linedensity/lib/series"
	"seehuhn.de/go/geom/vec"
	"sort"
)

// newLayout returns how a series is placed in chart space for mode.
func newLayout(mode config.Mode, width int, k int) (density.Layout, error) {
	switch mode {
	case config.Full:
		return func(s series.Series) ([]vec.Vec2, error) {
			return raster.FullLayout(s, width, k)
		}, nil
	case config.M4:
		m4 := downsample.NewM4Downsampler()
		return func(s series.Series) ([]vec.Vec2, error) {
			if !s.Regular {
				return irregularM4Layout(m4, s, width)
			}
			n := width * k
			if s.Len() < n {
				return nil, errors.NewInvariantViolation("series %q has %d points, need width*k = %d", s.Name, s.Len(), n)
			}
			values, err := downsample.M4Values(s.Values()[:n], width)
			if err != nil {
				return nil, err
			}
			return raster.M4Layout(values, width, k)
		}, nil
	case config.LTTB:
		lttb := downsample.NewLttbDownsampler()
		return func(s series.Series) ([]vec.Vec2, error) {
			pts, err := raster.FullLayout(s, width, k)
			if err != nil {
				return nil, err
			}
			sampled, err := lttb.Downsample(raster.ToPoints(pts), downsample.PointsPerBucket*width)
			if err != nil {
				return nil, err
			}
			return raster.FromPoints(sampled), nil
		}, nil
	}
	return nil, errors.NewConfigError("unknown mode %q", string(mode))
}

// irregularM4Layout keeps the chart position of every selected sample and
// draws the samples of a bucket in time order.
func irregularM4Layout(m4 downsample.Downsampler, s series.Series, width int) ([]vec.Vec2, error) {
	pts, err := raster.FullLayout(s, width, 1)
	if err != nil {
		return nil, err
	}
	sampled, err := m4.Downsample(raster.ToPoints(pts), downsample.PointsPerBucket*width)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(sampled); i += downsample.PointsPerBucket {
		bucket := sampled[i : i+downsample.PointsPerBucket]
		sort.SliceStable(bucket, func(a, b int) bool {
			return bucket[a].T < bucket[b].T
		})
	}
	return raster.FromPoints(sampled), nil
}
