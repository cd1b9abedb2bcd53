package config

import (
	"github.com/kadaan/linedensity/lib/colorize"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/lib/imageio"
	"github.com/kadaan/linedensity/lib/raster"
	"github.com/kadaan/linedensity/lib/series"
	"math"
	"net/url"
	"regexp"
	"time"
)

// RenderConfig represents the configuration of the render command.
type RenderConfig struct {
	Iterations      int
	K               int
	Width           int
	Height          int
	Source          Source
	Modes           []Mode
	Directory       string
	FilePattern     *regexp.Regexp
	HasHeader       bool
	Irregular       bool
	TSDBDirectory   string
	RemoteReadURL   *url.URL
	Selectors       series.Selectors
	QueryStart      time.Time
	QueryEnd        time.Time
	Parallelism     uint8
	Seed            int64
	ModelExpression string
	NoiseStdDev     float64
	Rasterizer      raster.Kind
	ColorStops      []colorize.Stop
	OutputDirectory string
	Format          imageio.Format
	Compare         bool
	MetricsFile     string
	SummaryFile     string
}

// Validate reports every invalid parameter at once. A zero seed is replaced
// by one derived from the clock.
func (c *RenderConfig) Validate() error {
	var errs []error
	if c.Iterations <= 0 {
		errs = append(errs, errors.NewConfigError("iterations must be positive, got %d", c.Iterations))
	}
	if c.K <= 0 {
		errs = append(errs, errors.NewConfigError("k must be positive, got %d", c.K))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, errors.NewConfigError("width and height must be positive, got %dx%d", c.Width, c.Height))
	}
	if len(c.Modes) == 0 {
		errs = append(errs, errors.NewConfigError("at least one mode is required"))
	}
	if c.NoiseStdDev < 0 || math.IsNaN(c.NoiseStdDev) {
		errs = append(errs, errors.NewConfigError("noise standard deviation must not be negative"))
	}
	if len(c.ColorStops) < 2 {
		errs = append(errs, errors.NewConfigError("color scale needs at least 2 stops"))
	}
	if c.OutputDirectory == "" {
		errs = append(errs, errors.NewConfigError("output directory is required"))
	}
	switch c.Source {
	case Synthetic:
	case CSV:
		if c.Directory == "" {
			errs = append(errs, errors.NewConfigError("csv source requires a directory"))
		}
	case TSDB, Remote:
		if len(c.Selectors) == 0 {
			errs = append(errs, errors.NewConfigError("%s source requires at least one selector", c.Source))
		}
		if c.Source == TSDB && c.TSDBDirectory == "" {
			errs = append(errs, errors.NewConfigError("tsdb source requires a tsdb directory"))
		}
		if c.Source == Remote && c.RemoteReadURL == nil {
			errs = append(errs, errors.NewConfigError("remote source requires a remote read url"))
		}
	default:
		errs = append(errs, newEnumError("source", string(c.Source), Sources))
	}
	if c.QueryWindow() != nil && !c.QueryStart.Before(c.QueryEnd) {
		errs = append(errs, errors.NewConfigError("query start is not before query end"))
	}
	if len(errs) > 0 {
		return errors.NewMultiConfigError(errs, "%d invalid parameter(s)", len(errs))
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return nil
}

// QueryWindow is the timestamp window, in milliseconds, that maps ingested
// samples into chart columns. It is nil when samples are placed by position:
// for synthetic series and for csv files not marked irregular.
func (c *RenderConfig) QueryWindow() *series.QueryWindow {
	switch {
	case c.Source == TSDB || c.Source == Remote:
	case c.Source == CSV && c.Irregular:
	default:
		return nil
	}
	return &series.QueryWindow{
		Start: float64(c.QueryStart.UnixMilli()),
		End:   float64(c.QueryEnd.UnixMilli()),
	}
}
