package renderer

import (
	"context"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/kadaan/linedensity/config"
	"github.com/kadaan/linedensity/lib/colorize"
	"github.com/kadaan/linedensity/lib/command"
	"github.com/kadaan/linedensity/lib/common"
	"github.com/kadaan/linedensity/lib/density"
	"github.com/kadaan/linedensity/lib/dssim"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/lib/imageio"
	"github.com/kadaan/linedensity/lib/series"
	"image"
	"k8s.io/klog/v2"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"time"
)

func NewRenderer() command.Task[config.RenderConfig] {
	return &renderer{}
}

type renderer struct {
}

func (t *renderer) Run(c *config.RenderConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	_, err := Render(ctx, c)
	return err
}

// OutputFileName encodes the run parameters of one rendering.
func OutputFileName(c *config.RenderConfig, mode config.Mode) string {
	suffix := ""
	if mode == config.LTTB {
		suffix = "-" + string(config.LTTB)
	}
	return fmt.Sprintf("output-i%d-k%d-w%d-h%d-u%s-d%s%s%s",
		c.Iterations, c.K, c.Width, c.Height,
		common.FormatBool(c.Source.Ingested()),
		common.FormatBool(mode.Downsampled()),
		suffix, c.Format.Extension())
}

// Render builds the series once and renders them in every configured mode.
// Each rendering is written to the output directory. With Compare set, the
// full rendering is compared against every downsampled one.
func Render(ctx context.Context, c *config.RenderConfig) (*Summary, error) {
	scale, err := colorize.NewColorScale(c.ColorStops)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.OutputDirectory, 0o777); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory %s", c.OutputDirectory)
	}

	m := newMetrics()
	now := time.Now()
	source, err := newSource(ctx, c)
	if err != nil {
		return nil, err
	}
	prepare := time.Since(now)
	m.prepare.Set(prepare.Seconds())
	klog.V(0).Infof("Preparing %s %s series took %s", humanize.Comma(int64(source.Len())), c.Source, prepare)

	summary := newSummary(c)
	images := make(map[config.Mode]image.Image, len(c.Modes))
	for _, mode := range c.Modes {
		layout, err := newLayout(mode, c.Width, c.K)
		if err != nil {
			return nil, err
		}
		now = time.Now()
		result, err := density.Aggregate(ctx, density.Config{
			Width:       c.Width,
			Height:      c.Height,
			Parallelism: int(c.Parallelism),
			Rasterizer:  c.Rasterizer,
		}, source, layout)
		if err != nil {
			return nil, errors.Wrap(err, "%s rendering failed", mode)
		}
		elapsed := time.Since(now)
		klog.V(0).Infof("Computing %s line density took %s", mode, elapsed)

		img := colorize.Colorize(result.Grid, scale)
		file := filepath.Join(c.OutputDirectory, OutputFileName(c, mode))
		if err := imageio.WriteFile(file, img, c.Format); err != nil {
			return nil, err
		}
		images[mode] = img

		checksum := result.Grid.Checksum()
		klog.V(1).Infof("Wrote %s (max density %s, checksum %016x)", file, humanize.Ftoa(result.Grid.Max()), checksum)
		m.observe(mode, result, elapsed)
		summary.Renderings = append(summary.Renderings, Rendering{
			Mode:            string(mode),
			File:            file,
			Folded:          result.Folded,
			MaxDensity:      result.Grid.Max(),
			MinColumnSum:    minColumnSum(result),
			Checksum:        fmt.Sprintf("%016x", checksum),
			DurationSeconds: elapsed.Seconds(),
		})
	}

	if c.Compare {
		if err := compareRenderings(images, summary, m); err != nil {
			return nil, err
		}
	}
	if c.MetricsFile != "" {
		if err := m.write(c.MetricsFile); err != nil {
			return nil, err
		}
	}
	if c.SummaryFile != "" {
		if err := summary.write(c.SummaryFile); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// minColumnSum is the number of series covering the least covered column.
func minColumnSum(r *density.Result) float64 {
	least := math.Inf(1)
	for x := 0; x < r.Grid.Width; x++ {
		least = math.Min(least, r.Grid.ColumnSum(x))
	}
	return least
}

func compareRenderings(images map[config.Mode]image.Image, summary *Summary, m *metrics) error {
	full, ok := images[config.Full]
	if !ok {
		return errors.NewConfigError("comparing renderings requires the %s mode", config.Full)
	}
	for i, r := range summary.Renderings {
		mode := config.Mode(r.Mode)
		if !mode.Downsampled() {
			continue
		}
		d, err := dssim.DSSIM(full, images[mode])
		if err != nil {
			return errors.Wrap(err, "failed to compare %s with %s", config.Full, mode)
		}
		klog.V(0).Infof("DSSIM of %s against %s: %.6f", mode, config.Full, d)
		m.dssim.WithLabelValues(r.Mode).Set(d)
		summary.Renderings[i].DSSIM = &d
	}
	return nil
}

func newSource(ctx context.Context, c *config.RenderConfig) (series.Source, error) {
	if c.Source == config.Synthetic {
		return series.NewSyntheticSource(series.SyntheticConfig{
			Count:       c.Iterations,
			Width:       c.Width,
			Height:      c.Height,
			K:           c.K,
			Expression:  c.ModelExpression,
			NoiseStdDev: c.NoiseStdDev,
			Seed:        c.Seed,
		})
	}

	var raws []series.Raw
	var err error
	start, end := c.QueryStart.UnixMilli(), c.QueryEnd.UnixMilli()
	window := c.QueryWindow()
	if window != nil {
		klog.V(0).Infof("Querying %s series from %s", c.Source, common.FormatDateRange(start, end))
	}
	switch c.Source {
	case config.CSV:
		limit := c.Width * c.K
		if window != nil {
			limit = 0
		}
		raws, err = series.LoadCSVDirectory(c.Directory, c.FilePattern, c.Iterations, c.HasHeader, limit)
	case config.TSDB:
		raws, err = series.LoadTSDB(ctx, c.TSDBDirectory, c.Selectors, start, end, c.Iterations)
	case config.Remote:
		raws, err = series.LoadRemote(ctx, c.RemoteReadURL, c.Selectors, start, end, c.Iterations)
	default:
		return nil, errors.NewConfigError("unknown source %q", string(c.Source))
	}
	if err != nil {
		return nil, err
	}
	if len(raws) < c.Iterations {
		return nil, errors.NewDataError("%s source returned %d series, need %d", c.Source, len(raws), c.Iterations)
	}
	source, err := series.NewIngestedSource(raws, series.IngestConfig{
		Width:       c.Width,
		Height:      c.Height,
		K:           c.K,
		QueryWindow: window,
	})
	if err != nil {
		return nil, err
	}
	extent := source.Extent()
	klog.V(1).Infof("Scaling %s values from [%s, %s] to [0, %d]", c.Source, humanize.Ftoa(extent.Min), humanize.Ftoa(extent.Max), c.Height)
	return source, nil
}
