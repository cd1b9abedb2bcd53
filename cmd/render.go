package cmd

import (
	"github.com/kadaan/linedensity/config"
	"github.com/kadaan/linedensity/lib/command"
	"github.com/kadaan/linedensity/lib/renderer"
)

func init() {
	command.NewCommand(
		Root,
		"render",
		"Renders line density heatmaps",
		`Renders a line density heatmap of synthetic or ingested time series 
in every requested mode: at full resolution, M4 downsampled or LTTB 
downsampled.`,
		new(config.RenderConfig),
		renderer.NewRenderer()).Configure(func(fb config.FlagBuilder, cfg *config.RenderConfig) {
		fb.Iterations(&cfg.Iterations, "number of series to render")
		fb.K(&cfg.K, "number of points per pixel column")
		fb.Size(&cfg.Width, &cfg.Height, "image")
		fb.Source(&cfg.Source, "where the series come from: synthetic, csv, tsdb or remote")
		fb.Modes(&cfg.Modes, "comma separated renderings to produce: full, m4 or lttb")
		fb.Directory(&cfg.Directory, "directory of csv files to ingest")
		fb.FilePattern(&cfg.FilePattern, "regex selecting the csv files of the directory")
		fb.HasHeader(&cfg.HasHeader, "whether csv files start with a header row")
		fb.Irregular(&cfg.Irregular, "map csv timestamps through the query window instead of using row positions")
		fb.TSDBDirectory(&cfg.TSDBDirectory, "prometheus tsdb directory to read series from")
		fb.RemoteReadURL(&cfg.RemoteReadURL, "prometheus remote read endpoint to read series from")
		fb.Selectors(&cfg.Selectors, "series selector used to query the tsdb or remote source")
		fb.QueryWindow(&cfg.QueryStart, &cfg.QueryEnd, "query window mapped onto the image columns")
		fb.Parallelism(&cfg.Parallelism, "number of series rendered concurrently")
		fb.Seed(&cfg.Seed, "seed of the synthetic noise (0 derives one from the clock)")
		fb.ModelExpression(&cfg.ModelExpression, "expression of the synthetic model curve over x, k, width and height")
		fb.NoiseStdDev(&cfg.NoiseStdDev, "standard deviation of the synthetic noise")
		fb.Rasterizer(&cfg.Rasterizer, "line rasterizer: bresenham or antialiased")
		fb.ColorScale(&cfg.ColorStops, "yaml file of linear rgb color stops")
		fb.OutputDirectory(&cfg.OutputDirectory, "directory the images are written to")
		fb.Format(&cfg.Format, "image format: png, bmp or tiff")
		fb.Compare(&cfg.Compare, "compute the DSSIM of every downsampled rendering against the full rendering")
		fb.MetricsFile(&cfg.MetricsFile, "file to write run metrics to in the prometheus text format")
		fb.SummaryFile(&cfg.SummaryFile, "file to write a json summary of the run to")
		fb.Validate(cfg.Validate)
	})
}
