package config

import (
	"github.com/kadaan/linedensity/lib/colorize"
	"github.com/kadaan/linedensity/lib/common"
	"github.com/kadaan/linedensity/lib/imageio"
	"github.com/kadaan/linedensity/lib/raster"
	"github.com/kadaan/linedensity/lib/series"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"net/url"
	"regexp"
	"time"
)

const (
	iterationsKey       = "iterations"
	kKey                = "k"
	widthKey            = "width"
	heightKey           = "height"
	sourceKey           = "source"
	modeKey             = "mode"
	directoryKey        = "directory"
	filePatternKey      = "file-pattern"
	hasHeaderKey        = "has-header"
	irregularKey        = "irregular"
	tsdbDirectoryKey    = "tsdb-directory"
	remoteReadURLKey    = "remote-read-url"
	selectorKey         = "selector"
	queryStartKey       = "query-start"
	queryEndKey         = "query-end"
	parallelismKey      = "parallelism"
	seedKey             = "seed"
	modelExpressionKey  = "model-expression"
	noiseStdDevKey      = "noise-stddev"
	rasterizerKey       = "rasterizer"
	colorScaleFileKey   = "color-scale-file"
	outputDirectoryKey  = "output-directory"
	formatKey           = "format"
	compareKey          = "compare"
	metricsFileKey      = "metrics-file"
	summaryFileKey      = "summary-file"
	defaultIterations   = 100
	defaultK            = 100
	defaultWidth        = 400
	defaultHeight       = 400
	defaultDataDir      = "data/"
	defaultOutputDir    = "."
	defaultTSDBDir      = "data/"
	defaultQueryHistory = 6 * time.Hour
)

var (
	defaultQueryEnd      = Now
	defaultQueryStart    = defaultQueryEnd.Add(-defaultQueryHistory)
	defaultRemoteReadURL = MustParseUrl("http://localhost:9090/api/v1/read")
	defaultModes         = []Mode{Full, M4}
	yamlFileExtensions   = []string{"yml", "yaml"}
	imageFileExtensions  = []string{"png", "bmp", "tif", "tiff"}
)

func NewFlagBuilder(cmd *cobra.Command) FlagBuilder {
	return &flagBuilder{
		cmd: cmd,
	}
}

type Flag interface {
	Required() Flag
}

type FileFlag interface {
	Flag
	Extensions(extensions ...string) FileFlag
}

type compositeFlag struct {
	flags []Flag
}

func (f *compositeFlag) Required() Flag {
	for _, c := range f.flags {
		_ = c.Required()
	}
	return f
}

type flag struct {
	builder *flagBuilder
	flag    *pflag.Flag
}

func (f *flag) Required() Flag {
	_ = f.builder.cmd.MarkFlagRequired(f.flag.Name)
	return f
}

func (f *flag) Extensions(extensions ...string) FileFlag {
	_ = f.builder.cmd.MarkFlagFilename(f.flag.Name, extensions...)
	return f
}

type FlagBuilder interface {
	Int(dest *int, name string, defaultValue int, usage string) Flag
	Iterations(dest *int, usage string) Flag
	K(dest *int, usage string) Flag
	Size(widthDest *int, heightDest *int, usage string) Flag
	Bool(dest *bool, name string, defaultValue bool, usage string) Flag
	HasHeader(dest *bool, usage string) Flag
	Irregular(dest *bool, usage string) Flag
	Compare(dest *bool, usage string) Flag
	Source(dest *Source, usage string) Flag
	Modes(dest *[]Mode, usage string) Flag
	Directory(dest *string, usage string) Flag
	TSDBDirectory(dest *string, usage string) Flag
	OutputDirectory(dest *string, usage string) Flag
	File(dest *string, name string, defaultValue string, usage string) FileFlag
	MetricsFile(dest *string, usage string) FileFlag
	SummaryFile(dest *string, usage string) FileFlag
	Image(dest *string, name string, usage string) FileFlag
	FilePattern(dest **regexp.Regexp, usage string) Flag
	URL(dest **url.URL, name string, defaultValue *url.URL, usage string) Flag
	RemoteReadURL(dest **url.URL, usage string) Flag
	Selectors(dest *series.Selectors, usage string) Flag
	QueryWindow(startDest *time.Time, endDest *time.Time, usage string) Flag
	Time(dest *time.Time, name string, defaultValue time.Time, usage string) Flag
	Parallelism(dest *uint8, usage string) Flag
	Seed(dest *int64, usage string) Flag
	ModelExpression(dest *string, usage string) Flag
	NoiseStdDev(dest *float64, usage string) Flag
	Rasterizer(dest *raster.Kind, usage string) Flag
	ColorScale(dest *[]colorize.Stop, usage string) FileFlag
	Format(dest *imageio.Format, usage string) Flag
	Validate(validation func() error)
}

type flagBuilder struct {
	cmd *cobra.Command
}

func (fb *flagBuilder) newFlag(name string, creator func(flagSet *pflag.FlagSet)) *flag {
	creator(fb.cmd.Flags())
	f := fb.cmd.Flags().Lookup(name)
	_ = viper.BindPFlag(name, f)
	return &flag{
		builder: fb,
		flag:    f,
	}
}

func (fb *flagBuilder) addValidation(validation func(cmd *cobra.Command, args []string) error) {
	if fb.cmd.PreRunE != nil {
		existingValidation := fb.cmd.PreRunE
		fb.cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
			if err := validation(cmd, args); err != nil {
				return err
			}
			return existingValidation(cmd, args)
		}
	} else {
		fb.cmd.PreRunE = validation
	}
}

func (fb *flagBuilder) Validate(validation func() error) {
	fb.addValidation(func(cmd *cobra.Command, args []string) error {
		return validation()
	})
}

func (fb *flagBuilder) Int(dest *int, name string, defaultValue int, usage string) Flag {
	return fb.newFlag(name, func(flagSet *pflag.FlagSet) {
		flagSet.IntVar(dest, name, defaultValue, usage)
	})
}

func (fb *flagBuilder) Iterations(dest *int, usage string) Flag {
	return fb.newFlag(iterationsKey, func(flagSet *pflag.FlagSet) {
		flagSet.IntVarP(dest, iterationsKey, "i", defaultIterations, usage)
	})
}

func (fb *flagBuilder) K(dest *int, usage string) Flag {
	return fb.Int(dest, kKey, defaultK, usage)
}

func (fb *flagBuilder) Size(widthDest *int, heightDest *int, usage string) Flag {
	widthFlag := fb.Int(widthDest, widthKey, defaultWidth, usage+" width")
	heightFlag := fb.Int(heightDest, heightKey, defaultHeight, usage+" height")
	return &compositeFlag{
		flags: []Flag{widthFlag, heightFlag},
	}
}

func (fb *flagBuilder) Bool(dest *bool, name string, defaultValue bool, usage string) Flag {
	return fb.newFlag(name, func(flagSet *pflag.FlagSet) {
		flagSet.BoolVar(dest, name, defaultValue, usage)
	})
}

func (fb *flagBuilder) HasHeader(dest *bool, usage string) Flag {
	return fb.Bool(dest, hasHeaderKey, false, usage)
}

func (fb *flagBuilder) Irregular(dest *bool, usage string) Flag {
	return fb.Bool(dest, irregularKey, false, usage)
}

func (fb *flagBuilder) Compare(dest *bool, usage string) Flag {
	return fb.Bool(dest, compareKey, false, usage)
}

func (fb *flagBuilder) Source(dest *Source, usage string) Flag {
	return fb.newFlag(sourceKey, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewSourceValue(dest, Synthetic), sourceKey, usage)
	})
}

func (fb *flagBuilder) Modes(dest *[]Mode, usage string) Flag {
	return fb.newFlag(modeKey, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewModesValue(dest, defaultModes), modeKey, usage)
	})
}

func (fb *flagBuilder) Directory(dest *string, usage string) Flag {
	return fb.directory(dest, directoryKey, defaultDataDir, usage)
}

func (fb *flagBuilder) TSDBDirectory(dest *string, usage string) Flag {
	return fb.directory(dest, tsdbDirectoryKey, defaultTSDBDir, usage)
}

func (fb *flagBuilder) OutputDirectory(dest *string, usage string) Flag {
	return fb.directory(dest, outputDirectoryKey, defaultOutputDir, usage)
}

func (fb *flagBuilder) directory(dest *string, name string, defaultValue string, usage string) Flag {
	return fb.newFlag(name, func(flagSet *pflag.FlagSet) {
		flagSet.StringVar(dest, name, defaultValue, usage)
		_ = fb.cmd.MarkFlagDirname(name)
	})
}

func (fb *flagBuilder) File(dest *string, name string, defaultValue string, usage string) FileFlag {
	return fb.newFlag(name, func(flagSet *pflag.FlagSet) {
		flagSet.StringVar(dest, name, defaultValue, usage)
		_ = fb.cmd.MarkFlagFilename(name)
	})
}

func (fb *flagBuilder) MetricsFile(dest *string, usage string) FileFlag {
	return fb.File(dest, metricsFileKey, "", usage).Extensions("prom")
}

func (fb *flagBuilder) SummaryFile(dest *string, usage string) FileFlag {
	return fb.File(dest, summaryFileKey, "", usage).Extensions("json")
}

func (fb *flagBuilder) Image(dest *string, name string, usage string) FileFlag {
	return fb.File(dest, name, "", usage).Extensions(imageFileExtensions...)
}

func (fb *flagBuilder) FilePattern(dest **regexp.Regexp, usage string) Flag {
	return fb.newFlag(filePatternKey, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewRegexValue(dest, series.DefaultFilePattern), filePatternKey, usage)
	})
}

func (fb *flagBuilder) URL(dest **url.URL, name string, defaultValue *url.URL, usage string) Flag {
	return fb.newFlag(name, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewUrlValue(dest, defaultValue), name, usage)
	})
}

func (fb *flagBuilder) RemoteReadURL(dest **url.URL, usage string) Flag {
	return fb.URL(dest, remoteReadURLKey, defaultRemoteReadURL, usage)
}

func (fb *flagBuilder) Selectors(dest *series.Selectors, usage string) Flag {
	return fb.newFlag(selectorKey, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewSelectorsValue(dest), selectorKey, usage)
	})
}

func (fb *flagBuilder) QueryWindow(startDest *time.Time, endDest *time.Time, usage string) Flag {
	startFlag := fb.Time(startDest, queryStartKey, defaultQueryStart, usage+" from")
	endFlag := fb.Time(endDest, queryEndKey, defaultQueryEnd, usage+" to")
	return &compositeFlag{
		flags: []Flag{startFlag, endFlag},
	}
}

func (fb *flagBuilder) Time(dest *time.Time, name string, defaultValue time.Time, usage string) Flag {
	return fb.newFlag(name, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewTimeValue(dest, defaultValue), name, usage)
	})
}

func (fb *flagBuilder) Parallelism(dest *uint8, usage string) Flag {
	defaultValue := common.MaxParallelism
	if defaultValue > 255 {
		defaultValue = 255
	}
	return fb.newFlag(parallelismKey, func(flagSet *pflag.FlagSet) {
		flagSet.Uint8VarP(dest, parallelismKey, "p", uint8(defaultValue), usage)
	})
}

func (fb *flagBuilder) Seed(dest *int64, usage string) Flag {
	return fb.newFlag(seedKey, func(flagSet *pflag.FlagSet) {
		flagSet.Int64Var(dest, seedKey, 0, usage)
	})
}

func (fb *flagBuilder) ModelExpression(dest *string, usage string) Flag {
	return fb.newFlag(modelExpressionKey, func(flagSet *pflag.FlagSet) {
		flagSet.StringVar(dest, modelExpressionKey, series.DefaultModelExpression, usage)
	})
}

func (fb *flagBuilder) NoiseStdDev(dest *float64, usage string) Flag {
	return fb.newFlag(noiseStdDevKey, func(flagSet *pflag.FlagSet) {
		flagSet.Float64Var(dest, noiseStdDevKey, series.DefaultNoiseStdDev, usage)
	})
}

func (fb *flagBuilder) Rasterizer(dest *raster.Kind, usage string) Flag {
	return fb.newFlag(rasterizerKey, func(flagSet *pflag.FlagSet) {
		*dest = raster.Bresenham
		flagSet.Var(dest, rasterizerKey, usage)
	})
}

func (fb *flagBuilder) ColorScale(dest *[]colorize.Stop, usage string) FileFlag {
	return fb.newFlag(colorScaleFileKey, func(flagSet *pflag.FlagSet) {
		flagSet.Var(NewColorScaleValue(dest), colorScaleFileKey, usage)
		_ = fb.cmd.MarkFlagFilename(colorScaleFileKey, yamlFileExtensions...)
	})
}

func (fb *flagBuilder) Format(dest *imageio.Format, usage string) Flag {
	return fb.newFlag(formatKey, func(flagSet *pflag.FlagSet) {
		*dest = imageio.PNG
		flagSet.Var(dest, formatKey, usage)
	})
}
