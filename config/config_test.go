package config

import (
	"github.com/kadaan/linedensity/lib/colorize"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/lib/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
	"time"
)

func validRenderConfig() *RenderConfig {
	return &RenderConfig{
		Iterations:      3,
		K:               2,
		Width:           4,
		Height:          4,
		Source:          Synthetic,
		Modes:           []Mode{Full, M4},
		ColorStops:      colorize.DefaultStops,
		OutputDirectory: ".",
		NoiseStdDev:     series.DefaultNoiseStdDev,
	}
}

func TestRenderConfigValidate(t *testing.T) {
	c := validRenderConfig()
	require.NoError(t, c.Validate())
	assert.NotZero(t, c.Seed)

	c = validRenderConfig()
	c.Seed = 42
	require.NoError(t, c.Validate())
	assert.Equal(t, int64(42), c.Seed)
}

func TestRenderConfigValidateCollectsErrors(t *testing.T) {
	c := validRenderConfig()
	c.Iterations = 0
	c.K = -1
	c.Width = 0
	c.Modes = nil
	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
	assert.Contains(t, err.Error(), "iterations must be positive")
	assert.Contains(t, err.Error(), "k must be positive")
	assert.Contains(t, err.Error(), "width and height must be positive")
	assert.Contains(t, err.Error(), "at least one mode is required")
	assert.Zero(t, c.Seed)
}

func TestRenderConfigIngestedSources(t *testing.T) {
	c := validRenderConfig()
	c.Source = CSV
	assert.True(t, errors.IsConfigError(c.Validate()))
	c.Directory = "data"
	require.NoError(t, c.Validate())
	assert.Nil(t, c.QueryWindow())

	c.Irregular = true
	c.QueryStart = time.UnixMilli(2000)
	c.QueryEnd = time.UnixMilli(1000)
	assert.True(t, errors.IsConfigError(c.Validate()))
	c.QueryEnd = time.UnixMilli(3000)
	require.NoError(t, c.Validate())
	assert.Equal(t, &series.QueryWindow{Start: 2000, End: 3000}, c.QueryWindow())

	c = validRenderConfig()
	c.Source = Remote
	err := c.Validate()
	assert.Contains(t, err.Error(), "requires at least one selector")
	assert.Contains(t, err.Error(), "requires a remote read url")
}

func TestSourceValue(t *testing.T) {
	var s Source
	NewSourceValue(&s, Synthetic)
	assert.Equal(t, "synthetic", s.String())
	assert.False(t, s.Ingested())
	require.NoError(t, s.Set("TSDB"))
	assert.Equal(t, TSDB, s)
	assert.True(t, s.Ingested())
	assert.True(t, errors.IsConfigError(s.Set("kafka")))
}

func TestModesValue(t *testing.T) {
	var modes []Mode
	v := NewModesValue(&modes, []Mode{Full, M4})
	assert.Equal(t, "full,m4", v.String())
	require.NoError(t, v.Set("lttb"))
	assert.Equal(t, []Mode{LTTB}, modes)
	require.NoError(t, v.Set("full, lttb"))
	assert.Equal(t, []Mode{LTTB, Full}, modes)
	assert.True(t, errors.IsConfigError(v.Set("m5")))
	assert.True(t, LTTB.Downsampled())
	assert.False(t, Full.Downsampled())
}

func TestRegexValue(t *testing.T) {
	var r *regexp.Regexp
	v := NewRegexValue(&r, series.DefaultFilePattern)
	assert.Equal(t, series.DefaultFilePattern.String(), v.String())
	require.NoError(t, v.Set(`\.txt$`))
	assert.True(t, r.MatchString("a.txt"))
	assert.True(t, errors.IsConfigError(v.Set("(")))
}

func TestUrlValue(t *testing.T) {
	u := defaultRemoteReadURL
	v := NewUrlValue(&u, defaultRemoteReadURL)
	require.NoError(t, v.Set("https://prometheus:9090/api/v1/read"))
	assert.Equal(t, "prometheus:9090", u.Host)
	assert.True(t, errors.IsConfigError(v.Set("ftp://prometheus")))
}

func TestTimeValue(t *testing.T) {
	var ts time.Time
	v := NewTimeValue(&ts, time.Time{})
	require.NoError(t, v.Set("1500000000000"))
	assert.Equal(t, int64(1500000000000), ts.UnixMilli())
	assert.Equal(t, "1500000000000", strconv.FormatInt(ts.UnixMilli(), 10))
}

func TestSelectorsValue(t *testing.T) {
	var s series.Selectors
	v := NewSelectorsValue(&s)
	assert.Equal(t, "None", v.String())
	require.NoError(t, v.Set(`up{job="node"}`))
	assert.Len(t, s, 1)
	assert.Equal(t, "1 selector(s)", v.String())
	assert.True(t, errors.IsConfigError(v.Set(`up{`)))
}

func TestColorScaleValue(t *testing.T) {
	var stops []colorize.Stop
	v := NewColorScaleValue(&stops)
	assert.Equal(t, colorize.DefaultStops, stops)

	file := filepath.Join(t.TempDir(), "scale.yaml")
	require.NoError(t, os.WriteFile(file, []byte("stops:\n- {r: 255, g: 255, b: 255}\n- {r: 0, g: 0, b: 0}\n"), 0644))
	require.NoError(t, v.Set(file))
	assert.Equal(t, []colorize.Stop{{R: 255, G: 255, B: 255}, {}}, stops)
	assert.Equal(t, file, v.String())
}

func TestCompareConfigValidate(t *testing.T) {
	c := &CompareConfig{}
	assert.True(t, errors.IsConfigError(c.Validate()))
	c.Reference = "a.png"
	c.Candidate = "b.png"
	assert.NoError(t, c.Validate())
}
