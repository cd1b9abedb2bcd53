package renderer

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/kadaan/linedensity/config"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/lib/raster"
	"os"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// Summary describes one render run.
type Summary struct {
	Source     string      `json:"source"`
	Seed       int64       `json:"seed,omitempty"`
	Iterations int         `json:"iterations"`
	K          int         `json:"k"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Rasterizer string      `json:"rasterizer"`
	Renderings []Rendering `json:"renderings"`
}

type Rendering struct {
	Mode            string   `json:"mode"`
	File            string   `json:"file"`
	Folded          int      `json:"folded"`
	MaxDensity      float64  `json:"maxDensity"`
	MinColumnSum    float64  `json:"minColumnSum"`
	Checksum        string   `json:"checksum"`
	DurationSeconds float64  `json:"durationSeconds"`
	DSSIM           *float64 `json:"dssim,omitempty"`
}

func newSummary(c *config.RenderConfig) *Summary {
	s := &Summary{
		Source:     string(c.Source),
		Iterations: c.Iterations,
		K:          c.K,
		Width:      c.Width,
		Height:     c.Height,
		Rasterizer: string(c.Rasterizer),
	}
	if s.Rasterizer == "" {
		s.Rasterizer = string(raster.Bresenham)
	}
	if c.Source == config.Synthetic {
		s.Seed = c.Seed
	}
	return s
}

func (s *Summary) write(file string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode summary")
	}
	if err := os.WriteFile(file, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(err, "failed to write summary to %s", file)
	}
	return nil
}
