package colorize

import (
	"fmt"
	"github.com/ghodss/yaml"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/lucasb-eyer/go-colorful"
	"image/color"
	"math"
	"os"
)

// Stop is a color stop given as linear RGB bytes.
type Stop struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (s Stop) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.R, s.G, s.B)
}

func (s Stop) color() colorful.Color {
	return colorful.LinearRgb(float64(s.R)/255, float64(s.G)/255, float64(s.B)/255)
}

func (s Stop) rgba() color.RGBA {
	return color.RGBA{R: s.R, G: s.G, B: s.B, A: 0xff}
}

type StopFile struct {
	Stops []Stop `json:"stops"`
}

var (
	DefaultStops = []Stop{
		{R: 247, G: 252, B: 241},
		{R: 14, G: 66, B: 127},
	}
)

// ColorScale maps a scalar in [0,1] to a color by interpolating in Lab
// between evenly spaced stops. It is immutable once built.
type ColorScale struct {
	stops  []Stop
	colors []colorful.Color
}

func NewColorScale(stops []Stop) (*ColorScale, error) {
	if len(stops) < 2 {
		return nil, errors.NewConfigError("a color scale needs at least 2 stops, got %d", len(stops))
	}
	s := &ColorScale{
		stops:  append([]Stop(nil), stops...),
		colors: make([]colorful.Color, len(stops)),
	}
	for i, stop := range stops {
		s.colors[i] = stop.color()
	}
	return s, nil
}

func NewDefaultColorScale() *ColorScale {
	s, _ := NewColorScale(DefaultStops)
	return s
}

func (s *ColorScale) Stops() []Stop {
	return append([]Stop(nil), s.stops...)
}

// At returns the color for t. Values outside [0,1] are clamped and the
// scale ends return their stop colors exactly.
func (s *ColorScale) At(t float64) color.RGBA {
	if math.IsNaN(t) || t <= 0 {
		return s.stops[0].rgba()
	}
	last := len(s.stops) - 1
	if t >= 1 {
		return s.stops[last].rgba()
	}
	pos := t * float64(last)
	i := int(pos)
	if i >= last {
		return s.stops[last].rgba()
	}
	blended := s.colors[i].BlendLab(s.colors[i+1], pos-float64(i))
	r, g, b := blended.LinearRgb()
	return color.RGBA{R: toByte(r), G: toByte(g), B: toByte(b), A: 0xff}
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(math.Round(v * 255))
}

func ParseStops(data []byte) ([]Stop, error) {
	var f StopFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewConfigError("could not parse color stops: %v", err)
	}
	if len(f.Stops) < 2 {
		return nil, errors.NewConfigError("a color scale needs at least 2 stops, got %d", len(f.Stops))
	}
	return f.Stops, nil
}

func LoadStops(file string) ([]Stop, error) {
	if _, err := os.Stat(file); err != nil {
		return nil, errors.NewConfigError("could not find color scale file %s", file)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.NewConfigError("could not read color scale file %s: %v", file, err)
	}
	return ParseStops(data)
}
