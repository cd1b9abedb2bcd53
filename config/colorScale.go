package config

import (
	"fmt"
	"github.com/kadaan/linedensity/lib/colorize"
)

type colorScaleValue struct {
	value *[]colorize.Stop
	file  string
}

func NewColorScaleValue(p *[]colorize.Stop) *colorScaleValue {
	*p = append([]colorize.Stop(nil), colorize.DefaultStops...)
	return &colorScaleValue{value: p}
}

// String is used both by fmt.Print and by Cobra in help text
func (e *colorScaleValue) String() string {
	if e.file == "" {
		return fmt.Sprintf("%v", *e.value)
	}
	return e.file
}

// Set must have pointer receiver, so it doesn't change the value of a copy
func (e *colorScaleValue) Set(v string) error {
	stops, err := colorize.LoadStops(v)
	if err != nil {
		return err
	}
	*e.value = stops
	e.file = v
	return nil
}

// Type is only used in help text
func (e *colorScaleValue) Type() string {
	return "colorScale"
}
