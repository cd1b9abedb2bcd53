package config

import (
	"strings"
)

// Source selects where the series of a render come from.
type Source string

const (
	Synthetic Source = "synthetic"
	CSV       Source = "csv"
	TSDB      Source = "tsdb"
	Remote    Source = "remote"
)

var (
	Sources = []Source{Synthetic, CSV, TSDB, Remote}
)

func NewSourceValue(p *Source, val Source) *Source {
	*p = val
	return p
}

// Ingested reports whether the series come from external data rather than
// the model curve.
func (e Source) Ingested() bool {
	return e != Synthetic
}

// String is used both by fmt.Print and by Cobra in help text
func (e *Source) String() string {
	return string(*e)
}

// Set must have pointer receiver, so it doesn't change the value of a copy
func (e *Source) Set(v string) error {
	for _, s := range Sources {
		if strings.EqualFold(string(s), v) {
			*e = s
			return nil
		}
	}
	return newEnumError("source", v, Sources)
}

// Type is only used in help text
func (e *Source) Type() string {
	return "source"
}
