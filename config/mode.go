package config

import (
	"fmt"
	"github.com/kadaan/linedensity/lib/errors"
	"strings"
)

// Mode is one rendering of the same series: at full resolution or after
// downsampling.
type Mode string

const (
	Full Mode = "full"
	M4   Mode = "m4"
	LTTB Mode = "lttb"
)

var (
	AllModes = []Mode{Full, M4, LTTB}
)

func (m Mode) Downsampled() bool {
	return m != Full
}

func ParseMode(v string) (Mode, error) {
	for _, m := range AllModes {
		if strings.EqualFold(string(m), v) {
			return m, nil
		}
	}
	return "", newEnumError("mode", v, AllModes)
}

type modesValue struct {
	value   *[]Mode
	changed bool
}

func NewModesValue(p *[]Mode, val []Mode) *modesValue {
	mv := new(modesValue)
	mv.value = p
	*mv.value = append([]Mode(nil), val...)
	return mv
}

// String is used both by fmt.Print and by Cobra in help text
func (e *modesValue) String() string {
	modes := make([]string, len(*e.value))
	for i, m := range *e.value {
		modes[i] = string(m)
	}
	return strings.Join(modes, ",")
}

// Set must have pointer receiver, so it doesn't change the value of a copy
func (e *modesValue) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		mode, err := ParseMode(strings.TrimSpace(part))
		if err != nil {
			return err
		}
		if !e.changed {
			*e.value = nil
			e.changed = true
		}
		if !containsMode(*e.value, mode) {
			*e.value = append(*e.value, mode)
		}
	}
	return nil
}

// Type is only used in help text
func (e *modesValue) Type() string {
	return "modes"
}

func containsMode(modes []Mode, mode Mode) bool {
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}

func newEnumError[T ~string](kind string, v string, allowed []T) error {
	values := make([]string, len(allowed))
	for i, a := range allowed {
		values[i] = fmt.Sprintf("%q", string(a))
	}
	return errors.NewConfigError("unknown %s %q, expected one of %s", kind, v, strings.Join(values, ", "))
}
