package config

import (
	"fmt"
	"github.com/kadaan/linedensity/lib/series"
)

type selectorsValue struct {
	value *series.Selectors
}

func NewSelectorsValue(p *series.Selectors) *selectorsValue {
	sv := new(selectorsValue)
	sv.value = p
	*sv.value = make(series.Selectors)
	return sv
}

// String is used both by fmt.Print and by Cobra in help text
func (e *selectorsValue) String() string {
	size := len(*e.value)
	if size == 0 {
		return "None"
	}
	return fmt.Sprintf("%d selector(s)", size)
}

// Set must have pointer receiver, so it doesn't change the value of a copy
func (e *selectorsValue) Set(v string) error {
	parsed, err := series.ParseSelectors([]string{v})
	if err != nil {
		return err
	}
	for expression, matchers := range parsed {
		(*e.value)[expression] = matchers
	}
	return nil
}

// Type is only used in help text
func (e *selectorsValue) Type() string {
	return "selector"
}
