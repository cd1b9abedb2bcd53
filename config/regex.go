package config

import (
	"github.com/kadaan/linedensity/lib/errors"
	"regexp"
)

type regexValue struct {
	value **regexp.Regexp
}

func NewRegexValue(p **regexp.Regexp, val *regexp.Regexp) *regexValue {
	rv := new(regexValue)
	rv.value = p
	*rv.value = val
	return rv
}

// String is used both by fmt.Print and by Cobra in help text
func (e *regexValue) String() string {
	if *e.value == nil {
		return ""
	}
	return (*e.value).String()
}

// Set must have pointer receiver, so it doesn't change the value of a copy
func (e *regexValue) Set(v string) error {
	regex, err := regexp.Compile(v)
	if err != nil {
		return errors.NewConfigError("failed to parse regex %q: %v", v, err)
	}
	*e.value = regex
	return nil
}

// Type is only used in help text
func (e *regexValue) Type() string {
	return "regex"
}
