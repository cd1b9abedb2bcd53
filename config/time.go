package config

import (
	"fmt"
	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/tj/go-naturaldate"
	"strconv"
	"time"
)

var (
	Now = time.Now().UTC()
)

type timeValue time.Time

func NewTimeValue(p *time.Time, val time.Time) *timeValue {
	*p = val
	return (*timeValue)(p)
}

// String is used both by fmt.Print and by Cobra in help text
func (e *timeValue) String() string {
	return fmt.Sprintf("\"%s\"", humanize.Time((*time.Time)(e).UTC()))
}

// Set must have pointer receiver, so it doesn't change the value of a copy
//
// Accepted forms, in order: unix milliseconds, a natural date relative to now
// ("3 hours ago") and an absolute date.
func (e *timeValue) Set(v string) error {
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		*e = timeValue(time.UnixMilli(ms))
		return nil
	}
	if t, err := naturaldate.Parse(v, Now, naturaldate.WithDirection(naturaldate.Past)); err == nil {
		*e = timeValue(t.UTC())
		return nil
	}
	t, err := dateparse.ParseStrict(v)
	if err != nil {
		return errors.NewConfigError("cannot parse %q to a valid timestamp: %v", v, err)
	}
	*e = timeValue(t.UTC())
	return nil
}

// Type is only used in help text
func (e *timeValue) Type() string {
	return "timestamp"
}
