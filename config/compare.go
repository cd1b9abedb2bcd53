package config

import (
	"github.com/kadaan/linedensity/lib/errors"
)

// CompareConfig represents the configuration of the compare command.
type CompareConfig struct {
	Reference string
	Candidate string
}

func (c *CompareConfig) Validate() error {
	var errs []error
	if c.Reference == "" {
		errs = append(errs, errors.NewConfigError("reference image is required"))
	}
	if c.Candidate == "" {
		errs = append(errs, errors.NewConfigError("candidate image is required"))
	}
	if len(errs) > 0 {
		return errors.NewMultiConfigError(errs, "%d invalid parameter(s)", len(errs))
	}
	return nil
}
