package config

import (
	"slices"

	"github.com/teranos/sysfacts/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Resolver.AcquisitionTimeoutSeconds <= 0 {
		return errors.Newf("resolver.acquisition_timeout_seconds must be > 0, got %d", c.Resolver.AcquisitionTimeoutSeconds)
	}
	if c.Source.CommandTimeoutSeconds <= 0 {
		return errors.Newf("source.command_timeout_seconds must be > 0, got %d", c.Source.CommandTimeoutSeconds)
	}
	if c.Source.CommandTimeoutSeconds > c.Resolver.AcquisitionTimeoutSeconds {
		return errors.WithHint(
			errors.Newf("source.command_timeout_seconds (%d) exceeds resolver.acquisition_timeout_seconds (%d)",
				c.Source.CommandTimeoutSeconds, c.Resolver.AcquisitionTimeoutSeconds),
			"a single command can never outlive the acquisition that runs it")
	}
	if c.Gather.Workers < 1 {
		return errors.Newf("gather.workers must be >= 1, got %d", c.Gather.Workers)
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return errors.WithHintf(
			errors.Newf("output.format %q is not supported", c.Output.Format),
			"use one of %v", Formats)
	}
	return nil
}
