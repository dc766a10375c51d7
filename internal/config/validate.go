package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFiles(); err != nil {
		return err
	}
	if err := c.validateFilters(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFiles() error {
	if len(c.Files.Extensions) == 0 {
		return errors.New("files.extensions must list at least one extension")
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("files.extensions entry %q must be a dotted extension like %q", ext, ".mkv")
		}
	}
	if c.Files.OutputFolder == "" {
		return errors.New("files.output_folder must be set")
	}
	if strings.ContainsAny(c.Files.OutputFolder, `/\`) {
		return fmt.Errorf("files.output_folder %q must be a bare folder name, not a path", c.Files.OutputFolder)
	}
	if c.Files.OutputSuffix == "" {
		return errors.New("files.output_suffix must be set")
	}
	return nil
}

func (c *Config) validateFilters() error {
	if len(c.Equalizer.Bands) == 0 {
		return errors.New("equalizer must declare at least one band")
	}
	for i, band := range c.Equalizer.Bands {
		if strings.TrimSpace(band.Frequency) == "" {
			return fmt.Errorf("equalizer.band[%d].frequency must be set", i)
		}
	}
	if strings.TrimSpace(c.Speechnorm.Expansion) == "" {
		return errors.New("speechnorm.expansion must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", "console", "json", c.Logging.Format)
	}
	return nil
}
