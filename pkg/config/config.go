package config

import (
	"fmt"
	"time"

	"github.com/sdejongh/convcheck/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Converter ConverterConfig `yaml:"converter"`
	Compare   CompareConfig   `yaml:"compare"`
	Profiles  ProfilesConfig  `yaml:"profiles"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ConverterConfig describes how the converter under test is invoked
type ConverterConfig struct {
	// Command is the argv prefix; profile flags and directories are appended
	Command []string `yaml:"command"`
	// Timeout bounds the converter run (0 = wait forever)
	Timeout time.Duration `yaml:"timeout"`
	// FailOnExitCode aborts the run when the converter exits non-zero
	FailOnExitCode bool `yaml:"fail_on_exit_code"`
}

// CompareConfig holds image comparison settings
type CompareConfig struct {
	Extension string                 `yaml:"extension"`
	Tolerance float64                `yaml:"tolerance"`
	Pairing   models.PairingStrategy `yaml:"pairing"`
}

// ProfilesConfig holds the two named directory sets
type ProfilesConfig struct {
	Normal Profile `yaml:"normal"`
	Masks  Profile `yaml:"masks"`
}

// Profile is one set of converter input, output and reference directories
type Profile struct {
	Input     string   `yaml:"input"`
	Output    string   `yaml:"output"`
	Reference string   `yaml:"reference"`
	Flags     []string `yaml:"flags,omitempty"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bar while comparing
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Converter: ConverterConfig{
			Command: []string{"python", "cellom2tif.py"},
			Timeout: 30 * time.Minute,
		},
		Compare: CompareConfig{
			Extension: ".tif",
			Tolerance: 0.01,
			Pairing:   models.PairByOrder,
		},
		Profiles: ProfilesConfig{
			Normal: Profile{
				Input:     "test-data",
				Output:    "test-data-out",
				Reference: "test-data-results",
			},
			Masks: Profile{
				Input:     "test-data",
				Output:    "test-data-out-m",
				Reference: "test-data-results-m",
				Flags:     []string{"-m"},
			},
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: false,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// Profile returns the directory set for the given mode
func (c *Config) Profile(mode models.Mode) (Profile, error) {
	switch mode {
	case models.ModeNormal:
		return c.Profiles.Normal, nil
	case models.ModeMasks:
		return c.Profiles.Masks, nil
	default:
		return Profile{}, fmt.Errorf("unknown mode: %s", mode)
	}
}

// OutputDirs returns the output directories of every profile
func (c *Config) OutputDirs() []string {
	return []string{c.Profiles.Normal.Output, c.Profiles.Masks.Output}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Converter.Command) == 0 || c.Converter.Command[0] == "" {
		return &models.ValidationError{
			Field:   "converter.command",
			Message: "must name a program",
		}
	}

	if c.Converter.Timeout < 0 {
		return &models.ValidationError{
			Field:   "converter.timeout",
			Message: "must not be negative",
		}
	}

	if c.Compare.Extension == "" {
		return &models.ValidationError{
			Field:   "compare.extension",
			Message: "must not be empty",
		}
	}

	if c.Compare.Tolerance <= 0 {
		return &models.ValidationError{
			Field:   "compare.tolerance",
			Message: "must be greater than 0",
		}
	}

	switch c.Compare.Pairing {
	case models.PairByPath, models.PairByOrder:
	default:
		return &models.ValidationError{
			Field:   "compare.pairing",
			Message: "must be 'path' or 'order'",
		}
	}

	for name, p := range map[string]Profile{"normal": c.Profiles.Normal, "masks": c.Profiles.Masks} {
		if err := p.validate("profiles." + name); err != nil {
			return err
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}

func (p Profile) validate(field string) error {
	switch {
	case p.Input == "":
		return &models.ValidationError{Field: field + ".input", Message: "must not be empty"}
	case p.Output == "":
		return &models.ValidationError{Field: field + ".output", Message: "must not be empty"}
	case p.Reference == "":
		return &models.ValidationError{Field: field + ".reference", Message: "must not be empty"}
	}
	return nil
}
