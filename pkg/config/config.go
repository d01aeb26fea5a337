package config

import (
	"strings"

	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/ui/prompt"
)

// Config is the effective installer configuration.
type Config struct {
	Naming  Naming  `koanf:"naming" toml:"naming"`
	Archive Archive `koanf:"archive" toml:"archive"`
	Native  Native  `koanf:"native" toml:"native"`
	UI      UI      `koanf:"ui" toml:"ui"`
}

// Naming configures archive name derivation.
type Naming struct {
	Placeholder string   `koanf:"placeholder" toml:"placeholder"`
	Aliases     []string `koanf:"aliases" toml:"aliases"`
	DisplayName string   `koanf:"display_name" toml:"display_name"`
}

// Archive configures entry exclusion.
type Archive struct {
	Manifest         string   `koanf:"manifest" toml:"manifest"`
	BootstrapEntries []string `koanf:"bootstrap_entries" toml:"bootstrap_entries"`
}

// Native configures the native library bootstrap.
type Native struct {
	EnvVar    string   `koanf:"env_var" toml:"env_var"`
	Library   string   `koanf:"library" toml:"library"`
	Platforms []string `koanf:"platforms" toml:"platforms"`
}

// UI configures operator interaction.
type UI struct {
	Format     string `koanf:"format" toml:"format"`
	TimeFormat string `koanf:"time_format" toml:"time_format"`
}

// Format returns the parsed ui.format.
func (c *Config) Format() (prompt.Format, error) {
	return prompt.ParseFormat(c.UI.Format)
}

// Validate checks values that would make an installation impossible.
func (c *Config) Validate() error {
	if c.Naming.Placeholder == "" {
		return errors.New(errors.ErrConfigParse, "naming.placeholder must not be empty")
	}
	if c.Native.Library == "" {
		return errors.New(errors.ErrConfigParse, "native.library must not be empty")
	}
	if strings.ContainsAny(c.Native.Library, `/\`) {
		return errors.Newf(errors.ErrConfigParse, "native.library must be a file name, got %q", c.Native.Library).
			WithDetail("library", c.Native.Library)
	}
	if c.UI.TimeFormat == "" {
		return errors.New(errors.ErrConfigParse, "ui.time_format must not be empty")
	}
	if _, err := c.Format(); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "invalid ui.format")
	}
	return nil
}
