// Package config loads the installer configuration. Embedded defaults are
// layered under an optional TOML file and SELFUNZIP_ environment variables.
package config
