// Package cliconfig holds the CLI-side configuration for wxship:
// defaults, a TOML config file, WXSHIP_* environment variables and cobra
// flags, applied in ascending precedence.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/wx-labs/wxship/internal/adapters/windfinder"
)

// DefaultServerURL is the well-known WindFinder upload endpoint.
const DefaultServerURL = windfinder.DefaultServerURL

// Config holds CLI configuration for wxship.
type Config struct {
	StationID string
	Password  string
	ServerURL string

	SpoolDir string
	Timezone string

	PostInterval time.Duration
	StaleAge     time.Duration
	Timeout      time.Duration
	RetryWait    time.Duration

	MaxBacklog int
	MaxTries   int

	SkipUpload bool
	LogSuccess bool
	LogFailure bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServerURL:    DefaultServerURL,
		PostInterval: 300 * time.Second,
		Timeout:      60 * time.Second,
		RetryWait:    5 * time.Second,
		MaxTries:     3,
		LogSuccess:   true,
		LogFailure:   true,
		Password:     os.Getenv("WXSHIP_PASSWORD"),
	}
}

// Validate checks the configuration for errors and sets derived defaults.
// Credentials are deliberately not validated here: their absence disables
// the upload path rather than failing startup, and the service layer makes
// that call.
func (c *Config) Validate() error {
	if c.SpoolDir == "" {
		return fmt.Errorf("spool-dir is required")
	}
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	// Ensure no trailing slash
	if len(c.ServerURL) > 0 && c.ServerURL[len(c.ServerURL)-1] == '/' {
		c.ServerURL = c.ServerURL[:len(c.ServerURL)-1]
	}
	if c.PostInterval <= 0 {
		return fmt.Errorf("post interval must be positive")
	}
	if c.MaxTries < 1 {
		return fmt.Errorf("max tries must be at least 1")
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
	}
	return nil
}

// Location resolves the configured timezone name.
// Call after Validate; an empty name means the process's local timezone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
