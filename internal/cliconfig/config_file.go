package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	StationID    string `toml:"station_id"`
	Password     string `toml:"password"`
	ServerURL    string `toml:"server_url"`
	SpoolDir     string `toml:"spool_dir"`
	Timezone     string `toml:"timezone"`
	PostInterval string `toml:"post_interval"`
	StaleAge     string `toml:"stale_age"`
	Timeout      string `toml:"timeout"`
	RetryWait    string `toml:"retry_wait"`
	MaxBacklog   int    `toml:"max_backlog"`
	MaxTries     int    `toml:"max_tries"`
	SkipUpload   *bool  `toml:"skip_upload"`
	LogSuccess   *bool  `toml:"log_success"`
	LogFailure   *bool  `toml:"log_failure"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.wxship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".wxship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("station-id", fc.StationID, &cfg.StationID)
	s.setString("password", fc.Password, &cfg.Password)
	s.setString("server-url", fc.ServerURL, &cfg.ServerURL)
	s.setString("spool-dir", fc.SpoolDir, &cfg.SpoolDir)
	s.setString("timezone", fc.Timezone, &cfg.Timezone)

	if err := s.setDuration("post-interval", fc.PostInterval, &cfg.PostInterval); err != nil {
		return err
	}
	if err := s.setDuration("stale-age", fc.StaleAge, &cfg.StaleAge); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("retry-wait", fc.RetryWait, &cfg.RetryWait); err != nil {
		return err
	}

	s.setInt("max-backlog", fc.MaxBacklog, &cfg.MaxBacklog)
	s.setInt("max-tries", fc.MaxTries, &cfg.MaxTries)

	s.setBool("skip-upload", fc.SkipUpload, &cfg.SkipUpload)
	s.setBool("log-success", fc.LogSuccess, &cfg.LogSuccess)
	s.setBool("log-failure", fc.LogFailure, &cfg.LogFailure)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
