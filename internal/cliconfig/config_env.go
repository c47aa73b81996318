package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (WXSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("station-id", os.Getenv("WXSHIP_STATION_ID"), &cfg.StationID)
	s.setString("password", os.Getenv("WXSHIP_PASSWORD"), &cfg.Password)
	s.setString("server-url", os.Getenv("WXSHIP_SERVER_URL"), &cfg.ServerURL)
	s.setString("spool-dir", os.Getenv("WXSHIP_SPOOL_DIR"), &cfg.SpoolDir)
	s.setString("timezone", os.Getenv("WXSHIP_TIMEZONE"), &cfg.Timezone)

	if err := s.setDuration("post-interval", os.Getenv("WXSHIP_POST_INTERVAL"), &cfg.PostInterval); err != nil {
		return err
	}
	if err := s.setDuration("stale-age", os.Getenv("WXSHIP_STALE_AGE"), &cfg.StaleAge); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("WXSHIP_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("retry-wait", os.Getenv("WXSHIP_RETRY_WAIT"), &cfg.RetryWait); err != nil {
		return err
	}

	if err := s.setIntFromString("max-backlog", os.Getenv("WXSHIP_MAX_BACKLOG"), &cfg.MaxBacklog); err != nil {
		return err
	}
	if err := s.setIntFromString("max-tries", os.Getenv("WXSHIP_MAX_TRIES"), &cfg.MaxTries); err != nil {
		return err
	}

	s.setBoolFromString("skip-upload", os.Getenv("WXSHIP_SKIP_UPLOAD"), &cfg.SkipUpload)
	s.setBoolFromString("log-success", os.Getenv("WXSHIP_LOG_SUCCESS"), &cfg.LogSuccess)
	s.setBoolFromString("log-failure", os.Getenv("WXSHIP_LOG_FAILURE"), &cfg.LogFailure)

	return nil
}
