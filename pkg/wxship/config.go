package wxship

import (
	"fmt"
	"time"

	"github.com/wx-labs/wxship/internal/adapters/windfinder"
	"github.com/wx-labs/wxship/internal/domain"
)

// DefaultServerURL is the well-known WindFinder upload endpoint.
const DefaultServerURL = windfinder.DefaultServerURL

// Default configuration values.
const (
	DefaultPostInterval = 300 * time.Second
	DefaultTimeout      = 60 * time.Second
	DefaultMaxTries     = 3
	DefaultRetryWait    = 5 * time.Second
)

// Config holds the configuration for one upload destination.
// Use DefaultConfig() to get a Config with sensible defaults; at minimum you
// must set StationID and Password before calling New.
type Config struct {
	// StationID and Password are the station credentials. Both are required;
	// without them the service refuses to start.
	StationID string
	Password  string

	// ServerURL is the destination endpoint. Defaults to DefaultServerURL.
	ServerURL string

	// PostInterval is the minimum spacing between upload attempts.
	PostInterval time.Duration

	// MaxBacklog caps the queue; 0 means effectively unbounded.
	MaxBacklog int

	// StaleAge drops queued records older than this unsent; 0 disables.
	StaleAge time.Duration

	// Timeout bounds each HTTP attempt.
	Timeout time.Duration

	// MaxTries and RetryWait define the retry protocol: up to MaxTries
	// attempts with a fixed RetryWait between them.
	MaxTries  int
	RetryWait time.Duration

	// SkipUpload performs every step except the network send (dry run).
	SkipUpload bool

	// LogSuccess and LogFailure independently gate outcome logging.
	LogSuccess bool
	LogFailure bool

	// Timezone is the station's local timezone, used for the payload's
	// date/time values. Defaults to the process's local timezone.
	Timezone *time.Location
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServerURL:    DefaultServerURL,
		PostInterval: DefaultPostInterval,
		Timeout:      DefaultTimeout,
		MaxTries:     DefaultMaxTries,
		RetryWait:    DefaultRetryWait,
		LogSuccess:   true,
		LogFailure:   true,
	}
}

// SetDefaults fills zero-valued fields with defaults. Credentials and the
// boolean toggles are left alone; start from DefaultConfig() to get the
// logging toggles enabled.
func (c *Config) SetDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.PostInterval <= 0 {
		c.PostInterval = DefaultPostInterval
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxTries <= 0 {
		c.MaxTries = DefaultMaxTries
	}
	if c.RetryWait <= 0 {
		c.RetryWait = DefaultRetryWait
	}
	if c.Timezone == nil {
		c.Timezone = time.Local
	}
}

// Validate checks the configuration for errors.
// Missing credentials return ErrMissingCredentials: a configuration error
// that disables this destination, never a runtime failure.
func (c *Config) Validate() error {
	if c.StationID == "" || c.Password == "" {
		return domain.ErrMissingCredentials
	}
	if c.PostInterval <= 0 {
		return fmt.Errorf("%w: post interval must be positive", domain.ErrInvalidConfig)
	}
	if c.MaxTries < 1 {
		return fmt.Errorf("%w: max tries must be at least 1", domain.ErrInvalidConfig)
	}
	if c.RetryWait < 0 {
		return fmt.Errorf("%w: retry wait must not be negative", domain.ErrInvalidConfig)
	}
	if c.MaxBacklog < 0 {
		return fmt.Errorf("%w: max backlog must not be negative", domain.ErrInvalidConfig)
	}
	if c.StaleAge < 0 {
		return fmt.Errorf("%w: stale age must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}
