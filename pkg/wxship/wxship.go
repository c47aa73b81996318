// Package wxship provides an embeddable upload service that delivers weather
// archive records to WindFinder-style HTTP telemetry sinks.
//
// A Service owns a bounded queue and a single background delivery worker.
// The host hands each new archive record to OnNewRecord and is never blocked
// by, or exposed to, delivery failures. Several Service instances (one per
// destination) run fully independently.
package wxship

import (
	"context"
	"net/http"
	"sync"

	"github.com/wx-labs/wxship/internal/adapters/httpx"
	"github.com/wx-labs/wxship/internal/adapters/units"
	"github.com/wx-labs/wxship/internal/adapters/windfinder"
	"github.com/wx-labs/wxship/internal/app"
	"github.com/wx-labs/wxship/internal/domain"
	"github.com/wx-labs/wxship/internal/ports"
)

// Record is one periodic sensor snapshot handed in by the host.
type Record = domain.ArchiveRecord

// Outcome is the terminal state of one upload job.
type Outcome = domain.Outcome

// Outcome values.
const (
	OutcomeDelivered      = domain.OutcomeDelivered
	OutcomeAbandoned      = domain.OutcomeAbandoned
	OutcomeDroppedStale   = domain.OutcomeDroppedStale
	OutcomeDroppedBacklog = domain.OutcomeDroppedBacklog
	OutcomeSuperseded     = domain.OutcomeSuperseded
	OutcomeAbortedInvalid = domain.OutcomeAbortedInvalid
)

// State is the service lifecycle state.
type State = app.State

// Lifecycle states.
const (
	StateStopped  = app.StateStopped
	StateStarting = app.StateStarting
	StateRunning  = app.StateRunning
	StateStopping = app.StateStopping
	StateCrashed  = app.StateCrashed
)

// Errors returned by the public API.
var (
	ErrMissingCredentials = domain.ErrMissingCredentials
	ErrAlreadyRunning     = domain.ErrAlreadyRunning
	ErrNotRunning         = domain.ErrNotRunning
	ErrShutdownTimeout    = domain.ErrShutdownTimeout
	ErrInvalidConfig      = domain.ErrInvalidConfig
)

// Service is the thin facade over one destination's delivery worker.
// Use New() to create an instance, then Start() to begin uploading.
type Service struct {
	config  Config
	opts    options
	logger  ports.Logger
	emitter *eventEmitterWrapper

	lifecycle *app.Lifecycle
	queue     *app.Queue
	worker    *app.Worker

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Service for one destination.
// The instance is created in StateStopped; call Start() to begin uploading.
// Missing credentials return ErrMissingCredentials and nothing is started:
// absent station_id or password disables this destination entirely.
func New(cfg Config, opts ...Option) (*Service, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions(&http.Client{Timeout: cfg.Timeout})
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	lifecycle := app.NewLifecycle(logger, emitter)
	queue := app.NewQueue(cfg.MaxBacklog)

	conv := units.NewConverter()
	builder := windfinder.NewPayloadBuilder(
		cfg.StationID, cfg.Password, cfg.ServerURL, cfg.Timezone, conv, logger)
	checker := windfinder.NewResponseChecker()
	sender := httpx.NewSender(o.httpClient)

	worker := app.NewWorker(
		app.WorkerConfig{
			PostInterval: cfg.PostInterval,
			StaleAge:     cfg.StaleAge,
			MaxTries:     cfg.MaxTries,
			RetryWait:    cfg.RetryWait,
			Timeout:      cfg.Timeout,
			SkipUpload:   cfg.SkipUpload,
			LogSuccess:   cfg.LogSuccess,
			LogFailure:   cfg.LogFailure,
			RedactParams: []string{"password"},
			Secrets:      []string{cfg.Password},
		},
		queue, builder, checker, sender, windfinder.Precheck, logger, emitter,
	)

	return &Service{
		config:    cfg,
		opts:      o,
		logger:    logger,
		emitter:   emitter,
		lifecycle: lifecycle,
		queue:     queue,
		worker:    worker,
	}, nil
}

// Start begins delivering records in the background.
// Returns immediately after starting the worker goroutine.
// Returns an error if already running. The provided context bounds the
// lifetime of the delivery loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.ctx = runCtx
	s.cancel = cancel
	s.lifecycle.SetCancel(cancel)

	s.logger.Info("upload service starting",
		ports.String("station_id", s.config.StationID),
		ports.String("server_url", s.config.ServerURL),
		ports.Duration("post_interval", s.config.PostInterval),
		ports.Bool("skip_upload", s.config.SkipUpload),
	)

	s.lifecycle.AddWorker()
	go func() {
		defer s.lifecycle.WorkerDone()

		if err := s.lifecycle.TransitionTo(app.StateRunning, "worker starting"); err != nil {
			s.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		err := s.worker.Run(runCtx)
		if err != nil && err != context.Canceled {
			s.logger.Error("worker error", ports.Err(err))
			_ = s.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop gracefully shuts down the worker. An in-flight attempt is abandoned
// within the configured timeout. Returns nil on graceful shutdown,
// ErrShutdownTimeout if the worker had to be forced.
func (s *Service) Stop() error {
	s.mu.Lock()

	if !s.lifecycle.CanStop() {
		s.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	err := s.lifecycle.WaitWithTimeout(app.ShutdownTimeout)
	if err != nil {
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = s.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Service) Status() State {
	return s.lifecycle.State()
}

// Backlog returns the number of jobs currently queued.
func (s *Service) Backlog() int {
	return s.queue.Len()
}

// OnNewRecord enqueues one archive record for upload. Fire and forget: it
// never blocks on network I/O and never surfaces delivery errors to the
// caller. The backlog cap is applied here, so memory stays bounded even if
// the worker stalls.
func (s *Service) OnNewRecord(rec Record) {
	job, dropped := s.queue.Push(rec)

	for _, d := range dropped {
		s.logger.Info("record dropped, backlog full",
			ports.Uint64("seq", d.Seq),
			ports.Uint64("timestamp", uint64(d.Record.Timestamp)),
			ports.Int("max_backlog", s.config.MaxBacklog),
		)
		s.emitter.OnOutcome(d, domain.OutcomeDroppedBacklog, nil)
	}

	s.logger.Debug("record queued",
		ports.Uint64("seq", job.Seq),
		ports.Int("backlog", s.queue.Len()),
	)
}
