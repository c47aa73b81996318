package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/wx-labs/wxship/internal/domain"
	"github.com/wx-labs/wxship/internal/ports"
)

// WorkerConfig is the immutable configuration snapshot for one delivery
// worker. It is copied at construction and never mutated afterwards.
type WorkerConfig struct {
	// PostInterval is the minimum spacing between two upload attempts.
	PostInterval time.Duration

	// StaleAge drops queued jobs older than this without a network attempt.
	// Zero disables the check.
	StaleAge time.Duration

	// MaxTries bounds the attempts per job. Values below 1 are treated as 1.
	MaxTries int

	// RetryWait is the fixed wait between attempts. No exponential growth:
	// the destination expects paced, evenly spaced traffic.
	RetryWait time.Duration

	// Timeout bounds each individual HTTP attempt.
	Timeout time.Duration

	// SkipUpload performs every step except the network send (dry run).
	SkipUpload bool

	// LogSuccess and LogFailure independently gate outcome logging.
	LogSuccess bool
	LogFailure bool

	// RedactParams names query parameters whose values are redacted in
	// logged URLs.
	RedactParams []string

	// Secrets are literal values scrubbed from logged error text.
	Secrets []string
}

// DeliveryEventEmitter is notified of every terminal job outcome.
type DeliveryEventEmitter interface {
	OnOutcome(job domain.UploadJob, outcome domain.Outcome, err error)
}

// Worker is the generic delivery worker: a single long-lived consumer that
// pulls due jobs from the queue, applies the backlog and staleness policy,
// and runs the transform / send / validate pipeline with bounded retries.
//
// The destination-specific behavior is injected as three strategies: the
// payload builder, the response checker and the required-field precheck.
type Worker struct {
	cfg      WorkerConfig
	queue    *Queue
	builder  ports.PayloadBuilder
	checker  ports.ResponseChecker
	sender   ports.Sender
	precheck ports.RecordPrecheck
	logger   ports.Logger
	emitter  DeliveryEventEmitter
	redact   *Redactor

	lastAttempt time.Time
}

// NewWorker creates a delivery worker with the given dependencies.
// The emitter may be nil.
func NewWorker(
	cfg WorkerConfig,
	queue *Queue,
	builder ports.PayloadBuilder,
	checker ports.ResponseChecker,
	sender ports.Sender,
	precheck ports.RecordPrecheck,
	logger ports.Logger,
	emitter DeliveryEventEmitter,
) *Worker {
	if cfg.MaxTries < 1 {
		cfg.MaxTries = 1
	}
	return &Worker{
		cfg:      cfg,
		queue:    queue,
		builder:  builder,
		checker:  checker,
		sender:   sender,
		precheck: precheck,
		logger:   logger,
		emitter:  emitter,
		redact:   NewRedactor(cfg.RedactParams, cfg.Secrets),
	}
}

// Run executes the delivery loop until the context is canceled.
// Delivery failures never propagate to the producer; the only error Run
// returns is the context's.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			if n := w.queue.Len(); n > 0 {
				w.logger.Info("shutting down with jobs still queued", ports.Int("backlog", n))
			}
			return ctx.Err()
		case <-w.queue.Ready():
		}

		// Pacing: never issue two attempts closer together than PostInterval.
		if !w.lastAttempt.IsZero() {
			if wait := w.cfg.PostInterval - time.Since(w.lastAttempt); wait > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(wait):
				}
			}
		}

		job, ok := w.takeLatest()
		if !ok {
			continue
		}
		w.process(ctx, job)
	}
}

// takeLatest drains the backlog and keeps the newest job that passes the
// staleness check. The destination accepts one observation per interval, so
// older jobs are superseded rather than replayed one by one.
func (w *Worker) takeLatest() (domain.UploadJob, bool) {
	jobs := w.queue.Drain()
	if len(jobs) == 0 {
		return domain.UploadJob{}, false
	}

	now := time.Now()
	var chosen domain.UploadJob
	var found bool
	for i := len(jobs) - 1; i >= 0; i-- {
		j := jobs[i]
		switch {
		case w.isStale(j, now):
			w.finish(j, domain.OutcomeDroppedStale, nil)
		case !found:
			chosen, found = j, true
		default:
			w.finish(j, domain.OutcomeSuperseded, nil)
		}
	}
	return chosen, found
}

func (w *Worker) isStale(job domain.UploadJob, now time.Time) bool {
	return w.cfg.StaleAge > 0 && job.Age(now) > w.cfg.StaleAge
}

// process takes one job from validity check through terminal outcome.
func (w *Worker) process(ctx context.Context, job domain.UploadJob) {
	// Pacing may have aged the job past StaleAge while it waited.
	if w.isStale(job, time.Now()) {
		w.finish(job, domain.OutcomeDroppedStale, nil)
		return
	}

	if w.precheck != nil {
		if err := w.precheck(job.Record); err != nil {
			w.finish(job, domain.OutcomeAbortedInvalid, err)
			return
		}
	}

	rawURL, err := w.builder.Build(job.Record)
	if err != nil {
		w.finish(job, domain.OutcomeAbortedInvalid, fmt.Errorf("build payload: %w", err))
		return
	}

	w.lastAttempt = time.Now()

	if w.cfg.SkipUpload {
		w.logger.Debug("skip_upload set, not sending",
			ports.Uint64("seq", job.Seq),
			ports.String("url", w.redact.URL(rawURL)),
		)
		w.finish(job, domain.OutcomeDelivered, nil)
		return
	}

	if err := w.send(ctx, rawURL); err != nil {
		w.finish(job, domain.OutcomeAbandoned, err)
		return
	}
	w.finish(job, domain.OutcomeDelivered, nil)
}

// send performs up to MaxTries attempts with a fixed RetryWait between them.
// Transport failures and validator rejections both count against the budget;
// a validated response ends the loop immediately.
func (w *Worker) send(ctx context.Context, rawURL string) error {
	var attempt int

	op := func() error {
		attempt++

		actx, cancel := context.WithTimeout(ctx, w.cfg.Timeout)
		defer cancel()

		resp, err := w.sender.Send(actx, rawURL)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("send: %w", err)
		}
		return w.checker.Check(resp)
	}

	notify := func(err error, wait time.Duration) {
		w.logger.Debug("upload attempt failed, will retry",
			ports.Int("attempt", attempt),
			ports.Int("max_tries", w.cfg.MaxTries),
			ports.Duration("retry_wait", wait),
			ports.String("reason", w.redact.Text(err.Error())),
		)
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(w.cfg.RetryWait), uint64(w.cfg.MaxTries-1)),
		ctx,
	)
	return backoff.RetryNotify(op, bo, notify)
}

// finish records the terminal outcome of a job. Every job that entered the
// queue passes through here exactly once.
func (w *Worker) finish(job domain.UploadJob, outcome domain.Outcome, err error) {
	fields := []ports.Field{
		ports.Uint64("seq", job.Seq),
		ports.Uint64("timestamp", uint64(job.Record.Timestamp)),
		ports.String("outcome", outcome.String()),
	}
	if err != nil {
		fields = append(fields, ports.String("reason", w.redact.Text(err.Error())))
	}

	switch outcome {
	case domain.OutcomeDelivered:
		if w.cfg.LogSuccess {
			w.logger.Info("record delivered", fields...)
		}
	case domain.OutcomeAbandoned:
		if w.cfg.LogFailure {
			w.logger.Error("record abandoned", append(fields, ports.Int("tries", w.cfg.MaxTries))...)
		}
	case domain.OutcomeAbortedInvalid:
		if w.cfg.LogFailure {
			w.logger.Info("record aborted before send", fields...)
		}
	case domain.OutcomeDroppedStale:
		w.logger.Info("record dropped as stale",
			append(fields, ports.Duration("stale_age", w.cfg.StaleAge))...)
	case domain.OutcomeSuperseded:
		w.logger.Debug("record superseded by newer observation", fields...)
	default:
		w.logger.Info("record finished", fields...)
	}

	if w.emitter != nil {
		w.emitter.OnOutcome(job, outcome, err)
	}
}
