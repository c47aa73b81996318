package wxship

import (
	"github.com/wx-labs/wxship/internal/app"
	"github.com/wx-labs/wxship/internal/domain"
)

// StateChangeEvent is emitted when the service's lifecycle state changes.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// DeliveryEvent is emitted once per job, when the job reaches its terminal
// outcome.
type DeliveryEvent struct {
	// Seq is the job's sequence number.
	Seq uint64

	// Timestamp is the record's observation time in epoch seconds.
	Timestamp int64

	// Outcome is the job's terminal state.
	Outcome Outcome

	// Err carries the final failure for Abandoned and AbortedInvalid
	// outcomes; nil otherwise.
	Err error
}

// EventHandler receives service events. Callbacks are synchronous and may
// run on either the worker goroutine or the goroutine calling OnNewRecord
// (backlog evictions fire from the producer side), so they must return
// quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnDelivery(event DeliveryEvent)
}

// BaseEventHandler provides no-op defaults. Embed it to implement only the
// callbacks you care about.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnDelivery(DeliveryEvent)       {}

// eventEmitterWrapper adapts an EventHandler to the internal emitter
// interfaces. A nil handler makes every callback a no-op.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnOutcome(job domain.UploadJob, outcome domain.Outcome, err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnDelivery(DeliveryEvent{
		Seq:       job.Seq,
		Timestamp: job.Record.Timestamp,
		Outcome:   outcome,
		Err:       err,
	})
}
