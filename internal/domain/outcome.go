package domain

// Outcome is the terminal state of an UploadJob. Every job that enters the
// system reaches exactly one Outcome, and every Outcome is logged; none are
// ever silently lost.
type Outcome int

const (
	// OutcomeDelivered means the destination accepted a validated response.
	OutcomeDelivered Outcome = iota

	// OutcomeAbandoned means every allowed attempt failed; the job is discarded.
	OutcomeAbandoned

	// OutcomeDroppedStale means the job exceeded the stale age before any
	// network attempt was made.
	OutcomeDroppedStale

	// OutcomeDroppedBacklog means the job was the oldest in a full queue and
	// was evicted to admit a newer one.
	OutcomeDroppedBacklog

	// OutcomeSuperseded means a newer job arrived before this one was sent;
	// the destination only accepts one observation per interval, so recency
	// beats completeness.
	OutcomeSuperseded

	// OutcomeAbortedInvalid means the record failed the required-field check
	// and was never sent. Not counted as a network failure.
	OutcomeAbortedInvalid
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "Delivered"
	case OutcomeAbandoned:
		return "Abandoned"
	case OutcomeDroppedStale:
		return "DroppedStale"
	case OutcomeDroppedBacklog:
		return "DroppedBacklog"
	case OutcomeSuperseded:
		return "Superseded"
	case OutcomeAbortedInvalid:
		return "AbortedInvalid"
	default:
		return "Unknown"
	}
}
