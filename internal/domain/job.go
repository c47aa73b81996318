package domain

import "time"

// UploadJob is an ArchiveRecord bound to a monotonically increasing sequence
// number and its enqueue time. The queue owns a job exclusively until the
// worker drains it; the worker owns it until it reaches a terminal Outcome.
type UploadJob struct {
	// Seq is the sequence number assigned at enqueue. Higher means newer.
	Seq uint64

	// Record is the snapshot to deliver.
	Record ArchiveRecord

	// EnqueuedAt is when the job entered the queue.
	EnqueuedAt time.Time
}

// Age returns how old the job's observation is at the given instant.
func (j UploadJob) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(j.Record.Timestamp, 0))
}
