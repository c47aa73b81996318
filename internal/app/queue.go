package app

import (
	"sync"
	"time"

	"github.com/wx-labs/wxship/internal/domain"
)

// Queue is the bounded, latest-biased job queue between the producer (the
// host's new-record notifications) and the single delivery worker.
//
// Push never blocks: when the backlog is full the oldest jobs are evicted to
// admit the newest, so memory stays bounded even if the worker stalls on
// network I/O. Drain transfers ownership of the entire backlog to the worker.
type Queue struct {
	mu   sync.Mutex
	jobs []domain.UploadJob
	max  int // 0 means unbounded
	seq  uint64

	ready chan struct{}
}

// NewQueue creates a queue holding at most maxBacklog jobs (0 = unbounded).
func NewQueue(maxBacklog int) *Queue {
	return &Queue{
		max:   maxBacklog,
		ready: make(chan struct{}, 1),
	}
}

// Push clones the record, wraps it as an UploadJob with the next sequence
// number and enqueues it. The backlog cap is applied here, not deferred to
// the worker: any evicted jobs are returned so the caller can log them as
// DroppedBacklog.
func (q *Queue) Push(record domain.ArchiveRecord) (domain.UploadJob, []domain.UploadJob) {
	q.mu.Lock()
	q.seq++
	job := domain.UploadJob{
		Seq:        q.seq,
		Record:     record.Clone(),
		EnqueuedAt: time.Now(),
	}
	q.jobs = append(q.jobs, job)

	var dropped []domain.UploadJob
	if q.max > 0 && len(q.jobs) > q.max {
		n := len(q.jobs) - q.max
		dropped = append(dropped, q.jobs[:n]...)
		q.jobs = append(q.jobs[:0], q.jobs[n:]...)
	}
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return job, dropped
}

// Drain removes and returns all queued jobs, oldest first.
// The caller owns the returned jobs exclusively.
func (q *Queue) Drain() []domain.UploadJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	jobs := q.jobs
	q.jobs = nil
	return jobs
}

// Len returns the current backlog size.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Ready returns a channel that receives a signal after each Push.
// The channel is buffered with capacity one; a single receive may cover
// several pushes, which is fine because Drain takes the whole backlog.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}
