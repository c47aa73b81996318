package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wx-labs/wxship/internal/domain"
)

func testRecord(ts int64) domain.ArchiveRecord {
	return domain.ArchiveRecord{
		Timestamp: ts,
		Units:     domain.UnitsMetricWX,
		Fields:    map[string]float64{"windSpeed": 5.0},
	}
}

func TestQueue_PushAssignsSequence(t *testing.T) {
	q := NewQueue(0)

	j1, dropped := q.Push(testRecord(100))
	require.Empty(t, dropped)
	j2, dropped := q.Push(testRecord(200))
	require.Empty(t, dropped)

	require.Equal(t, uint64(1), j1.Seq)
	require.Equal(t, uint64(2), j2.Seq)
	require.Equal(t, 2, q.Len())
}

func TestQueue_PushClonesRecord(t *testing.T) {
	q := NewQueue(0)
	rec := testRecord(100)

	job, _ := q.Push(rec)
	rec.Fields["windSpeed"] = 99.0

	require.Equal(t, 5.0, job.Record.Fields["windSpeed"])
}

func TestQueue_BoundedEvictsOldest(t *testing.T) {
	q := NewQueue(2)

	q.Push(testRecord(100))
	q.Push(testRecord(200))
	_, dropped := q.Push(testRecord(300))

	require.Len(t, dropped, 1)
	require.Equal(t, int64(100), dropped[0].Record.Timestamp)
	require.Equal(t, 2, q.Len())

	jobs := q.Drain()
	require.Len(t, jobs, 2)
	require.Equal(t, int64(200), jobs[0].Record.Timestamp)
	require.Equal(t, int64(300), jobs[1].Record.Timestamp)
}

func TestQueue_DrainTakesOwnership(t *testing.T) {
	q := NewQueue(0)
	q.Push(testRecord(100))
	q.Push(testRecord(200))

	jobs := q.Drain()
	require.Len(t, jobs, 2)
	require.Equal(t, 0, q.Len())
	require.Empty(t, q.Drain())
}

func TestQueue_ReadySignalsAfterPush(t *testing.T) {
	q := NewQueue(0)

	select {
	case <-q.Ready():
		t.Fatal("ready before any push")
	default:
	}

	q.Push(testRecord(100))
	q.Push(testRecord(200)) // second push coalesces into the same signal

	select {
	case <-q.Ready():
	default:
		t.Fatal("no ready signal after push")
	}
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := NewQueue(8)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(ts int64) {
			defer wg.Done()
			q.Push(testRecord(ts))
		}(int64(i))
	}
	wg.Wait()

	require.Equal(t, 8, q.Len())
	jobs := q.Drain()
	require.Len(t, jobs, 8)
	for i := 1; i < len(jobs); i++ {
		require.Less(t, jobs[i-1].Seq, jobs[i].Seq)
	}
}
