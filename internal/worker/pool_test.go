package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// recordingRunner records processed tasks and fails the ones it is told to.
type recordingRunner struct {
	mu        sync.Mutex
	processed []string
	failIDs   map[string]bool
}

func (r *recordingRunner) Process(ctx context.Context, jobID, filePath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed = append(r.processed, jobID)
	if r.failIDs[jobID] {
		return errors.New("processing failed")
	}
	return nil
}

func (r *recordingRunner) jobs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.processed...)
}

func TestPool_ProcessesQueuedTasks(t *testing.T) {
	runner := &recordingRunner{}
	pool := NewPool(runner, slog.Default(), 10)
	pool.Start(context.Background(), 1)

	for _, id := range []string{"job-1", "job-2", "job-3"} {
		if err := pool.Enqueue(Task{JobID: id, FilePath: "/tmp/" + id}); err != nil {
			t.Fatalf("Enqueue(%s) error = %v", id, err)
		}
	}
	pool.Stop()

	jobs := runner.jobs()
	if len(jobs) != 3 {
		t.Fatalf("processed %d jobs, want 3", len(jobs))
	}
	// A single worker preserves queue order
	for i, want := range []string{"job-1", "job-2", "job-3"} {
		if jobs[i] != want {
			t.Errorf("jobs[%d] = %s, want %s", i, jobs[i], want)
		}
	}
}

func TestPool_FailedTaskDoesNotStopWorker(t *testing.T) {
	runner := &recordingRunner{failIDs: map[string]bool{"job-1": true}}
	pool := NewPool(runner, slog.Default(), 10)
	pool.Start(context.Background(), 1)

	_ = pool.Enqueue(Task{JobID: "job-1"})
	_ = pool.Enqueue(Task{JobID: "job-2"})
	pool.Stop()

	jobs := runner.jobs()
	if len(jobs) != 2 {
		t.Fatalf("processed %d jobs, want 2 (failure must not retry or stop the worker)", len(jobs))
	}
}

func TestPool_EnqueueFullQueue(t *testing.T) {
	runner := &recordingRunner{}
	pool := NewPool(runner, slog.Default(), 1)
	// Workers never started, so the single buffered slot fills up.

	if err := pool.Enqueue(Task{JobID: "job-1"}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if err := pool.Enqueue(Task{JobID: "job-2"}); err == nil {
		t.Error("Enqueue() on a full queue should fail immediately")
	}
}

func TestPool_MultipleWorkers(t *testing.T) {
	runner := &recordingRunner{}
	pool := NewPool(runner, slog.Default(), 20)
	pool.Start(context.Background(), 4)

	for i := 0; i < 10; i++ {
		if err := pool.Enqueue(Task{JobID: string(rune('a' + i))}); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() did not drain the queue in time")
	}

	if len(runner.jobs()) != 10 {
		t.Errorf("processed %d jobs, want 10", len(runner.jobs()))
	}
}
