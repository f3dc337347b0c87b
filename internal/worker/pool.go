package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Task is one queued OCR job.
type Task struct {
	JobID    string
	FilePath string
}

// Runner processes a single task end to end.
type Runner interface {
	Process(ctx context.Context, jobID, filePath string) error
}

// Pool dispatches queued tasks to a fixed set of workers. OCR jobs drive a
// real browser session against the provider, so the default is a single
// worker; failed tasks are not retried.
type Pool struct {
	runner Runner
	logger *slog.Logger
	tasks  chan Task
	group  *errgroup.Group
	cancel context.CancelFunc
}

// NewPool creates a Pool with the given queue depth.
func NewPool(runner Runner, logger *slog.Logger, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		runner: runner,
		logger: logger,
		tasks:  make(chan Task, queueSize),
	}
}

// Start launches the workers. Workers run until Stop is called and the
// queue drains.
func (p *Pool) Start(ctx context.Context, workers int) {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.group, ctx = errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		id := i
		p.group.Go(func() error {
			p.work(ctx, id)
			return nil
		})
	}
}

// Enqueue adds a task to the queue, failing immediately when it is full.
func (p *Pool) Enqueue(task Task) error {
	select {
	case p.tasks <- task:
		return nil
	default:
		return fmt.Errorf("job queue is full")
	}
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	close(p.tasks)
	if p.group != nil {
		_ = p.group.Wait()
	}
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Pool) work(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.logger.InfoContext(ctx, "worker picked up job",
				"worker", id, "job_id", task.JobID)
			if err := p.runner.Process(ctx, task.JobID, task.FilePath); err != nil {
				// Process already marked the job failed; nothing to retry.
				p.logger.ErrorContext(ctx, "job processing failed",
					"worker", id, "job_id", task.JobID, "error", err)
			}
		}
	}
}
