// Package queue provides a bounded-concurrency FIFO runner for email
// analysis jobs. Submission never blocks the caller; at most `limit` jobs
// run at once (1 by default, serializing calls to the rate-limited
// analysis service).
package queue

import (
	"context"
	"sync"

	"mailsift/internal/analyzer"
	"mailsift/internal/models"

	"github.com/rs/zerolog"
)

// Runner executes one analysis job end to end
type Runner func(ctx context.Context, email models.Email) (*analyzer.Report, error)

// Job is the handle returned by Submit. Its result becomes available once
// the job has finished; a failure is reported only on this handle and never
// disturbs the queue or other jobs.
type Job struct {
	Email models.Email

	report *analyzer.Report
	err    error
	done   chan struct{}
}

// Done is closed when the job has finished, successfully or not
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job finishes or the context is cancelled
func (j *Job) Wait(ctx context.Context) (*analyzer.Report, error) {
	select {
	case <-j.done:
		return j.report, j.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Queue is a FIFO task runner with a fixed concurrency limit. The pending
// list and running count are its only shared state; both are guarded by mu
// so admission and completion updates cannot interleave.
type Queue struct {
	run    Runner
	limit  int
	logger zerolog.Logger

	mu      sync.Mutex
	pending []*Job
	running int
	waiters []chan struct{} // drain waiters released when the queue goes idle
}

// New creates a queue executing jobs with run at the given concurrency limit
func New(limit int, run Runner, logger zerolog.Logger) *Queue {
	if limit < 1 {
		limit = 1
	}
	return &Queue{
		run:    run,
		limit:  limit,
		logger: logger,
	}
}

// Submit enqueues an analysis job for the email and returns immediately.
// Jobs start in FIFO order; a new job begins as soon as a slot frees up.
func (q *Queue) Submit(email models.Email) *Job {
	job := &Job{
		Email: email,
		done:  make(chan struct{}),
	}

	q.mu.Lock()
	q.pending = append(q.pending, job)
	q.mu.Unlock()

	q.dispatch()
	return job
}

// dispatch starts pending jobs while slots are free
func (q *Queue) dispatch() {
	q.mu.Lock()
	for q.running < q.limit && len(q.pending) > 0 {
		job := q.pending[0]
		q.pending = q.pending[1:]
		q.running++
		go q.execute(job)
	}
	q.mu.Unlock()
}

// execute runs one job, records its outcome and releases the slot
func (q *Queue) execute(job *Job) {
	job.report, job.err = q.run(context.Background(), job.Email)
	if job.err != nil {
		q.logger.Error().
			Err(job.err).
			Str("email_id", job.Email.ID).
			Msg("Analysis job failed")
	} else {
		q.logger.Info().
			Str("email_id", job.Email.ID).
			Msg("Analysis job completed")
	}
	close(job.done)

	q.mu.Lock()
	q.running--
	if q.running == 0 && len(q.pending) == 0 {
		for _, waiter := range q.waiters {
			close(waiter)
		}
		q.waiters = nil
	}
	q.mu.Unlock()

	q.dispatch()
}

// Drain blocks until no job is pending or running, or until the context is
// cancelled. Job failures do not fail the drain; they are reported on the
// individual job handles.
func (q *Queue) Drain(ctx context.Context) error {
	q.mu.Lock()
	if q.running == 0 && len(q.pending) == 0 {
		q.mu.Unlock()
		return nil
	}
	idle := make(chan struct{})
	q.waiters = append(q.waiters, idle)
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of pending (not yet started) jobs
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
