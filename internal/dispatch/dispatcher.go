// Package dispatch turns a priced order into report jobs and submits them
// to the reports provider one at a time.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"searchorder/internal/dispatch/metrics"
	"searchorder/internal/providers"
	dErrors "searchorder/pkg/domain-errors"
)

// Event reports a job status change. Events of a batch arrive in job order.
type Event struct {
	JobID     string `json:"job_id"`
	Index     int    `json:"index"`
	Status    Status `json:"status"`
	ResultRef string `json:"result_ref,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Batch is one submitted order. Jobs are processed sequentially in the
// background; Events delivers progress and is closed when the batch ends.
type Batch struct {
	ID string

	mu     sync.Mutex
	jobs   []Job
	events chan Event
	done   chan struct{}
}

// Jobs returns a snapshot of the jobs and their current status.
func (b *Batch) Jobs() []Job {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.jobs)
}

// Events returns the progress stream.
func (b *Batch) Events() <-chan Event {
	return b.events
}

// Done is closed once every job has a final status.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Finished reports whether the batch has ended.
func (b *Batch) Finished() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the batch ends and returns the final jobs.
func (b *Batch) Wait() []Job {
	<-b.done
	return b.Jobs()
}

func (b *Batch) update(i int, fn func(*Job)) Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.jobs[i])
	j := b.jobs[i]
	return Event{JobID: j.ID, Index: i, Status: j.Status, ResultRef: j.ResultRef, Error: j.Error}
}

// Dispatcher submits job batches to the reports provider.
type Dispatcher struct {
	creator providers.ReportCreator
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics sets the dispatcher metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = t
	}
}

// New creates a dispatcher.
func New(creator providers.ReportCreator, opts ...Option) (*Dispatcher, error) {
	if creator == nil {
		return nil, errors.New("report creator is required")
	}
	d := &Dispatcher{
		creator: creator,
		logger:  slog.Default(),
		tracer:  otel.Tracer("searchorder/dispatch"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// Submit starts processing jobs and returns immediately. Processing outlives
// ctx cancellation; a failed job is recorded and the next one still runs.
func (d *Dispatcher) Submit(ctx context.Context, jobs []Job) *Batch {
	b := &Batch{
		ID:     uuid.NewString(),
		jobs:   slices.Clone(jobs),
		events: make(chan Event, 2*len(jobs)),
		done:   make(chan struct{}),
	}
	for i := range b.jobs {
		b.jobs[i].Status = StatusQueued
	}
	d.metrics.BatchStarted()
	d.logger.InfoContext(ctx, "order dispatch started",
		"batch_id", b.ID,
		"jobs", len(jobs),
	)
	go d.run(context.WithoutCancel(ctx), b)
	return b
}

func (d *Dispatcher) run(ctx context.Context, b *Batch) {
	defer func() {
		close(b.events)
		close(b.done)
		d.metrics.BatchFinished()
	}()

	failed := 0
	for i := range b.jobs {
		if !d.runJob(ctx, b, i) {
			failed++
		}
	}
	d.logger.InfoContext(ctx, "order dispatch finished",
		"batch_id", b.ID,
		"jobs", len(b.jobs),
		"failed", failed,
	)
}

func (d *Dispatcher) runJob(ctx context.Context, b *Batch, i int) bool {
	job := b.Jobs()[i]
	ctx, span := d.tracer.Start(ctx, "dispatch.job", trace.WithAttributes(
		attribute.String("batch.id", b.ID),
		attribute.String("job.id", job.ID),
		attribute.String("job.type", string(job.Type)),
	))
	defer span.End()

	b.events <- b.update(i, func(j *Job) { j.Status = StatusProcessing })

	start := time.Now()
	res, err := d.creator.CreateReportJob(ctx, providers.ReportRequest{Type: string(job.Type), Payload: job.Payload})
	elapsed := time.Since(start)

	if err != nil {
		jobErr := dErrors.Wrap(err, dErrors.CodeJob, "report job failed")
		span.RecordError(jobErr)
		span.SetStatus(codes.Error, "report job failed")
		d.metrics.ObserveJob(string(job.Type), string(StatusError), elapsed)
		d.logger.WarnContext(ctx, "report job failed",
			"batch_id", b.ID,
			"job_id", job.ID,
			"type", job.Type,
			"error", err,
		)
		b.events <- b.update(i, func(j *Job) {
			j.Status = StatusError
			j.Error = jobErr.Error()
		})
		return false
	}

	d.metrics.ObserveJob(string(job.Type), string(StatusDone), elapsed)
	b.events <- b.update(i, func(j *Job) {
		j.Status = StatusDone
		j.ResultRef = res.Report
	})
	return true
}
