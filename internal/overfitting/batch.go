package overfitting

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Job is one independent risk assessment in a batch run.
type Job struct {
	ID    string
	Input Input
}

// JobResult pairs a job ID with its computed report.
type JobResult struct {
	ID     string
	Report *Report
}

// NewJob wraps an input with a fresh job ID.
func NewJob(in Input) Job {
	return Job{
		ID:    uuid.NewString(),
		Input: in,
	}
}

// EvaluateBatch computes reports for independent jobs in parallel. Each job
// is an isolated unit of work over immutable inputs, so no coordination is
// needed beyond bounding the worker count; workers <= 0 runs every job
// concurrently. Results are returned in job order.
func (s *Service) EvaluateBatch(ctx context.Context, jobs []Job, workers int) []JobResult {
	results := make([]JobResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			results[i] = JobResult{
				ID:     job.ID,
				Report: s.Evaluate(ctx, job.Input),
			}
			if s.collector != nil {
				s.collector.BatchJob()
			}
			return nil
		})
	}

	// Evaluate never fails, so the group error is always nil.
	_ = g.Wait()

	return results
}
