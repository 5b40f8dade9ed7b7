package storage

import (
	"context"
	"time"

	"github.com/andika/rekber-backend/pkg/models"
)

// JobStore defines the durable delay-queue operations. Jobs are keyed by a
// deterministic idempotency key so scheduling is naturally last-write-wins and
// cancellation is best-effort.
type JobStore interface {
	// ScheduleJob persists a deadline job, replacing any job under the same key.
	ScheduleJob(ctx context.Context, job *models.DeadlineJob) error

	// CancelJob removes the job under the key. Canceling a job that has already
	// been dequeued (or never existed) is a harmless no-op.
	CancelJob(ctx context.Context, jobKey string) error

	// DueJobs lists jobs whose fire time is at or before now, oldest first.
	DueJobs(ctx context.Context, now time.Time, limit int32) ([]models.DeadlineJob, error)

	// DeleteJob removes a dispatched job. Like CancelJob, missing keys are a no-op;
	// kept separate so dispatch and cancellation read distinctly at call sites.
	DeleteJob(ctx context.Context, jobKey string) error
}
