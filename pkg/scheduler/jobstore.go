package scheduler

import (
	"context"
	"time"

	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
)

// JobStoreScheduler implements Scheduler on top of the durable jobs table.
// The sweeper later moves due jobs onto the dispatch queue, so a scheduled job
// survives process restarts.
type JobStoreScheduler struct {
	Jobs storage.JobStore
}

// NewJobStoreScheduler creates a new JobStoreScheduler.
func NewJobStoreScheduler(jobs storage.JobStore) *JobStoreScheduler {
	return &JobStoreScheduler{Jobs: jobs}
}

// Make sure we conform to the interface
var _ Scheduler = (*JobStoreScheduler)(nil)

// Schedule arms the deadline job of the given kind for the entity.
func (s *JobStoreScheduler) Schedule(ctx context.Context, kind models.JobKind, entityID string, fireAt time.Time) error {
	job := &models.DeadlineJob{
		JobKey:    kind.Key(entityID),
		Kind:      kind,
		EntityID:  entityID,
		FireAt:    fireAt,
		CreatedAt: time.Now(),
	}
	return s.Jobs.ScheduleJob(ctx, job)
}

// Cancel disarms the job of the given kind for the entity.
func (s *JobStoreScheduler) Cancel(ctx context.Context, kind models.JobKind, entityID string) error {
	return s.Jobs.CancelJob(ctx, kind.Key(entityID))
}
