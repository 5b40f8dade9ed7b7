package scheduler

import (
	"context"
	"time"

	"github.com/andika/rekber-backend/pkg/models"
)

// Scheduler defines the interface the lifecycle engines use to arm and disarm
// deadline-triggered transitions. Keys are deterministic per (entity, phase),
// so scheduling replaces any previous job and Cancel is best-effort.
type Scheduler interface {
	// Schedule arms the deadline job of the given kind for the entity.
	Schedule(ctx context.Context, kind models.JobKind, entityID string, fireAt time.Time) error

	// Cancel disarms the job of the given kind for the entity. Canceling a job
	// that already fired or never existed is a no-op, not an error.
	Cancel(ctx context.Context, kind models.JobKind, entityID string) error
}
