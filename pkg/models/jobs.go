package models

import (
	"time"
)

// JobKind names a deadline-triggered transition. The kind doubles as the key
// prefix, so at most one live job exists per (entity, phase).
type JobKind string

const (
	// Transaction deadlines.
	JobCancelPayment  JobKind = "cancel"
	JobCancelShipment JobKind = "shipment-cancel"
	JobAutoComplete   JobKind = "auto-complete"

	// Complaint deadlines.
	JobCancelReturnShipment   JobKind = "cancel-return-shipment"
	JobConfirmReturnDeadline  JobKind = "confirm-return-deadline"
	JobSellerResponseDeadline JobKind = "seller-response-deadline"
)

// Key builds the deterministic idempotency key for a job on the given entity.
func (k JobKind) Key(entityID string) string {
	return string(k) + ":" + entityID
}

// DeadlineJob is the durable record of a deferred transition. A job is a hint
// to re-check the entity, never proof that the transition is still valid.
//
// FireAt is stored as epoch seconds (the unixtime tag marshals it to a number)
// because it is the range key of the due-jobs GSI: a numeric key compares by
// instant, where the default RFC3339 string compares by wall-clock digits and
// mis-orders timestamps with different zone offsets or fraction lengths.
type DeadlineJob struct {
	JobKey    string    `dynamodbav:"job_key"`
	Kind      JobKind   `dynamodbav:"kind"`
	EntityID  string    `dynamodbav:"entity_id"`
	FireAt    time.Time `dynamodbav:"fire_at,unixtime"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	GSI1PK    string    `dynamodbav:"gsi1pk"`
}

// JobsPartition is the constant partition key for the due-jobs GSI.
const JobsPartition = "DEADLINE_JOBS"

// JobPayload is the wire shape a worker receives from the dispatch queue.
type JobPayload struct {
	JobID    string    `json:"jobId"`
	EntityID string    `json:"entityId"`
	FireAt   time.Time `json:"fireAt"`
}

// Payload converts the stored job into its wire shape.
func (j *DeadlineJob) Payload() JobPayload {
	return JobPayload{JobID: j.JobKey, EntityID: j.EntityID, FireAt: j.FireAt}
}

// KindFromJobID extracts the job kind from a wire job id of the form
// "<kind>:<entityId>". The second return is false when the id is malformed.
func KindFromJobID(jobID string) (JobKind, bool) {
	for i := len(jobID) - 1; i >= 0; i-- {
		if jobID[i] == ':' {
			return JobKind(jobID[:i]), i > 0 && i < len(jobID)-1
		}
	}
	return "", false
}
