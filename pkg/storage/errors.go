package storage

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("entity not found")

// ErrConditionFailed is returned when a conditional update finds the entity in
// a different state than expected. Deadline workers treat this as "already
// transitioned"; user-facing callers surface it as a precondition failure.
var ErrConditionFailed = errors.New("entity not in the expected state")

// ErrActiveTransactionExists is returned when a non-terminal transaction
// already exists between the same seller and buyer.
var ErrActiveTransactionExists = errors.New("active transaction already exists between these users")

// ErrActiveComplaintExists is returned when the transaction already carries a
// live complaint.
var ErrActiveComplaintExists = errors.New("transaction already has an active complaint")

// ErrUserExists is returned when creating a user whose email is taken.
var ErrUserExists = errors.New("user already exists")
