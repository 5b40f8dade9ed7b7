package escrow

import "errors"

// ErrSameParty is returned when a seller opens a transaction against themselves.
var ErrSameParty = errors.New("buyer and seller cannot be the same user")

// ErrWrongStatus is returned to user-facing callers when the transaction is
// not in the required status for the requested action. Deadline workers never
// see this error; their guard failures are silent no-ops.
var ErrWrongStatus = errors.New("transaction is not in the required status for this action")

// ErrNotRequested is returned when an admin approves a fund release the
// seller never asked for.
var ErrNotRequested = errors.New("no fund release request on this transaction")
