package complaints

import "errors"

// ErrInvalidType is returned when the complaint type is not recognized.
var ErrInvalidType = errors.New("unknown complaint type")

// ErrInvalidDecision is returned when a response decision is neither approve
// nor reject.
var ErrInvalidDecision = errors.New("decision must be approve or reject")

// ErrWrongStatus is returned to user-facing callers when the complaint is not
// in the required status for the requested action.
var ErrWrongStatus = errors.New("complaint is not in the required status for this action")

// ErrTransactionNotShipped is returned when a buyer files a complaint on a
// transaction that is not in the shipped status.
var ErrTransactionNotShipped = errors.New("complaints can only be filed on shipped transactions")
