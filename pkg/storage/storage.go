package storage

// ApiStore defines the complete set of operations needed by the HTTP API.
// Components should depend on the more granular interfaces where they can.
type ApiStore interface {
	TransactionStore
	ComplaintStore
	UserStore
	LedgerReader
}

// Storage defines the root interface for the entire data layer, including the
// durable delay queue used by the scheduler and the deadline workers.
type Storage interface {
	ApiStore
	JobStore
}
