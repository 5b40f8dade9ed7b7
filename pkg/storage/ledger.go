package storage

import (
	"context"

	"github.com/andika/rekber-backend/pkg/models"
)

// LedgerReader exposes the payout/refund audit trail. Entries are only ever
// written as part of a completing transition, never through this interface.
type LedgerReader interface {
	// ListLedgerEntries returns the most recent ledger entries, newest first.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)
}
