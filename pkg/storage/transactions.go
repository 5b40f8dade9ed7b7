package storage

import (
	"context"
	"time"

	"github.com/andika/rekber-backend/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsBySeller retrieves all transactions created by a seller.
	ListTransactionsBySeller(ctx context.Context, sellerID string) ([]models.Transaction, error)

	// ListTransactionsByBuyer retrieves all transactions addressed to a buyer.
	ListTransactionsByBuyer(ctx context.Context, buyerID string) ([]models.Transaction, error)

	// HasActiveTransaction reports whether a non-terminal transaction already
	// exists between the seller and buyer.
	HasActiveTransaction(ctx context.Context, sellerID, buyerID string) (bool, error)
}

// TransactionWriter defines the conditional transition primitives for
// transactions. Every method guards on the expected current status and returns
// ErrConditionFailed when the record has already moved on.
type TransactionWriter interface {
	// CreateTransaction persists a new transaction record.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// MarkTransactionPaid transitions pending_payment -> waiting_shipment and
	// records the payment time and shipment deadline. Fails if paid_at is set.
	MarkTransactionPaid(ctx context.Context, txID string, paidAt, shipmentDeadline time.Time) error

	// MarkTransactionShipped transitions waiting_shipment -> shipped.
	MarkTransactionShipped(ctx context.Context, txID, courier, trackingNumber string, shippedAt time.Time) error

	// CompleteTransaction transitions expected -> completed, records the
	// withdrawn amount and destination, and writes the payout ledger entries
	// in the same atomic write.
	CompleteTransaction(ctx context.Context, txID string, expected models.TransactionStatus, withdrawn int64, bankAccount, payeeID string, at time.Time) error

	// CancelTransaction transitions expected -> canceled with a reason and actor.
	CancelTransaction(ctx context.Context, txID string, expected models.TransactionStatus, reason, actor string, at time.Time) error

	// SetFundReleaseRequested records a seller's early-release request while shipped.
	SetFundReleaseRequested(ctx context.Context, txID string, at time.Time) error

	// SetBuyerConfirmDeadline records the admin-approved confirmation window
	// while shipped.
	SetBuyerConfirmDeadline(ctx context.Context, txID string, deadline time.Time) error

	// ResumeTransaction transitions complain -> shipped after a complaint is
	// retired without a refund.
	ResumeTransaction(ctx context.Context, txID string, at time.Time) error
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionWriter
}
