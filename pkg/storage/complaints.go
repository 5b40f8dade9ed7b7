package storage

import (
	"context"
	"time"

	"github.com/andika/rekber-backend/pkg/models"
)

// ComplaintStore defines the persistence operations for complaints. The
// conditional-update discipline matches TransactionWriter: every transition
// guards on the expected current status.
type ComplaintStore interface {
	// CreateComplaint atomically creates the complaint and parks its
	// transaction shipped -> complain. Returns ErrActiveComplaintExists when
	// the transaction is already parked.
	CreateComplaint(ctx context.Context, c *models.Complaint) error

	// GetComplaint retrieves a complaint by its ID.
	GetComplaint(ctx context.Context, complaintID string) (*models.Complaint, error)

	// ListComplaintsByTransaction retrieves all complaints ever filed on a transaction.
	ListComplaintsByTransaction(ctx context.Context, txID string) ([]models.Complaint, error)

	// RecordSellerResponse stores the seller's decision while waiting_seller_approval
	// and moves the complaint to next.
	RecordSellerResponse(ctx context.Context, complaintID, decision, reason string, evidence []string, next models.ComplaintStatus, at time.Time) error

	// EscalateComplaint moves a complaint the seller left unanswered from
	// waiting_seller_approval to awaiting_admin_approval.
	EscalateComplaint(ctx context.Context, complaintID string, at time.Time) error

	// RecordAdminDecision stores the admin's decision while the complaint is in
	// expected and moves it to next. returnDeadline is set when the decision
	// opens the return-shipment window.
	RecordAdminDecision(ctx context.Context, complaintID string, expected models.ComplaintStatus, decision string, next models.ComplaintStatus, returnDeadline *time.Time, at time.Time) error

	// SetReturnShipment attaches the one-and-only return shipment while
	// return_requested and moves the complaint to return_in_transit.
	SetReturnShipment(ctx context.Context, complaintID string, rs *models.ReturnShipment, at time.Time) error

	// RecordConfirmationRequest stores the buyer's delivered-back claim while
	// return_in_transit and moves the complaint to awaiting_admin_confirmation.
	RecordConfirmationRequest(ctx context.Context, complaintID, reason string, evidence []string, at time.Time) error

	// RecordReturnConfirmation stores the admin's verdict on the buyer's claim.
	// Approval moves to awaiting_seller_confirmation with a seller deadline and
	// stamps the return shipment received; rejection moves back to return_in_transit.
	RecordReturnConfirmation(ctx context.Context, complaintID, adminID string, approved bool, sellerConfirmDeadline *time.Time, at time.Time) error

	// ResolveComplaintAndResumeTransaction atomically retires the complaint
	// (expected -> next) and returns its transaction complain -> shipped.
	ResolveComplaintAndResumeTransaction(ctx context.Context, complaintID string, expected, next models.ComplaintStatus, txID string, at time.Time) error

	// ResolveComplaintAndRefund atomically completes the complaint, completes
	// its transaction complain -> completed with the refund amount, and writes
	// the refund ledger entries.
	ResolveComplaintAndRefund(ctx context.Context, complaintID string, expected models.ComplaintStatus, txID string, refund int64, bankAccount, buyerID string, at time.Time) error
}
