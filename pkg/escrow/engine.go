// Package escrow implements the transaction lifecycle state machine. Every
// manual transition is a conditional store update followed by rescheduling of
// the relevant deadline job; every automatic transition lives in worker.go and
// re-validates its guard at fire time.
package escrow

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andika/rekber-backend/pkg/fees"
	"github.com/andika/rekber-backend/pkg/identity"
	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/notify"
	"github.com/andika/rekber-backend/pkg/scheduler"
	"github.com/andika/rekber-backend/pkg/storage"
)

// Deadlines carries the durations the engine arms its jobs with.
type Deadlines struct {
	Payment      time.Duration
	Shipment     time.Duration
	BuyerConfirm time.Duration
}

// DefaultDeadlines are the production windows.
var DefaultDeadlines = Deadlines{
	Payment:      3 * time.Hour,
	Shipment:     48 * time.Hour,
	BuyerConfirm: 24 * time.Hour,
}

// Engine is the transaction lifecycle engine.
type Engine struct {
	Store     storage.TransactionStore
	Users     storage.UserStore
	Lookup    identity.Lookup
	Scheduler scheduler.Scheduler
	Notifier  notify.Notifier
	Deadlines Deadlines

	now func() time.Time
}

// NewEngine creates a new Engine.
func NewEngine(store storage.TransactionStore, users storage.UserStore, lookup identity.Lookup, sched scheduler.Scheduler, notifier notify.Notifier, deadlines Deadlines) *Engine {
	return &Engine{
		Store:     store,
		Users:     users,
		Lookup:    lookup,
		Scheduler: sched,
		Notifier:  notifier,
		Deadlines: deadlines,
		now:       time.Now,
	}
}

// Create opens a new escrow transaction from the seller to the buyer
// identified by email, computes the fee schedule, and arms the payment
// deadline.
func (e *Engine) Create(ctx context.Context, sellerID, buyerEmail, itemName string, itemPrice int64, insured bool) (*models.Transaction, error) {
	platformFee, err := fees.PlatformFee(itemPrice)
	if err != nil {
		return nil, err
	}
	insuranceFee := fees.InsuranceFee(itemPrice, insured)

	buyer, err := e.Lookup.ByEmail(ctx, buyerEmail)
	if err != nil {
		return nil, err
	}
	if buyer.Id == sellerID {
		return nil, ErrSameParty
	}

	active, err := e.Store.HasActiveTransaction(ctx, sellerID, buyer.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to check for active transactions: %w", err)
	}
	if active {
		return nil, storage.ErrActiveTransactionExists
	}

	now := e.now()
	id := uuid.New().String()
	tx := &models.Transaction{
		Id:              id,
		Code:            transactionCode(id),
		SellerID:        sellerID,
		BuyerID:         buyer.Id,
		ItemName:        itemName,
		ItemPrice:       itemPrice,
		PlatformFee:     platformFee,
		InsuranceFee:    insuranceFee,
		TotalAmount:     fees.TotalAmount(itemPrice, platformFee, insuranceFee),
		Status:          models.TxPendingPayment,
		VirtualAccount:  virtualAccount(id),
		PaymentDeadline: now.Add(e.Deadlines.Payment),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := e.Store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if err := e.Scheduler.Schedule(ctx, models.JobCancelPayment, tx.Id, tx.PaymentDeadline); err != nil {
		slog.Error("transaction created but payment deadline not armed", "transaction_id", tx.Id, "error", err)
	}

	e.notifyUser(ctx, buyer.Id, "Waiting for your payment",
		fmt.Sprintf("Transfer %d to virtual account %s for %s", tx.TotalAmount, tx.VirtualAccount, tx.ItemName),
		map[string]string{"transaction_id": tx.Id})

	return tx, nil
}

// MarkPaid records the payment callback: pending_payment -> waiting_shipment.
// The payment deadline is disarmed and the shipment deadline armed.
func (e *Engine) MarkPaid(ctx context.Context, txID string) (*models.Transaction, error) {
	tx, err := e.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	shipmentDeadline := now.Add(e.Deadlines.Shipment)
	if err := e.Store.MarkTransactionPaid(ctx, tx.Id, now, shipmentDeadline); err != nil {
		return nil, asPrecondition(err)
	}

	if err := e.Scheduler.Cancel(ctx, models.JobCancelPayment, tx.Id); err != nil {
		slog.Error("failed to disarm payment deadline", "transaction_id", tx.Id, "error", err)
	}
	if err := e.Scheduler.Schedule(ctx, models.JobCancelShipment, tx.Id, shipmentDeadline); err != nil {
		slog.Error("payment recorded but shipment deadline not armed", "transaction_id", tx.Id, "error", err)
	}

	tx.Status = models.TxWaitingShipment
	tx.PaidAt = &now
	tx.ShipmentDeadline = &shipmentDeadline
	tx.UpdatedAt = now

	e.notifyUser(ctx, tx.SellerID, "Payment received",
		fmt.Sprintf("Ship %s before %s", tx.ItemName, shipmentDeadline.Format(time.RFC1123)),
		map[string]string{"transaction_id": tx.Id})

	return tx, nil
}

// MarkShipped records the seller's shipment: waiting_shipment -> shipped.
func (e *Engine) MarkShipped(ctx context.Context, txID, sellerID, courier, trackingNumber string) (*models.Transaction, error) {
	tx, err := e.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.SellerID != sellerID {
		return nil, fmt.Errorf("transaction %s for seller %s: %w", txID, sellerID, storage.ErrNotFound)
	}

	now := e.now()
	if err := e.Store.MarkTransactionShipped(ctx, tx.Id, courier, trackingNumber, now); err != nil {
		return nil, asPrecondition(err)
	}

	if err := e.Scheduler.Cancel(ctx, models.JobCancelShipment, tx.Id); err != nil {
		slog.Error("failed to disarm shipment deadline", "transaction_id", tx.Id, "error", err)
	}

	tx.Status = models.TxShipped
	tx.Courier = courier
	tx.TrackingNumber = trackingNumber
	tx.ShippedAt = &now
	tx.UpdatedAt = now

	e.notifyUser(ctx, tx.BuyerID, "Item shipped",
		fmt.Sprintf("%s is on its way via %s (%s)", tx.ItemName, courier, trackingNumber),
		map[string]string{"transaction_id": tx.Id})

	return tx, nil
}

// ConfirmReceipt records the buyer's acceptance: shipped -> completed. The
// seller's payout is the total minus both platform and insurance fees.
func (e *Engine) ConfirmReceipt(ctx context.Context, txID, buyerID string) (*models.Transaction, error) {
	tx, err := e.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.BuyerID != buyerID {
		return nil, fmt.Errorf("transaction %s for buyer %s: %w", txID, buyerID, storage.ErrNotFound)
	}

	seller, err := e.Users.GetUser(ctx, tx.SellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve seller for payout: %w", err)
	}

	now := e.now()
	withdrawn := fees.Withdrawable(tx.TotalAmount, tx.PlatformFee, tx.InsuranceFee)
	if err := e.Store.CompleteTransaction(ctx, tx.Id, models.TxShipped, withdrawn, bankRef(seller), tx.SellerID, now); err != nil {
		return nil, asPrecondition(err)
	}

	if err := e.Scheduler.Cancel(ctx, models.JobAutoComplete, tx.Id); err != nil {
		slog.Error("failed to disarm buyer confirm deadline", "transaction_id", tx.Id, "error", err)
	}

	tx.Status = models.TxCompleted
	tx.ConfirmedAt = &now
	tx.WithdrawnAt = &now
	tx.WithdrawnAmount = withdrawn
	tx.WithdrawalBankAccount = bankRef(seller)
	tx.UpdatedAt = now

	e.notifyUser(ctx, tx.SellerID, "Funds released",
		fmt.Sprintf("%d has been sent to your bank account", withdrawn),
		map[string]string{"transaction_id": tx.Id})

	return tx, nil
}

// RequestFundRelease records a seller's appeal to unlock funds before the
// buyer's confirmation. The admin decides via ApproveFundRelease.
func (e *Engine) RequestFundRelease(ctx context.Context, txID, sellerID string) (*models.Transaction, error) {
	tx, err := e.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.SellerID != sellerID {
		return nil, fmt.Errorf("transaction %s for seller %s: %w", txID, sellerID, storage.ErrNotFound)
	}

	now := e.now()
	if err := e.Store.SetFundReleaseRequested(ctx, tx.Id, now); err != nil {
		return nil, asPrecondition(err)
	}

	tx.FundReleaseRequestedAt = &now
	tx.UpdatedAt = now
	return tx, nil
}

// ApproveFundRelease is the admin's approval of a seller's early-release
// request: it opens the buyer-confirm window and arms the auto-complete job.
func (e *Engine) ApproveFundRelease(ctx context.Context, txID string) (*models.Transaction, error) {
	tx, err := e.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.FundReleaseRequestedAt == nil {
		return nil, ErrNotRequested
	}

	deadline := e.now().Add(e.Deadlines.BuyerConfirm)
	if err := e.Store.SetBuyerConfirmDeadline(ctx, tx.Id, deadline); err != nil {
		return nil, asPrecondition(err)
	}

	if err := e.Scheduler.Schedule(ctx, models.JobAutoComplete, tx.Id, deadline); err != nil {
		slog.Error("fund release approved but auto-complete not armed", "transaction_id", tx.Id, "error", err)
	}

	tx.BuyerConfirmDeadline = &deadline

	e.notifyUser(ctx, tx.BuyerID, "Confirm your delivery",
		fmt.Sprintf("Confirm receipt of %s before %s or the funds release automatically", tx.ItemName, deadline.Format(time.RFC1123)),
		map[string]string{"transaction_id": tx.Id})

	return tx, nil
}

// CancelBySeller withdraws an unpaid transaction: pending_payment -> canceled.
func (e *Engine) CancelBySeller(ctx context.Context, txID, sellerID, reason string) (*models.Transaction, error) {
	tx, err := e.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.SellerID != sellerID {
		return nil, fmt.Errorf("transaction %s for seller %s: %w", txID, sellerID, storage.ErrNotFound)
	}

	now := e.now()
	if err := e.Store.CancelTransaction(ctx, tx.Id, models.TxPendingPayment, reason, models.CancelActorSeller, now); err != nil {
		return nil, asPrecondition(err)
	}

	if err := e.Scheduler.Cancel(ctx, models.JobCancelPayment, tx.Id); err != nil {
		slog.Error("failed to disarm payment deadline", "transaction_id", tx.Id, "error", err)
	}

	tx.Status = models.TxCanceled
	tx.CancelReason = reason
	tx.CancelledBy = models.CancelActorSeller
	tx.CancelledAt = &now
	tx.UpdatedAt = now

	e.notifyUser(ctx, tx.BuyerID, "Transaction canceled",
		fmt.Sprintf("The seller canceled the transaction for %s", tx.ItemName),
		map[string]string{"transaction_id": tx.Id})

	return tx, nil
}

// SuspendForComplaint disarms the transaction's pending deadline while a
// complaint parks it. Only the auto-complete job can be live in shipped.
func (e *Engine) SuspendForComplaint(ctx context.Context, txID string) {
	if err := e.Scheduler.Cancel(ctx, models.JobAutoComplete, txID); err != nil {
		slog.Error("failed to suspend auto-complete for complaint", "transaction_id", txID, "error", err)
	}
}

// ResumeAfterComplaint re-arms the buyer-confirm deadline after a complaint is
// retired without a refund. A deadline that elapsed while parked fires on the
// next sweep; the worker re-checks the guard either way.
func (e *Engine) ResumeAfterComplaint(ctx context.Context, tx *models.Transaction) {
	if tx.BuyerConfirmDeadline == nil {
		return
	}
	fireAt := *tx.BuyerConfirmDeadline
	if now := e.now(); fireAt.Before(now) {
		fireAt = now
	}
	if err := e.Scheduler.Schedule(ctx, models.JobAutoComplete, tx.Id, fireAt); err != nil {
		slog.Error("failed to re-arm auto-complete after complaint", "transaction_id", tx.Id, "error", err)
	}
}

// notifyUser resolves the recipient's device token and sends best-effort.
func (e *Engine) notifyUser(ctx context.Context, userID, title, body string, data map[string]string) {
	user, err := e.Users.GetUser(ctx, userID)
	if err != nil {
		slog.Error("failed to resolve notification recipient", "user_id", userID, "error", err)
		return
	}
	if err := e.Notifier.Send(ctx, user.DeviceToken, title, body, data); err != nil {
		slog.Error("failed to send notification", "user_id", userID, "error", err)
	}
}

// asPrecondition translates a stale conditional update into the user-facing
// wrong-status error. Everything else passes through unchanged.
func asPrecondition(err error) error {
	if errors.Is(err, storage.ErrConditionFailed) {
		return ErrWrongStatus
	}
	return err
}

// transactionCode derives the human-readable code from the transaction ID.
func transactionCode(id string) string {
	return "TRX-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}

// virtualAccount derives a stable payment account number from the transaction ID.
func virtualAccount(id string) string {
	return fmt.Sprintf("88%010d", crc32.ChecksumIEEE([]byte(id)))
}

// bankRef formats the payout destination recorded on the transaction.
func bankRef(user *models.User) string {
	return user.BankCode + "/" + user.BankAccount
}
