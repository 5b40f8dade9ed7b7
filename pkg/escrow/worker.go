package escrow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/andika/rekber-backend/pkg/fees"
	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
)

// Deadline-triggered transitions. Each one re-validates its guard through the
// conditional update at fire time: a failed condition means the entity already
// moved on, which is an info-level no-op, never an error. Store faults are
// returned so the queue redelivers the job.

// AutoCancelPayment cancels a transaction still unpaid at its payment deadline.
func (e *Engine) AutoCancelPayment(ctx context.Context, txID string) error {
	now := e.now()
	err := e.Store.CancelTransaction(ctx, txID, models.TxPendingPayment, models.CancelReasonTimeout, models.CancelActorSystem, now)
	if errors.Is(err, storage.ErrConditionFailed) {
		slog.Info("payment deadline fired on already-transitioned transaction", "transaction_id", txID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("auto-cancel payment for %s: %w", txID, err)
	}

	e.notifyParties(ctx, txID, "Transaction canceled", "Payment was not received in time")
	return nil
}

// AutoCancelShipment cancels a transaction still unshipped at its shipment deadline.
func (e *Engine) AutoCancelShipment(ctx context.Context, txID string) error {
	now := e.now()
	err := e.Store.CancelTransaction(ctx, txID, models.TxWaitingShipment, models.CancelReasonTimeout, models.CancelActorSystem, now)
	if errors.Is(err, storage.ErrConditionFailed) {
		slog.Info("shipment deadline fired on already-transitioned transaction", "transaction_id", txID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("auto-cancel shipment for %s: %w", txID, err)
	}

	e.notifyParties(ctx, txID, "Transaction canceled", "The item was not shipped in time")
	return nil
}

// AutoComplete releases the funds when the buyer let the confirm window lapse.
// The withdrawn amount is computed identically to ConfirmReceipt.
func (e *Engine) AutoComplete(ctx context.Context, txID string) error {
	tx, err := e.Store.GetTransaction(ctx, txID)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Info("auto-complete fired on missing transaction", "transaction_id", txID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("auto-complete read for %s: %w", txID, err)
	}

	now := e.now()
	if tx.Status != models.TxShipped || tx.BuyerConfirmDeadline == nil {
		slog.Info("auto-complete fired but guard no longer holds",
			"transaction_id", txID, "status", tx.Status)
		return nil
	}
	if now.Before(*tx.BuyerConfirmDeadline) {
		// Delivered early: the job has already been consumed, so re-arm it at
		// the real deadline instead of dropping the transition.
		slog.Info("auto-complete fired before the confirm deadline, rescheduling",
			"transaction_id", txID, "fire_at", *tx.BuyerConfirmDeadline)
		if err := e.Scheduler.Schedule(ctx, models.JobAutoComplete, tx.Id, *tx.BuyerConfirmDeadline); err != nil {
			return fmt.Errorf("auto-complete reschedule for %s: %w", txID, err)
		}
		return nil
	}

	seller, err := e.Users.GetUser(ctx, tx.SellerID)
	if err != nil {
		return fmt.Errorf("auto-complete seller lookup for %s: %w", txID, err)
	}

	withdrawn := fees.Withdrawable(tx.TotalAmount, tx.PlatformFee, tx.InsuranceFee)
	err = e.Store.CompleteTransaction(ctx, tx.Id, models.TxShipped, withdrawn, bankRef(seller), tx.SellerID, now)
	if errors.Is(err, storage.ErrConditionFailed) {
		slog.Info("auto-complete lost the race to a manual confirmation", "transaction_id", txID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("auto-complete for %s: %w", txID, err)
	}

	e.notifyUser(ctx, tx.SellerID, "Funds released",
		fmt.Sprintf("%d has been sent to your bank account", withdrawn),
		map[string]string{"transaction_id": tx.Id})
	return nil
}

// notifyParties informs both sides after a system-driven transition.
func (e *Engine) notifyParties(ctx context.Context, txID, title, body string) {
	tx, err := e.Store.GetTransaction(ctx, txID)
	if err != nil {
		slog.Error("failed to read transaction for notification", "transaction_id", txID, "error", err)
		return
	}
	data := map[string]string{"transaction_id": tx.Id}
	e.notifyUser(ctx, tx.BuyerID, title, body, data)
	e.notifyUser(ctx, tx.SellerID, title, body, data)
}
