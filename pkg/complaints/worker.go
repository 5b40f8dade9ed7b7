package complaints

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
)

// Deadline-triggered complaint transitions. Same contract as the transaction
// side: a failed guard is an info-level no-op, a store fault is returned so
// the queue redelivers the job.

// AutoCancelReturnShipment retires a complaint whose buyer never shipped the
// item back, resuming the transaction in the same write.
func (e *Engine) AutoCancelReturnShipment(ctx context.Context, complaintID string) error {
	c, err := e.Store.GetComplaint(ctx, complaintID)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Info("return shipment deadline fired on missing complaint", "complaint_id", complaintID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("auto-cancel return read for %s: %w", complaintID, err)
	}

	if c.Status != models.ComplaintReturnRequested {
		slog.Info("return shipment deadline fired on already-transitioned complaint",
			"complaint_id", complaintID, "status", c.Status)
		return nil
	}

	now := e.now()
	if c.ReturnShipmentDeadline != nil && now.Before(*c.ReturnShipmentDeadline) {
		slog.Info("return shipment deadline fired early, rescheduling",
			"complaint_id", complaintID, "fire_at", *c.ReturnShipmentDeadline)
		if err := e.Scheduler.Schedule(ctx, models.JobCancelReturnShipment, c.Id, *c.ReturnShipmentDeadline); err != nil {
			return fmt.Errorf("auto-cancel return reschedule for %s: %w", complaintID, err)
		}
		return nil
	}

	err = e.Store.ResolveComplaintAndResumeTransaction(ctx, c.Id,
		models.ComplaintReturnRequested, models.ComplaintCanceledByBuyer, c.TransactionID, now)
	if errors.Is(err, storage.ErrConditionFailed) {
		slog.Info("return shipment deadline fired on already-transitioned complaint", "complaint_id", complaintID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("auto-cancel return for %s: %w", complaintID, err)
	}

	tx, err := e.Transactions.GetTransaction(ctx, c.TransactionID)
	if err != nil {
		slog.Error("complaint canceled but transaction not re-read for scheduling", "transaction_id", c.TransactionID, "error", err)
		return nil
	}
	e.Escrow.ResumeAfterComplaint(ctx, tx)

	e.notifyUser(ctx, c.BuyerID, "Complaint closed",
		"The return window passed without a shipment, so the complaint was closed",
		map[string]string{"complaint_id": c.Id})
	return nil
}

// AutoResolveReturn refunds the buyer when the seller let the confirm window
// lapse after the admin verified the returned item.
func (e *Engine) AutoResolveReturn(ctx context.Context, complaintID string) error {
	c, err := e.Store.GetComplaint(ctx, complaintID)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Info("seller confirm deadline fired on missing complaint", "complaint_id", complaintID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("auto-resolve return read for %s: %w", complaintID, err)
	}

	if c.Status != models.ComplaintAwaitingSellerConfirmation {
		slog.Info("seller confirm deadline fired on already-transitioned complaint",
			"complaint_id", complaintID, "status", c.Status)
		return nil
	}

	now := e.now()
	if c.SellerConfirmDeadline != nil && now.Before(*c.SellerConfirmDeadline) {
		slog.Info("seller confirm deadline fired early, rescheduling",
			"complaint_id", complaintID, "fire_at", *c.SellerConfirmDeadline)
		if err := e.Scheduler.Schedule(ctx, models.JobConfirmReturnDeadline, c.Id, *c.SellerConfirmDeadline); err != nil {
			return fmt.Errorf("auto-resolve return reschedule for %s: %w", complaintID, err)
		}
		return nil
	}

	tx, err := e.Transactions.GetTransaction(ctx, c.TransactionID)
	if err != nil {
		return fmt.Errorf("auto-resolve return transaction read for %s: %w", complaintID, err)
	}

	err = e.refund(ctx, c, models.ComplaintAwaitingSellerConfirmation, tx, now)
	if errors.Is(err, storage.ErrConditionFailed) {
		slog.Info("auto-resolve lost the race to a manual confirmation", "complaint_id", complaintID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("auto-resolve return for %s: %w", complaintID, err)
	}

	e.notifyUser(ctx, c.BuyerID, "Refund issued",
		"The seller did not respond in time, so your refund completed automatically",
		map[string]string{"complaint_id": c.Id})
	return nil
}

// AutoEscalateSellerResponse hands an unanswered complaint to the admin once
// the seller's response window lapses.
func (e *Engine) AutoEscalateSellerResponse(ctx context.Context, complaintID string) error {
	now := e.now()
	err := e.Store.EscalateComplaint(ctx, complaintID, now)
	if errors.Is(err, storage.ErrConditionFailed) {
		slog.Info("seller response deadline fired on already-transitioned complaint", "complaint_id", complaintID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("auto-escalate for %s: %w", complaintID, err)
	}

	slog.Info("complaint escalated to admin after silent seller", "complaint_id", complaintID)
	return nil
}
