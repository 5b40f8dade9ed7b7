// Package complaints implements the dispute lifecycle bound to a shipped
// escrow transaction. Filing parks the transaction, resolution either resumes
// it or refunds the buyer; both composite moves are atomic at the store level.
package complaints

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/andika/rekber-backend/pkg/escrow"
	"github.com/andika/rekber-backend/pkg/fees"
	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/notify"
	"github.com/andika/rekber-backend/pkg/scheduler"
	"github.com/andika/rekber-backend/pkg/storage"
	"github.com/andika/rekber-backend/pkg/uploads"
)

// Deadlines carries the durations the engine arms its jobs with.
type Deadlines struct {
	SellerResponse time.Duration
	ReturnShipment time.Duration
	SellerConfirm  time.Duration
}

// DefaultDeadlines are the production windows.
var DefaultDeadlines = Deadlines{
	SellerResponse: 48 * time.Hour,
	ReturnShipment: 48 * time.Hour,
	SellerConfirm:  24 * time.Hour,
}

// Engine is the complaint lifecycle engine. It owns complaint transitions and
// delegates transaction-side suspension and resumption to the escrow engine.
type Engine struct {
	Store        storage.ComplaintStore
	Transactions storage.TransactionStore
	Users        storage.UserStore
	Escrow       *escrow.Engine
	Scheduler    scheduler.Scheduler
	Notifier     notify.Notifier
	Uploader     uploads.Uploader
	Deadlines    Deadlines

	now func() time.Time
}

// NewEngine creates a new Engine.
func NewEngine(store storage.ComplaintStore, txs storage.TransactionStore, users storage.UserStore, esc *escrow.Engine, sched scheduler.Scheduler, notifier notify.Notifier, uploader uploads.Uploader, deadlines Deadlines) *Engine {
	return &Engine{
		Store:        store,
		Transactions: txs,
		Users:        users,
		Escrow:       esc,
		Scheduler:    sched,
		Notifier:     notifier,
		Uploader:     uploader,
		Deadlines:    deadlines,
		now:          time.Now,
	}
}

// File opens a complaint on a shipped transaction. The complaint record and
// the transaction's park into complain are one atomic write, which is also
// what enforces the single-active-complaint rule.
func (e *Engine) File(ctx context.Context, txID, buyerID string, ctype models.ComplaintType, reason string, photos [][]byte) (*models.Complaint, error) {
	if !ctype.Valid() {
		return nil, ErrInvalidType
	}

	tx, err := e.Transactions.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.BuyerID != buyerID {
		return nil, fmt.Errorf("transaction %s for buyer %s: %w", txID, buyerID, storage.ErrNotFound)
	}
	if tx.Status == models.TxComplain {
		return nil, storage.ErrActiveComplaintExists
	}
	if tx.Status != models.TxShipped {
		return nil, ErrTransactionNotShipped
	}

	evidence, err := e.uploadAll(ctx, photos)
	if err != nil {
		return nil, err
	}

	now := e.now()
	c := &models.Complaint{
		Id:                uuid.New().String(),
		TransactionID:     tx.Id,
		BuyerID:           buyerID,
		Type:              ctype,
		Status:            models.ComplaintUnderInvestigation,
		BuyerReason:       reason,
		BuyerEvidenceURLs: evidence,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if ctype.NeedsSellerResponse() {
		deadline := now.Add(e.Deadlines.SellerResponse)
		c.Status = models.ComplaintWaitingSellerApproval
		c.SellerResponseDeadline = &deadline
	}

	if err := e.Store.CreateComplaint(ctx, c); err != nil {
		return nil, err
	}

	e.Escrow.SuspendForComplaint(ctx, tx.Id)

	if c.SellerResponseDeadline != nil {
		if err := e.Scheduler.Schedule(ctx, models.JobSellerResponseDeadline, c.Id, *c.SellerResponseDeadline); err != nil {
			slog.Error("complaint filed but seller response deadline not armed", "complaint_id", c.Id, "error", err)
		}
	}

	e.notifyUser(ctx, tx.SellerID, "Complaint filed",
		fmt.Sprintf("The buyer reported a problem with %s", tx.ItemName),
		map[string]string{"complaint_id": c.Id, "transaction_id": tx.Id})

	return c, nil
}

// SellerRespond records the seller's answer while waiting_seller_approval.
// Approval hands the complaint to the admin; rejection retires it and resumes
// the transaction.
func (e *Engine) SellerRespond(ctx context.Context, complaintID, sellerID, decision, reason string, photos [][]byte) (*models.Complaint, error) {
	if decision != models.DecisionApprove && decision != models.DecisionReject {
		return nil, ErrInvalidDecision
	}

	c, tx, err := e.loadForSeller(ctx, complaintID, sellerID)
	if err != nil {
		return nil, err
	}

	evidence, err := e.uploadAll(ctx, photos)
	if err != nil {
		return nil, err
	}

	next := models.ComplaintAwaitingAdminApproval
	if decision == models.DecisionReject {
		next = models.ComplaintRejectedBySeller
	}

	now := e.now()
	if err := e.Store.RecordSellerResponse(ctx, c.Id, decision, reason, evidence, next, now); err != nil {
		return nil, asPrecondition(err)
	}

	if err := e.Scheduler.Cancel(ctx, models.JobSellerResponseDeadline, c.Id); err != nil {
		slog.Error("failed to disarm seller response deadline", "complaint_id", c.Id, "error", err)
	}

	if next == models.ComplaintRejectedBySeller {
		e.resumeTransaction(ctx, tx, now)
	}

	c.Status = next
	c.SellerDecision = decision
	c.SellerReason = reason
	c.SellerEvidenceURLs = evidence
	c.UpdatedAt = now

	e.notifyUser(ctx, c.BuyerID, "Seller responded to your complaint",
		fmt.Sprintf("The seller chose to %s your complaint", decision),
		map[string]string{"complaint_id": c.Id})

	return c, nil
}

// AdminRespond records the admin's verdict. For lost items approval refunds
// the buyer outright; for returnable items it opens the return-shipment
// window. Rejection retires the complaint and resumes the transaction.
func (e *Engine) AdminRespond(ctx context.Context, complaintID, decision string) (*models.Complaint, error) {
	if decision != models.DecisionApprove && decision != models.DecisionReject {
		return nil, ErrInvalidDecision
	}

	c, err := e.Store.GetComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	expected := c.Status
	if expected != models.ComplaintUnderInvestigation && expected != models.ComplaintAwaitingAdminApproval {
		return nil, ErrWrongStatus
	}

	tx, err := e.Transactions.GetTransaction(ctx, c.TransactionID)
	if err != nil {
		return nil, err
	}

	now := e.now()

	if decision == models.DecisionReject {
		if err := e.Store.RecordAdminDecision(ctx, c.Id, expected, decision, models.ComplaintRejectedByAdmin, nil, now); err != nil {
			return nil, asPrecondition(err)
		}
		e.resumeTransaction(ctx, tx, now)

		c.Status = models.ComplaintRejectedByAdmin
		c.AdminDecision = decision
		c.AdminRespondedAt = &now
		c.UpdatedAt = now

		e.notifyUser(ctx, c.BuyerID, "Complaint rejected",
			"An admin reviewed and rejected your complaint",
			map[string]string{"complaint_id": c.Id})
		return c, nil
	}

	if !c.Type.NeedsSellerResponse() {
		// Lost item: nothing to return, refund immediately.
		if err := e.refund(ctx, c, expected, tx, now); err != nil {
			return nil, asPrecondition(err)
		}

		c.Status = models.ComplaintCompleted
		c.AdminDecision = decision
		c.AdminRespondedAt = &now
		c.ResolvedAt = &now
		c.UpdatedAt = now

		e.notifyUser(ctx, c.BuyerID, "Refund issued",
			"Your complaint was approved and the funds are on their way back",
			map[string]string{"complaint_id": c.Id})
		return c, nil
	}

	returnDeadline := now.Add(e.Deadlines.ReturnShipment)
	if err := e.Store.RecordAdminDecision(ctx, c.Id, expected, decision, models.ComplaintReturnRequested, &returnDeadline, now); err != nil {
		return nil, asPrecondition(err)
	}

	if err := e.Scheduler.Schedule(ctx, models.JobCancelReturnShipment, c.Id, returnDeadline); err != nil {
		slog.Error("return requested but deadline not armed", "complaint_id", c.Id, "error", err)
	}

	c.Status = models.ComplaintReturnRequested
	c.AdminDecision = decision
	c.AdminRespondedAt = &now
	c.ReturnShipmentDeadline = &returnDeadline
	c.UpdatedAt = now

	e.notifyUser(ctx, c.BuyerID, "Return approved",
		fmt.Sprintf("Ship the item back before %s", returnDeadline.Format(time.RFC1123)),
		map[string]string{"complaint_id": c.Id})

	return c, nil
}

// SubmitReturnShipment records the buyer's one-and-only return shipment while
// return_requested.
func (e *Engine) SubmitReturnShipment(ctx context.Context, complaintID, buyerID, courier, trackingNumber string, photo []byte) (*models.Complaint, error) {
	c, tx, err := e.loadForBuyer(ctx, complaintID, buyerID)
	if err != nil {
		return nil, err
	}

	urls, err := e.uploadAll(ctx, [][]byte{photo})
	if err != nil {
		return nil, err
	}

	now := e.now()
	rs := &models.ReturnShipment{
		Courier:        courier,
		TrackingNumber: trackingNumber,
		PhotoURL:       urls[0],
		ShippedAt:      now,
	}
	if err := e.Store.SetReturnShipment(ctx, c.Id, rs, now); err != nil {
		return nil, asPrecondition(err)
	}

	if err := e.Scheduler.Cancel(ctx, models.JobCancelReturnShipment, c.Id); err != nil {
		slog.Error("failed to disarm return shipment deadline", "complaint_id", c.Id, "error", err)
	}

	c.Status = models.ComplaintReturnInTransit
	c.ReturnShipment = rs
	c.UpdatedAt = now

	e.notifyUser(ctx, tx.SellerID, "Item on its way back",
		fmt.Sprintf("The buyer returned the item via %s (%s)", courier, trackingNumber),
		map[string]string{"complaint_id": c.Id})

	return c, nil
}

// RequestConfirmation records the buyer's claim that the returned item was
// delivered, handing the complaint to the admin for verification.
func (e *Engine) RequestConfirmation(ctx context.Context, complaintID, buyerID, reason string, photos [][]byte) (*models.Complaint, error) {
	c, _, err := e.loadForBuyer(ctx, complaintID, buyerID)
	if err != nil {
		return nil, err
	}

	evidence, err := e.uploadAll(ctx, photos)
	if err != nil {
		return nil, err
	}

	now := e.now()
	if err := e.Store.RecordConfirmationRequest(ctx, c.Id, reason, evidence, now); err != nil {
		return nil, asPrecondition(err)
	}

	c.Status = models.ComplaintAwaitingAdminConfirmation
	c.RequestConfirmationReason = reason
	c.RequestConfirmationEvidence = evidence
	c.RequestConfirmationAt = &now
	c.RequestConfirmationStatus = "pending"
	c.UpdatedAt = now

	return c, nil
}

// AdminConfirmReturn is the admin's verdict on the buyer's delivered-back
// claim. Approval opens the seller-confirm window; rejection puts the
// complaint back in transit.
func (e *Engine) AdminConfirmReturn(ctx context.Context, complaintID, adminID string, approved bool) (*models.Complaint, error) {
	c, err := e.Store.GetComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	tx, err := e.Transactions.GetTransaction(ctx, c.TransactionID)
	if err != nil {
		return nil, err
	}

	now := e.now()

	if !approved {
		if err := e.Store.RecordReturnConfirmation(ctx, c.Id, adminID, false, nil, now); err != nil {
			return nil, asPrecondition(err)
		}

		c.Status = models.ComplaintReturnInTransit
		c.RequestConfirmationStatus = "rejected"
		c.RequestConfirmationAdminID = adminID
		c.UpdatedAt = now

		e.notifyUser(ctx, c.BuyerID, "Delivery claim rejected",
			"An admin could not verify the returned item was delivered",
			map[string]string{"complaint_id": c.Id})
		return c, nil
	}

	deadline := now.Add(e.Deadlines.SellerConfirm)
	if err := e.Store.RecordReturnConfirmation(ctx, c.Id, adminID, true, &deadline, now); err != nil {
		return nil, asPrecondition(err)
	}

	if err := e.Scheduler.Schedule(ctx, models.JobConfirmReturnDeadline, c.Id, deadline); err != nil {
		slog.Error("return confirmed but seller confirm deadline not armed", "complaint_id", c.Id, "error", err)
	}

	c.Status = models.ComplaintAwaitingSellerConfirmation
	c.RequestConfirmationStatus = "approved"
	c.RequestConfirmationAdminID = adminID
	c.SellerConfirmDeadline = &deadline
	c.UpdatedAt = now

	e.notifyUser(ctx, tx.SellerID, "Confirm the returned item",
		fmt.Sprintf("Confirm receipt before %s or the refund completes automatically", deadline.Format(time.RFC1123)),
		map[string]string{"complaint_id": c.Id})

	return c, nil
}

// SellerConfirmReceive is the seller's acknowledgment of the returned item:
// the complaint completes and the buyer is refunded.
func (e *Engine) SellerConfirmReceive(ctx context.Context, complaintID, sellerID string) (*models.Complaint, error) {
	c, tx, err := e.loadForSeller(ctx, complaintID, sellerID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	if err := e.refund(ctx, c, models.ComplaintAwaitingSellerConfirmation, tx, now); err != nil {
		return nil, asPrecondition(err)
	}

	if err := e.Scheduler.Cancel(ctx, models.JobConfirmReturnDeadline, c.Id); err != nil {
		slog.Error("failed to disarm seller confirm deadline", "complaint_id", c.Id, "error", err)
	}

	c.Status = models.ComplaintCompleted
	c.ResolvedAt = &now
	c.UpdatedAt = now

	e.notifyUser(ctx, c.BuyerID, "Refund issued",
		"The seller confirmed the returned item and your refund is on its way",
		map[string]string{"complaint_id": c.Id})

	return c, nil
}

// refund completes the complaint and its transaction in the buyer's favor.
// The refunded amount mirrors the seller payout rule: total minus both fees.
func (e *Engine) refund(ctx context.Context, c *models.Complaint, expected models.ComplaintStatus, tx *models.Transaction, at time.Time) error {
	buyer, err := e.Users.GetUser(ctx, tx.BuyerID)
	if err != nil {
		return fmt.Errorf("failed to resolve buyer for refund: %w", err)
	}

	amount := fees.Withdrawable(tx.TotalAmount, tx.PlatformFee, tx.InsuranceFee)
	return e.Store.ResolveComplaintAndRefund(ctx, c.Id, expected, tx.Id, amount, bankRef(buyer), tx.BuyerID, at)
}

// resumeTransaction returns a parked transaction to shipped and re-arms its
// auto-complete deadline. The guard makes a retry after a partial failure safe.
func (e *Engine) resumeTransaction(ctx context.Context, tx *models.Transaction, at time.Time) {
	if err := e.Transactions.ResumeTransaction(ctx, tx.Id, at); err != nil {
		slog.Error("complaint retired but transaction not resumed", "transaction_id", tx.Id, "error", err)
		return
	}
	e.Escrow.ResumeAfterComplaint(ctx, tx)
}

// loadForBuyer fetches the complaint and its transaction, hiding both from
// anyone but the filing buyer.
func (e *Engine) loadForBuyer(ctx context.Context, complaintID, buyerID string) (*models.Complaint, *models.Transaction, error) {
	c, err := e.Store.GetComplaint(ctx, complaintID)
	if err != nil {
		return nil, nil, err
	}
	if c.BuyerID != buyerID {
		return nil, nil, fmt.Errorf("complaint %s for buyer %s: %w", complaintID, buyerID, storage.ErrNotFound)
	}
	tx, err := e.Transactions.GetTransaction(ctx, c.TransactionID)
	if err != nil {
		return nil, nil, err
	}
	return c, tx, nil
}

// loadForSeller fetches the complaint and its transaction, hiding both from
// anyone but the transaction's seller.
func (e *Engine) loadForSeller(ctx context.Context, complaintID, sellerID string) (*models.Complaint, *models.Transaction, error) {
	c, err := e.Store.GetComplaint(ctx, complaintID)
	if err != nil {
		return nil, nil, err
	}
	tx, err := e.Transactions.GetTransaction(ctx, c.TransactionID)
	if err != nil {
		return nil, nil, err
	}
	if tx.SellerID != sellerID {
		return nil, nil, fmt.Errorf("complaint %s for seller %s: %w", complaintID, sellerID, storage.ErrNotFound)
	}
	return c, tx, nil
}

// uploadAll stores the evidence photos and returns their URLs. A nil slice in
// means a nil slice out.
func (e *Engine) uploadAll(ctx context.Context, photos [][]byte) ([]string, error) {
	if len(photos) == 0 {
		return nil, nil
	}
	urls := make([]string, 0, len(photos))
	for _, photo := range photos {
		url, err := e.Uploader.Upload(ctx, photo, uuid.New().String()+".jpg", "image/jpeg")
		if err != nil {
			return nil, fmt.Errorf("failed to upload evidence: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
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
// wrong-status error.
func asPrecondition(err error) error {
	if errors.Is(err, storage.ErrConditionFailed) {
		return ErrWrongStatus
	}
	return err
}

// bankRef formats the refund destination recorded on the transaction.
func bankRef(user *models.User) string {
	return user.BankCode + "/" + user.BankAccount
}
