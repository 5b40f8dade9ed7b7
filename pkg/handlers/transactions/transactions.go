// Package transactions holds the HTTP handlers for the escrow transaction
// lifecycle. Handlers decode, call the engine, and project the result for the
// calling role; every rule lives in the engine.
package transactions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/andika/rekber-backend/pkg/api"
	"github.com/andika/rekber-backend/pkg/escrow"
	"github.com/andika/rekber-backend/pkg/fees"
	"github.com/andika/rekber-backend/pkg/mapping"
	"github.com/andika/rekber-backend/pkg/middleware"
	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
)

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Engine *escrow.Engine
	Store  storage.ApiStore
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(engine *escrow.Engine, store storage.ApiStore) *TransactionsHandler {
	return &TransactionsHandler{Engine: engine, Store: store}
}

// CreateTransaction opens a new escrow transaction with the caller as seller.
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	var newTx api.NewTransaction
	if err := json.NewDecoder(r.Body).Decode(&newTx); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	tx, err := h.Engine.Create(r.Context(), caller.Id, string(newTx.BuyerEmail), newTx.ItemName, newTx.ItemPrice, newTx.WithInsurance)
	if err != nil {
		respondError(w, err, "Failed to create transaction")
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToSellerTransaction(tx))
}

// GetTransactionById returns a transaction projected for the calling role.
func (h *TransactionsHandler) GetTransactionById(w http.ResponseWriter, r *http.Request, transactionId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	tx, err := h.Store.GetTransaction(r.Context(), transactionId)
	if err != nil {
		respondError(w, err, "Failed to retrieve transaction")
		return
	}

	projected := projectFor(caller, tx)
	if projected == nil {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, projected)
}

// ListTransactions returns the caller's transactions for the requested role.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	var (
		txs []models.Transaction
		err error
	)
	role := r.URL.Query().Get("role")
	switch role {
	case "buyer":
		txs, err = h.Store.ListTransactionsByBuyer(r.Context(), caller.Id)
	case "seller", "":
		role = "seller"
		txs, err = h.Store.ListTransactionsBySeller(r.Context(), caller.Id)
	default:
		http.Error(w, "Role must be buyer or seller", http.StatusBadRequest)
		return
	}
	if err != nil {
		respondError(w, err, "Failed to list transactions")
		return
	}

	out := make([]*api.Transaction, len(txs))
	for i := range txs {
		if role == "buyer" {
			out[i] = mapping.ToBuyerTransaction(&txs[i])
		} else {
			out[i] = mapping.ToSellerTransaction(&txs[i])
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// NotifyPayment is the payment gateway's callback after the virtual account
// receives the full amount. It is mounted outside the session middleware.
func (h *TransactionsHandler) NotifyPayment(w http.ResponseWriter, r *http.Request, transactionId string) {
	if _, err := h.Engine.MarkPaid(r.Context(), transactionId); err != nil {
		respondError(w, err, "Failed to record payment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ShipTransaction records the calling seller's shipment.
func (h *TransactionsHandler) ShipTransaction(w http.ResponseWriter, r *http.Request, transactionId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	var req api.ShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	tx, err := h.Engine.MarkShipped(r.Context(), transactionId, caller.Id, req.Courier, req.TrackingNumber)
	if err != nil {
		respondError(w, err, "Failed to record shipment")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToSellerTransaction(tx))
}

// ConfirmReceipt records the calling buyer's acceptance and releases the funds.
func (h *TransactionsHandler) ConfirmReceipt(w http.ResponseWriter, r *http.Request, transactionId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	tx, err := h.Engine.ConfirmReceipt(r.Context(), transactionId, caller.Id)
	if err != nil {
		respondError(w, err, "Failed to confirm receipt")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToBuyerTransaction(tx))
}

// RequestFundRelease records the calling seller's early-release request.
func (h *TransactionsHandler) RequestFundRelease(w http.ResponseWriter, r *http.Request, transactionId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	tx, err := h.Engine.RequestFundRelease(r.Context(), transactionId, caller.Id)
	if err != nil {
		respondError(w, err, "Failed to request fund release")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToSellerTransaction(tx))
}

// ApproveFundRelease is the admin's approval of a seller's early-release request.
func (h *TransactionsHandler) ApproveFundRelease(w http.ResponseWriter, r *http.Request, transactionId string) {
	tx, err := h.Engine.ApproveFundRelease(r.Context(), transactionId)
	if err != nil {
		respondError(w, err, "Failed to approve fund release")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToAdminTransaction(tx))
}

// CancelTransaction withdraws the calling seller's unpaid transaction.
func (h *TransactionsHandler) CancelTransaction(w http.ResponseWriter, r *http.Request, transactionId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	var req api.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	tx, err := h.Engine.CancelBySeller(r.Context(), transactionId, caller.Id, req.Reason)
	if err != nil {
		respondError(w, err, "Failed to cancel transaction")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToSellerTransaction(tx))
}

// projectFor picks the projection matching the caller's relation to the
// transaction, or nil when the caller is a stranger to it.
func projectFor(caller *models.User, tx *models.Transaction) *api.Transaction {
	switch {
	case caller.Role == models.RoleAdmin:
		return mapping.ToAdminTransaction(tx)
	case caller.Id == tx.BuyerID:
		return mapping.ToBuyerTransaction(tx)
	case caller.Id == tx.SellerID:
		return mapping.ToSellerTransaction(tx)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, fees.ErrPriceOutOfRange), errors.Is(err, escrow.ErrSameParty):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Transaction not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrActiveTransactionExists),
		errors.Is(err, escrow.ErrWrongStatus),
		errors.Is(err, escrow.ErrNotRequested):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("%s: %v", fallback, err), http.StatusInternalServerError)
	}
}
