// Package complaints holds the HTTP handlers for the dispute lifecycle.
package complaints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/andika/rekber-backend/pkg/api"
	"github.com/andika/rekber-backend/pkg/complaints"
	"github.com/andika/rekber-backend/pkg/mapping"
	"github.com/andika/rekber-backend/pkg/middleware"
	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
)

// ComplaintsHandler holds the dependencies for complaint-related handlers.
type ComplaintsHandler struct {
	Engine *complaints.Engine
	Store  storage.ApiStore
}

// NewComplaintsHandler creates a new ComplaintsHandler.
func NewComplaintsHandler(engine *complaints.Engine, store storage.ApiStore) *ComplaintsHandler {
	return &ComplaintsHandler{Engine: engine, Store: store}
}

// CreateComplaint files a dispute on a shipped transaction with the caller as buyer.
func (h *ComplaintsHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	var newComplaint api.NewComplaint
	if err := json.NewDecoder(r.Body).Decode(&newComplaint); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	c, err := h.Engine.File(r.Context(), newComplaint.TransactionId.String(), caller.Id,
		models.ComplaintType(newComplaint.Type), newComplaint.Reason, newComplaint.Photos)
	if err != nil {
		respondError(w, err, "Failed to file complaint")
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiComplaint(c))
}

// GetComplaintById returns a complaint visible to its buyer, the transaction's
// seller, or an admin.
func (h *ComplaintsHandler) GetComplaintById(w http.ResponseWriter, r *http.Request, complaintId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	c, err := h.Store.GetComplaint(r.Context(), complaintId)
	if err != nil {
		respondError(w, err, "Failed to retrieve complaint")
		return
	}

	if caller.Role != models.RoleAdmin && caller.Id != c.BuyerID {
		tx, err := h.Store.GetTransaction(r.Context(), c.TransactionID)
		if err != nil || tx.SellerID != caller.Id {
			http.Error(w, "Complaint not found", http.StatusNotFound)
			return
		}
	}

	respondJSON(w, http.StatusOK, mapping.ToApiComplaint(c))
}

// ListByTransaction returns a transaction's complaint history, newest included,
// visible to its buyer, its seller, or an admin.
func (h *ComplaintsHandler) ListByTransaction(w http.ResponseWriter, r *http.Request, transactionId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	tx, err := h.Store.GetTransaction(r.Context(), transactionId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve transaction: %v", err), http.StatusInternalServerError)
		return
	}

	if caller.Role != models.RoleAdmin && caller.Id != tx.BuyerID && caller.Id != tx.SellerID {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}

	cs, err := h.Store.ListComplaintsByTransaction(r.Context(), tx.Id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list complaints: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]*api.Complaint, 0, len(cs))
	for i := range cs {
		out = append(out, mapping.ToApiComplaint(&cs[i]))
	}

	respondJSON(w, http.StatusOK, out)
}

// SellerRespond records the calling seller's answer to a complaint.
func (h *ComplaintsHandler) SellerRespond(w http.ResponseWriter, r *http.Request, complaintId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	var req api.SellerComplaintResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	c, err := h.Engine.SellerRespond(r.Context(), complaintId, caller.Id, req.Decision, req.Reason, req.Photos)
	if err != nil {
		respondError(w, err, "Failed to record seller response")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiComplaint(c))
}

// AdminRespond records the admin's verdict on a complaint.
func (h *ComplaintsHandler) AdminRespond(w http.ResponseWriter, r *http.Request, complaintId string) {
	var req api.AdminComplaintResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	c, err := h.Engine.AdminRespond(r.Context(), complaintId, req.Decision)
	if err != nil {
		respondError(w, err, "Failed to record admin response")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiComplaint(c))
}

// SubmitReturnShipment records the calling buyer's return shipment.
func (h *ComplaintsHandler) SubmitReturnShipment(w http.ResponseWriter, r *http.Request, complaintId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	var req api.NewReturnShipment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	c, err := h.Engine.SubmitReturnShipment(r.Context(), complaintId, caller.Id, req.Courier, req.TrackingNumber, req.Photo)
	if err != nil {
		respondError(w, err, "Failed to record return shipment")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiComplaint(c))
}

// RequestConfirmation records the calling buyer's delivered-back claim.
func (h *ComplaintsHandler) RequestConfirmation(w http.ResponseWriter, r *http.Request, complaintId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	var req api.ConfirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	c, err := h.Engine.RequestConfirmation(r.Context(), complaintId, caller.Id, req.Reason, req.Photos)
	if err != nil {
		respondError(w, err, "Failed to request confirmation")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiComplaint(c))
}

// ConfirmReturn records the admin's verdict on the buyer's delivered-back claim.
func (h *ComplaintsHandler) ConfirmReturn(w http.ResponseWriter, r *http.Request, complaintId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	var req api.ConfirmReturn
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	c, err := h.Engine.AdminConfirmReturn(r.Context(), complaintId, caller.Id, req.Approved)
	if err != nil {
		respondError(w, err, "Failed to confirm return")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiComplaint(c))
}

// ConfirmReceive records the calling seller's acknowledgment of the returned item.
func (h *ComplaintsHandler) ConfirmReceive(w http.ResponseWriter, r *http.Request, complaintId string) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "Missing caller", http.StatusUnauthorized)
		return
	}

	c, err := h.Engine.SellerConfirmReceive(r.Context(), complaintId, caller.Id)
	if err != nil {
		respondError(w, err, "Failed to confirm returned item")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiComplaint(c))
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
	case errors.Is(err, complaints.ErrInvalidType), errors.Is(err, complaints.ErrInvalidDecision):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Complaint not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrActiveComplaintExists),
		errors.Is(err, complaints.ErrWrongStatus),
		errors.Is(err, complaints.ErrTransactionNotShipped):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("%s: %v", fallback, err), http.StatusInternalServerError)
	}
}
