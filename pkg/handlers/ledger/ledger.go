// Package ledger holds the admin-only handlers for the payout/refund audit trail.
package ledger

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/andika/rekber-backend/pkg/api"
	"github.com/andika/rekber-backend/pkg/mapping"
	"github.com/andika/rekber-backend/pkg/storage"
)

const defaultLimit = 100

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Store storage.LedgerReader
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store storage.LedgerReader) *LedgerHandler {
	return &LedgerHandler{Store: store}
}

// ListLedgerEntries returns the most recent ledger entries, newest first.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request) {
	limit := int32(defaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			http.Error(w, "Limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = int32(parsed)
	}

	entries, err := h.Store.ListLedgerEntries(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve ledger entries: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]*api.LedgerEntry, len(entries))
	for i := range entries {
		out[i] = mapping.ToApiLedgerEntry(&entries[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
