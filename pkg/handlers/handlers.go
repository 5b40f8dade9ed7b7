// Package handlers assembles the HTTP router from the per-area handler
// packages. Route shape and authorization live here; behavior lives in the
// engines.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	complaintsengine "github.com/andika/rekber-backend/pkg/complaints"
	"github.com/andika/rekber-backend/pkg/escrow"
	"github.com/andika/rekber-backend/pkg/handlers/auth"
	"github.com/andika/rekber-backend/pkg/handlers/complaints"
	"github.com/andika/rekber-backend/pkg/handlers/ledger"
	"github.com/andika/rekber-backend/pkg/handlers/transactions"
	"github.com/andika/rekber-backend/pkg/identity"
	"github.com/andika/rekber-backend/pkg/middleware"
	"github.com/andika/rekber-backend/pkg/notify"
	"github.com/andika/rekber-backend/pkg/storage"
)

// Deps bundles everything the router needs.
type Deps struct {
	Store      storage.ApiStore
	Escrow     *escrow.Engine
	Complaints *complaintsengine.Engine
	Sessions   *identity.SessionCache
	Notifier   notify.Notifier
}

// NewRouter builds the chi router with all routes mounted.
func NewRouter(deps Deps) chi.Router {
	txHandler := transactions.NewTransactionsHandler(deps.Escrow, deps.Store)
	complaintHandler := complaints.NewComplaintsHandler(deps.Complaints, deps.Store)
	authHandler := auth.NewAuthHandler(deps.Store, deps.Sessions, deps.Notifier)
	ledgerHandler := ledger.NewLedgerHandler(deps.Store)

	authenticator := &middleware.Authenticator{Sessions: deps.Sessions, Users: deps.Store}

	r := chi.NewRouter()

	// Unauthenticated: registration, login, and the payment gateway callback.
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/otp", authHandler.RequestOTP)
	r.Post("/auth/verify", authHandler.VerifyOTP)
	r.Post("/transactions/{transactionId}/pay", withID(txHandler.NotifyPayment, "transactionId"))

	// Session-scoped routes.
	r.Group(func(r chi.Router) {
		r.Use(authenticator.Middleware)

		r.Post("/transactions", txHandler.CreateTransaction)
		r.Get("/transactions", txHandler.ListTransactions)
		r.Get("/transactions/{transactionId}", withID(txHandler.GetTransactionById, "transactionId"))
		r.Post("/transactions/{transactionId}/ship", withID(txHandler.ShipTransaction, "transactionId"))
		r.Post("/transactions/{transactionId}/confirm", withID(txHandler.ConfirmReceipt, "transactionId"))
		r.Post("/transactions/{transactionId}/fund-release", withID(txHandler.RequestFundRelease, "transactionId"))
		r.Post("/transactions/{transactionId}/cancel", withID(txHandler.CancelTransaction, "transactionId"))
		r.Get("/transactions/{transactionId}/complaints", withID(complaintHandler.ListByTransaction, "transactionId"))

		r.Post("/complaints", complaintHandler.CreateComplaint)
		r.Get("/complaints/{complaintId}", withID(complaintHandler.GetComplaintById, "complaintId"))
		r.Post("/complaints/{complaintId}/seller-response", withID(complaintHandler.SellerRespond, "complaintId"))
		r.Post("/complaints/{complaintId}/return-shipment", withID(complaintHandler.SubmitReturnShipment, "complaintId"))
		r.Post("/complaints/{complaintId}/request-confirmation", withID(complaintHandler.RequestConfirmation, "complaintId"))
		r.Post("/complaints/{complaintId}/confirm-receive", withID(complaintHandler.ConfirmReceive, "complaintId"))

		// Admin-only routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/transactions/{transactionId}/fund-release/approve", withID(txHandler.ApproveFundRelease, "transactionId"))
			r.Post("/complaints/{complaintId}/admin-response", withID(complaintHandler.AdminRespond, "complaintId"))
			r.Post("/complaints/{complaintId}/confirm-return", withID(complaintHandler.ConfirmReturn, "complaintId"))
			r.Get("/ledger", ledgerHandler.ListLedgerEntries)
		})
	})

	return r
}

// withID adapts a handler taking a path parameter to http.HandlerFunc.
func withID(h func(http.ResponseWriter, *http.Request, string), param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r, chi.URLParam(r, param))
	}
}
