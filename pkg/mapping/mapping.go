// Package mapping converts between domain models and API models. The
// transaction projections are role-aware: payment details belong to the buyer,
// payout details to the seller, and the admin sees everything.
package mapping

import (
	"github.com/andika/rekber-backend/pkg/api"
	"github.com/andika/rekber-backend/pkg/models"
)

// toApiTransaction converts the role-neutral fields of a transaction.
func toApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:                     tx.Id,
		Code:                   tx.Code,
		Status:                 string(tx.Status),
		SellerId:               tx.SellerID,
		BuyerId:                tx.BuyerID,
		ItemName:               tx.ItemName,
		ItemPrice:              tx.ItemPrice,
		PlatformFee:            tx.PlatformFee,
		InsuranceFee:           tx.InsuranceFee,
		TotalAmount:            tx.TotalAmount,
		PaymentDeadline:        tx.PaymentDeadline,
		ShipmentDeadline:       tx.ShipmentDeadline,
		BuyerConfirmDeadline:   tx.BuyerConfirmDeadline,
		Courier:                tx.Courier,
		TrackingNumber:         tx.TrackingNumber,
		CancelReason:           tx.CancelReason,
		CancelledBy:            tx.CancelledBy,
		FundReleaseRequestedAt: tx.FundReleaseRequestedAt,
		CreatedAt:              tx.CreatedAt,
		UpdatedAt:              tx.UpdatedAt,
	}
}

// ToBuyerTransaction projects a transaction for its buyer: the virtual
// account to pay into is visible, the seller's payout destination is not.
func ToBuyerTransaction(tx *models.Transaction) *api.Transaction {
	out := toApiTransaction(tx)
	va := tx.VirtualAccount
	out.VirtualAccount = &va
	return out
}

// ToSellerTransaction projects a transaction for its seller: the payout
// amount and destination are visible, the buyer's payment account is not.
func ToSellerTransaction(tx *models.Transaction) *api.Transaction {
	out := toApiTransaction(tx)
	if tx.WithdrawnAmount != 0 {
		amount := tx.WithdrawnAmount
		account := tx.WithdrawalBankAccount
		out.WithdrawnAmount = &amount
		out.WithdrawalBankAccount = &account
	}
	return out
}

// ToAdminTransaction projects a transaction for an admin: everything.
func ToAdminTransaction(tx *models.Transaction) *api.Transaction {
	out := ToSellerTransaction(tx)
	va := tx.VirtualAccount
	out.VirtualAccount = &va
	return out
}

// ToApiComplaint converts a domain Complaint to its API shape.
func ToApiComplaint(c *models.Complaint) *api.Complaint {
	out := &api.Complaint{
		Id:                     c.Id,
		TransactionId:          c.TransactionID,
		Type:                   string(c.Type),
		Status:                 string(c.Status),
		BuyerReason:            c.BuyerReason,
		BuyerEvidenceUrls:      c.BuyerEvidenceURLs,
		SellerDecision:         c.SellerDecision,
		SellerReason:           c.SellerReason,
		SellerEvidenceUrls:     c.SellerEvidenceURLs,
		SellerResponseDeadline: c.SellerResponseDeadline,
		AdminDecision:          c.AdminDecision,
		ReturnShipmentDeadline: c.ReturnShipmentDeadline,
		SellerConfirmDeadline:  c.SellerConfirmDeadline,
		ResolvedAt:             c.ResolvedAt,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
	if c.ReturnShipment != nil {
		out.ReturnShipment = &api.ReturnShipment{
			Courier:        c.ReturnShipment.Courier,
			TrackingNumber: c.ReturnShipment.TrackingNumber,
			PhotoUrl:       c.ReturnShipment.PhotoURL,
			ShippedAt:      c.ReturnShipment.ShippedAt,
			ReceivedAt:     c.ReturnShipment.ReceivedAt,
		}
	}
	return out
}

// ToApiUser converts a domain User to its API shape. Bank details stay
// server-side.
func ToApiUser(user *models.User) *api.User {
	return &api.User{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ToDomainNewUser converts a registration request to a domain User. The ID
// and role are assigned by the caller.
func ToDomainNewUser(newUser *api.NewUser) *models.User {
	return &models.User{
		Email:       string(newUser.Email),
		Name:        newUser.Name,
		BankCode:    newUser.BankCode,
		BankAccount: newUser.BankAccount,
		BankHolder:  newUser.BankHolder,
		DeviceToken: newUser.DeviceToken,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry to its API shape.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	return &api.LedgerEntry{
		EntryId:       entry.EntryID,
		TransactionId: entry.TransactionID,
		AccountId:     entry.AccountID,
		Debit:         entry.Debit,
		Credit:        entry.Credit,
		Description:   entry.Description,
		Timestamp:     entry.Timestamp,
	}
}
