// Package api defines the request and response shapes of the HTTP boundary.
// Handlers decode into these, call an engine, and encode the result back; the
// domain models never cross the wire directly.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewTransaction is the seller's request to open an escrow transaction.
type NewTransaction struct {
	BuyerEmail    openapi_types.Email `json:"buyerEmail"`
	ItemName      string              `json:"itemName"`
	ItemPrice     int64               `json:"itemPrice"`
	WithInsurance bool                `json:"withInsurance"`
}

// ShipRequest carries the seller's shipment details.
type ShipRequest struct {
	Courier        string `json:"courier"`
	TrackingNumber string `json:"trackingNumber"`
}

// CancelRequest carries the seller's reason for withdrawing an unpaid transaction.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// Transaction is the wire shape of an escrow transaction. Role-sensitive
// fields are pointers and only populated for the party allowed to see them.
type Transaction struct {
	Id           string `json:"id"`
	Code         string `json:"code"`
	Status       string `json:"status"`
	SellerId     string `json:"sellerId"`
	BuyerId      string `json:"buyerId"`
	ItemName     string `json:"itemName"`
	ItemPrice    int64  `json:"itemPrice"`
	PlatformFee  int64  `json:"platformFee"`
	InsuranceFee int64  `json:"insuranceFee"`
	TotalAmount  int64  `json:"totalAmount"`

	VirtualAccount *string `json:"virtualAccount,omitempty"`

	PaymentDeadline      time.Time  `json:"paymentDeadline"`
	ShipmentDeadline     *time.Time `json:"shipmentDeadline,omitempty"`
	BuyerConfirmDeadline *time.Time `json:"buyerConfirmDeadline,omitempty"`

	Courier        string `json:"courier,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`

	CancelReason string `json:"cancelReason,omitempty"`
	CancelledBy  string `json:"cancelledBy,omitempty"`

	FundReleaseRequestedAt *time.Time `json:"fundReleaseRequestedAt,omitempty"`

	WithdrawnAmount       *int64  `json:"withdrawnAmount,omitempty"`
	WithdrawalBankAccount *string `json:"withdrawalBankAccount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewComplaint is the buyer's request to open a dispute. Photos travel as
// base64-encoded JSON strings.
type NewComplaint struct {
	TransactionId openapi_types.UUID `json:"transactionId"`
	Type          string             `json:"type"`
	Reason        string             `json:"reason"`
	Photos        [][]byte           `json:"photos,omitempty"`
}

// SellerComplaintResponse is the seller's answer to a complaint.
type SellerComplaintResponse struct {
	Decision string   `json:"decision"`
	Reason   string   `json:"reason,omitempty"`
	Photos   [][]byte `json:"photos,omitempty"`
}

// AdminComplaintResponse is the admin's verdict on a complaint.
type AdminComplaintResponse struct {
	Decision string `json:"decision"`
}

// NewReturnShipment carries the buyer's return shipment details.
type NewReturnShipment struct {
	Courier        string `json:"courier"`
	TrackingNumber string `json:"trackingNumber"`
	Photo          []byte `json:"photo"`
}

// ConfirmationRequest is the buyer's claim that the returned item arrived.
type ConfirmationRequest struct {
	Reason string   `json:"reason"`
	Photos [][]byte `json:"photos,omitempty"`
}

// ConfirmReturn is the admin's verdict on the buyer's delivered-back claim.
type ConfirmReturn struct {
	Approved bool `json:"approved"`
}

// ReturnShipment is the wire shape of a complaint's return shipment.
type ReturnShipment struct {
	Courier        string     `json:"courier"`
	TrackingNumber string     `json:"trackingNumber"`
	PhotoUrl       string     `json:"photoUrl"`
	ShippedAt      time.Time  `json:"shippedAt"`
	ReceivedAt     *time.Time `json:"receivedAt,omitempty"`
}

// Complaint is the wire shape of a dispute.
type Complaint struct {
	Id            string `json:"id"`
	TransactionId string `json:"transactionId"`
	Type          string `json:"type"`
	Status        string `json:"status"`

	BuyerReason       string   `json:"buyerReason"`
	BuyerEvidenceUrls []string `json:"buyerEvidenceUrls,omitempty"`

	SellerDecision         string     `json:"sellerDecision,omitempty"`
	SellerReason           string     `json:"sellerReason,omitempty"`
	SellerEvidenceUrls     []string   `json:"sellerEvidenceUrls,omitempty"`
	SellerResponseDeadline *time.Time `json:"sellerResponseDeadline,omitempty"`

	AdminDecision string `json:"adminDecision,omitempty"`

	ReturnShipmentDeadline *time.Time `json:"returnShipmentDeadline,omitempty"`
	SellerConfirmDeadline  *time.Time `json:"sellerConfirmDeadline,omitempty"`

	ReturnShipment *ReturnShipment `json:"returnShipment,omitempty"`

	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewUser is a registration request.
type NewUser struct {
	Email       openapi_types.Email `json:"email"`
	Name        string              `json:"name"`
	BankCode    string              `json:"bankCode,omitempty"`
	BankAccount string              `json:"bankAccount,omitempty"`
	BankHolder  string              `json:"bankHolder,omitempty"`
	DeviceToken string              `json:"deviceToken,omitempty"`
}

// User is the wire shape of a registered user.
type User struct {
	Id        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// OTPRequest asks for a login code to be sent to the email.
type OTPRequest struct {
	Email openapi_types.Email `json:"email"`
}

// OTPVerification exchanges a login code for a session token.
type OTPVerification struct {
	Email openapi_types.Email `json:"email"`
	Code  string              `json:"code"`
}

// Session is the issued session token.
type Session struct {
	Token string `json:"token"`
}

// LedgerEntry is the wire shape of a payout/refund audit record.
type LedgerEntry struct {
	EntryId       string    `json:"entryId"`
	TransactionId string    `json:"transactionId"`
	AccountId     string    `json:"accountId"`
	Debit         int64     `json:"debit,omitempty"`
	Credit        int64     `json:"credit,omitempty"`
	Description   string    `json:"description"`
	Timestamp     time.Time `json:"timestamp"`
}
