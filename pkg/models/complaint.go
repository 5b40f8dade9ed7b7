package models

import (
	"time"
)

// ComplaintType classifies what went wrong with a shipped item.
type ComplaintType string

const (
	ComplaintDamaged        ComplaintType = "damaged"
	ComplaintLost           ComplaintType = "lost"
	ComplaintNotAsDescribed ComplaintType = "not_as_described"
)

// Valid reports whether t is one of the known complaint types.
func (t ComplaintType) Valid() bool {
	switch t {
	case ComplaintDamaged, ComplaintLost, ComplaintNotAsDescribed:
		return true
	}
	return false
}

// ComplaintStatus defines the possible states of a complaint.
type ComplaintStatus string

const (
	ComplaintWaitingSellerApproval      ComplaintStatus = "waiting_seller_approval"
	ComplaintUnderInvestigation         ComplaintStatus = "under_investigation"
	ComplaintAwaitingAdminApproval      ComplaintStatus = "awaiting_admin_approval"
	ComplaintRejectedBySeller           ComplaintStatus = "rejected_by_seller"
	ComplaintRejectedByAdmin            ComplaintStatus = "rejected_by_admin"
	ComplaintReturnRequested            ComplaintStatus = "return_requested"
	ComplaintReturnInTransit            ComplaintStatus = "return_in_transit"
	ComplaintAwaitingAdminConfirmation  ComplaintStatus = "awaiting_admin_confirmation"
	ComplaintAwaitingSellerConfirmation ComplaintStatus = "awaiting_seller_confirmation"
	ComplaintCompleted                  ComplaintStatus = "completed"
	ComplaintCanceledByBuyer            ComplaintStatus = "canceled_by_buyer"
)

// IsTerminal reports whether the complaint is retired.
func (s ComplaintStatus) IsTerminal() bool {
	switch s {
	case ComplaintRejectedBySeller, ComplaintRejectedByAdmin, ComplaintCompleted, ComplaintCanceledByBuyer:
		return true
	}
	return false
}

// Decision values recorded for seller and admin responses.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ReturnShipment is created at most once per complaint, when the buyer ships
// the item back to the seller.
type ReturnShipment struct {
	Courier        string     `dynamodbav:"courier"`
	TrackingNumber string     `dynamodbav:"tracking_number"`
	PhotoURL       string     `dynamodbav:"photo_url"`
	ShippedAt      time.Time  `dynamodbav:"shipped_at"`
	ReceivedAt     *time.Time `dynamodbav:"received_at,omitempty"`
}

// Complaint represents a dispute bound to a single escrow transaction.
// At most one non-terminal complaint exists per transaction; this is enforced
// by the conditional park of the transaction into the complain status.
type Complaint struct {
	Id            string          `dynamodbav:"id"`
	TransactionID string          `dynamodbav:"transaction_id"`
	BuyerID       string          `dynamodbav:"buyer_id"`
	Type          ComplaintType   `dynamodbav:"type"`
	Status        ComplaintStatus `dynamodbav:"status"`

	BuyerReason       string   `dynamodbav:"buyer_reason"`
	BuyerEvidenceURLs []string `dynamodbav:"buyer_evidence_urls,omitempty"`

	SellerDecision         string     `dynamodbav:"seller_decision,omitempty"`
	SellerReason           string     `dynamodbav:"seller_reason,omitempty"`
	SellerEvidenceURLs     []string   `dynamodbav:"seller_evidence_urls,omitempty"`
	SellerResponseDeadline *time.Time `dynamodbav:"seller_response_deadline,omitempty"`

	AdminDecision    string     `dynamodbav:"admin_decision,omitempty"`
	AdminRespondedAt *time.Time `dynamodbav:"admin_responded_at,omitempty"`

	RequestConfirmationReason   string     `dynamodbav:"request_confirmation_reason,omitempty"`
	RequestConfirmationEvidence []string   `dynamodbav:"request_confirmation_evidence,omitempty"`
	RequestConfirmationAt       *time.Time `dynamodbav:"request_confirmation_at,omitempty"`
	RequestConfirmationStatus   string     `dynamodbav:"request_confirmation_status,omitempty"`
	RequestConfirmationAdminID  string     `dynamodbav:"request_confirmation_admin_id,omitempty"`

	SellerConfirmDeadline  *time.Time `dynamodbav:"seller_confirm_deadline,omitempty"`
	ReturnShipmentDeadline *time.Time `dynamodbav:"return_shipment_deadline,omitempty"`

	ReturnShipment *ReturnShipment `dynamodbav:"return_shipment,omitempty"`

	ResolvedAt *time.Time `dynamodbav:"resolved_at,omitempty"`
	CreatedAt  time.Time  `dynamodbav:"created_at"`
	UpdatedAt  time.Time  `dynamodbav:"updated_at"`
}

// NeedsSellerResponse reports whether the complaint type goes through the
// seller-first flow. Lost items go straight to the admin.
func (t ComplaintType) NeedsSellerResponse() bool {
	return t != ComplaintLost
}
