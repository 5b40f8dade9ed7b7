package models

import (
	"time"
)

// TransactionStatus defines the possible states of an escrow transaction.
type TransactionStatus string

const (
	TxPendingPayment  TransactionStatus = "pending_payment"
	TxWaitingShipment TransactionStatus = "waiting_shipment"
	TxShipped         TransactionStatus = "shipped"
	TxComplain        TransactionStatus = "complain"
	TxCompleted       TransactionStatus = "completed"
	TxCanceled        TransactionStatus = "canceled"
)

// IsTerminal reports whether no further transitions are possible from s.
func (s TransactionStatus) IsTerminal() bool {
	return s == TxCompleted || s == TxCanceled
}

// Cancellation actors recorded on a canceled transaction.
const (
	CancelActorSeller = "seller"
	CancelActorSystem = "system"
)

// CancelReasonTimeout is recorded when a deadline worker cancels a transaction.
const CancelReasonTimeout = "timeout"

// Transaction represents the internal domain model for an escrow transaction.
// It includes dynamodbav tags for marshalling.
type Transaction struct {
	Id             string            `dynamodbav:"id"`
	Code           string            `dynamodbav:"code"`
	SellerID       string            `dynamodbav:"seller_id"`
	BuyerID        string            `dynamodbav:"buyer_id"`
	ItemName       string            `dynamodbav:"item_name"`
	ItemPrice      int64             `dynamodbav:"item_price"`
	PlatformFee    int64             `dynamodbav:"platform_fee"`
	InsuranceFee   int64             `dynamodbav:"insurance_fee"`
	TotalAmount    int64             `dynamodbav:"total_amount"`
	Status         TransactionStatus `dynamodbav:"status"`
	VirtualAccount string            `dynamodbav:"virtual_account"`

	PaymentDeadline      time.Time  `dynamodbav:"payment_deadline"`
	ShipmentDeadline     *time.Time `dynamodbav:"shipment_deadline,omitempty"`
	BuyerConfirmDeadline *time.Time `dynamodbav:"buyer_confirm_deadline,omitempty"`

	PaidAt      *time.Time `dynamodbav:"paid_at,omitempty"`
	ShippedAt   *time.Time `dynamodbav:"shipped_at,omitempty"`
	ConfirmedAt *time.Time `dynamodbav:"confirmed_at,omitempty"`
	CancelledAt *time.Time `dynamodbav:"cancelled_at,omitempty"`
	WithdrawnAt *time.Time `dynamodbav:"withdrawn_at,omitempty"`

	Courier        string `dynamodbav:"courier,omitempty"`
	TrackingNumber string `dynamodbav:"tracking_number,omitempty"`

	CancelReason string `dynamodbav:"cancel_reason,omitempty"`
	CancelledBy  string `dynamodbav:"cancelled_by,omitempty"`

	FundReleaseRequestedAt *time.Time `dynamodbav:"fund_release_requested_at,omitempty"`

	WithdrawnAmount       int64  `dynamodbav:"withdrawn_amount,omitempty"`
	WithdrawalBankAccount string `dynamodbav:"withdrawal_bank_account,omitempty"`

	CreatedAt time.Time `dynamodbav:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
}

// LedgerEntry represents a single entry in the double-entry ledger written at
// transaction completion (seller payout or buyer refund, plus platform fee revenue).
type LedgerEntry struct {
	EntryID       string    `dynamodbav:"entry_id"`
	TransactionID string    `dynamodbav:"transaction_id"`
	AccountID     string    `dynamodbav:"account_id"`
	Debit         int64     `dynamodbav:"debit,omitempty"`
	Credit        int64     `dynamodbav:"credit,omitempty"`
	Description   string    `dynamodbav:"description"`
	Timestamp     time.Time `dynamodbav:"timestamp"`
	GSI1PK        string    `dynamodbav:"gsi1pk"`
}

// LedgerPartition is the constant partition key for the ledger GSI.
const LedgerPartition = "LEDGER_ENTRIES"

// PlatformAccountID is the ledger account credited with platform fees.
const PlatformAccountID = "PLATFORM"

// User roles. Admins review complaints and fund-release requests.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the minimal identity record the engines need: who to notify and
// where withdrawn funds go. Authentication itself lives outside this service.
type User struct {
	Id          string    `dynamodbav:"id"`
	Email       string    `dynamodbav:"email"`
	Name        string    `dynamodbav:"name"`
	Role        string    `dynamodbav:"role"`
	DeviceToken string    `dynamodbav:"device_token,omitempty"`
	BankCode    string    `dynamodbav:"bank_code,omitempty"`
	BankAccount string    `dynamodbav:"bank_account,omitempty"`
	BankHolder  string    `dynamodbav:"bank_holder,omitempty"`
	CreatedAt   time.Time `dynamodbav:"created_at"`
}
