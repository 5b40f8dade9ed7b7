package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andika/rekber-backend/pkg/models"
)

func sampleTransaction() *models.Transaction {
	return &models.Transaction{
		Id:                    "tx-1",
		Code:                  "TRX-DEADBEEF",
		SellerID:              "seller-1",
		BuyerID:               "buyer-1",
		ItemName:              "Camera lens",
		ItemPrice:             2_000_000,
		PlatformFee:           20_000,
		InsuranceFee:          4_000,
		TotalAmount:           2_024_000,
		Status:                models.TxCompleted,
		VirtualAccount:        "880123456789",
		WithdrawnAmount:       2_000_000,
		WithdrawalBankAccount: "014/1234567890",
		CreatedAt:             time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestBuyerProjectionHidesPayoutDetails(t *testing.T) {
	out := ToBuyerTransaction(sampleTransaction())

	require.NotNil(t, out.VirtualAccount)
	assert.Equal(t, "880123456789", *out.VirtualAccount)
	assert.Nil(t, out.WithdrawnAmount)
	assert.Nil(t, out.WithdrawalBankAccount)
}

func TestSellerProjectionHidesPaymentAccount(t *testing.T) {
	out := ToSellerTransaction(sampleTransaction())

	assert.Nil(t, out.VirtualAccount)
	require.NotNil(t, out.WithdrawnAmount)
	assert.Equal(t, int64(2_000_000), *out.WithdrawnAmount)
	require.NotNil(t, out.WithdrawalBankAccount)
	assert.Equal(t, "014/1234567890", *out.WithdrawalBankAccount)
}

func TestSellerProjectionBeforePayout(t *testing.T) {
	tx := sampleTransaction()
	tx.Status = models.TxShipped
	tx.WithdrawnAmount = 0
	tx.WithdrawalBankAccount = ""

	out := ToSellerTransaction(tx)
	assert.Nil(t, out.WithdrawnAmount)
	assert.Nil(t, out.WithdrawalBankAccount)
}

func TestAdminProjectionSeesEverything(t *testing.T) {
	out := ToAdminTransaction(sampleTransaction())

	require.NotNil(t, out.VirtualAccount)
	require.NotNil(t, out.WithdrawnAmount)
}

func TestComplaintMappingCarriesReturnShipment(t *testing.T) {
	received := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	c := &models.Complaint{
		Id:            "c-1",
		TransactionID: "tx-1",
		Type:          models.ComplaintDamaged,
		Status:        models.ComplaintAwaitingSellerConfirmation,
		BuyerReason:   "Arrived cracked",
		ReturnShipment: &models.ReturnShipment{
			Courier:        "JNE",
			TrackingNumber: "JNE42",
			PhotoURL:       "https://storage.example.com/r1.jpg",
			ReceivedAt:     &received,
		},
	}

	out := ToApiComplaint(c)
	assert.Equal(t, "damaged", out.Type)
	require.NotNil(t, out.ReturnShipment)
	assert.Equal(t, "JNE42", out.ReturnShipment.TrackingNumber)
	assert.Equal(t, &received, out.ReturnShipment.ReceivedAt)
}

func TestUserMappingOmitsBankDetails(t *testing.T) {
	out := ToApiUser(&models.User{
		Id: "u-1", Email: "u@example.com", Name: "Andika", Role: models.RoleUser,
		BankCode: "014", BankAccount: "1234567890",
	})

	assert.Equal(t, "u-1", out.Id)
	assert.Equal(t, models.RoleUser, out.Role)
}
