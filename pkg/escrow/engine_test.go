package escrow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andika/rekber-backend/pkg/fees"
	"github.com/andika/rekber-backend/pkg/identity"
	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/notify"
	schedmocks "github.com/andika/rekber-backend/pkg/scheduler/mocks"
	"github.com/andika/rekber-backend/pkg/storage"
	storemocks "github.com/andika/rekber-backend/pkg/storage/mocks"
)

var frozenNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *storemocks.Storage, *schedmocks.Scheduler) {
	store := storemocks.NewStorage(t)
	sched := schedmocks.NewScheduler(t)
	engine := NewEngine(store, store, identity.NewService(store, nil), sched, &notify.NoOpNotifier{}, DefaultDeadlines)
	engine.now = func() time.Time { return frozenNow }
	return engine, store, sched
}

func TestCreate(t *testing.T) {
	engine, store, sched := newTestEngine(t)

	buyer := &models.User{Id: "buyer-1", Email: "buyer@example.com", DeviceToken: "tok"}
	store.On("GetUserByEmail", mock.Anything, "buyer@example.com").Return(buyer, nil)
	store.On("HasActiveTransaction", mock.Anything, "seller-1", "buyer-1").Return(false, nil)
	store.On("CreateTransaction", mock.Anything, mock.AnythingOfType("*models.Transaction")).Return(nil)
	store.On("GetUser", mock.Anything, "buyer-1").Return(buyer, nil).Maybe()
	sched.On("Schedule", mock.Anything, models.JobCancelPayment, mock.AnythingOfType("string"), frozenNow.Add(3*time.Hour)).Return(nil)

	tx, err := engine.Create(context.Background(), "seller-1", "buyer@example.com", "Mechanical keyboard", 1_000_000, true)
	require.NoError(t, err)

	assert.Equal(t, models.TxPendingPayment, tx.Status)
	assert.Equal(t, "seller-1", tx.SellerID)
	assert.Equal(t, "buyer-1", tx.BuyerID)
	assert.Equal(t, int64(10_000), tx.PlatformFee)
	assert.Equal(t, int64(2_000), tx.InsuranceFee)
	assert.Equal(t, int64(1_012_000), tx.TotalAmount)
	assert.Equal(t, frozenNow.Add(3*time.Hour), tx.PaymentDeadline)
	assert.Regexp(t, `^TRX-[0-9A-F]{8}$`, tx.Code)
	assert.Regexp(t, `^88\d{10}$`, tx.VirtualAccount)
}

func TestCreateRejectsSameParty(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	store.On("GetUserByEmail", mock.Anything, "seller@example.com").
		Return(&models.User{Id: "seller-1", Email: "seller@example.com"}, nil)

	_, err := engine.Create(context.Background(), "seller-1", "seller@example.com", "Item", 100_000, false)
	assert.ErrorIs(t, err, ErrSameParty)
}

func TestCreateRejectsActivePair(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	store.On("GetUserByEmail", mock.Anything, "buyer@example.com").
		Return(&models.User{Id: "buyer-1"}, nil)
	store.On("HasActiveTransaction", mock.Anything, "seller-1", "buyer-1").Return(true, nil)

	_, err := engine.Create(context.Background(), "seller-1", "buyer@example.com", "Item", 100_000, false)
	assert.ErrorIs(t, err, storage.ErrActiveTransactionExists)
}

func TestCreateRejectsPriceOutOfRange(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Create(context.Background(), "seller-1", "buyer@example.com", "Item", 9_999, false)
	assert.ErrorIs(t, err, fees.ErrPriceOutOfRange)

	_, err = engine.Create(context.Background(), "seller-1", "buyer@example.com", "Item", 10_000_001, false)
	assert.ErrorIs(t, err, fees.ErrPriceOutOfRange)
}

func TestMarkPaid(t *testing.T) {
	engine, store, sched := newTestEngine(t)

	tx := &models.Transaction{Id: "tx-1", SellerID: "seller-1", BuyerID: "buyer-1", Status: models.TxPendingPayment, ItemName: "Item"}
	shipmentDeadline := frozenNow.Add(48 * time.Hour)

	store.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
	store.On("MarkTransactionPaid", mock.Anything, "tx-1", frozenNow, shipmentDeadline).Return(nil)
	store.On("GetUser", mock.Anything, "seller-1").Return(&models.User{Id: "seller-1"}, nil).Maybe()
	sched.On("Cancel", mock.Anything, models.JobCancelPayment, "tx-1").Return(nil)
	sched.On("Schedule", mock.Anything, models.JobCancelShipment, "tx-1", shipmentDeadline).Return(nil)

	got, err := engine.MarkPaid(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, models.TxWaitingShipment, got.Status)
	require.NotNil(t, got.PaidAt)
	assert.Equal(t, frozenNow, *got.PaidAt)
	require.NotNil(t, got.ShipmentDeadline)
	assert.Equal(t, shipmentDeadline, *got.ShipmentDeadline)
}

func TestMarkPaidAfterCancel(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	tx := &models.Transaction{Id: "tx-1", Status: models.TxCanceled}
	store.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
	store.On("MarkTransactionPaid", mock.Anything, "tx-1", frozenNow, mock.AnythingOfType("time.Time")).
		Return(storage.ErrConditionFailed)

	_, err := engine.MarkPaid(context.Background(), "tx-1")
	assert.ErrorIs(t, err, ErrWrongStatus)
}

func TestMarkShippedWrongSeller(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	tx := &models.Transaction{Id: "tx-1", SellerID: "seller-1", Status: models.TxWaitingShipment}
	store.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)

	_, err := engine.MarkShipped(context.Background(), "tx-1", "someone-else", "JNE", "JNE123")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestConfirmReceipt(t *testing.T) {
	engine, store, sched := newTestEngine(t)

	tx := &models.Transaction{
		Id: "tx-1", SellerID: "seller-1", BuyerID: "buyer-1",
		Status: models.TxShipped, ItemPrice: 1_000_000,
		PlatformFee: 10_000, InsuranceFee: 2_000, TotalAmount: 1_012_000,
	}
	seller := &models.User{Id: "seller-1", BankCode: "014", BankAccount: "1234567890"}

	store.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
	store.On("GetUser", mock.Anything, "seller-1").Return(seller, nil)
	store.On("CompleteTransaction", mock.Anything, "tx-1", models.TxShipped,
		int64(1_000_000), "014/1234567890", "seller-1", frozenNow).Return(nil)
	sched.On("Cancel", mock.Anything, models.JobAutoComplete, "tx-1").Return(nil)

	got, err := engine.ConfirmReceipt(context.Background(), "tx-1", "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, models.TxCompleted, got.Status)
	assert.Equal(t, int64(1_000_000), got.WithdrawnAmount)
	assert.Equal(t, "014/1234567890", got.WithdrawalBankAccount)
}

func TestApproveFundReleaseWithoutRequest(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	tx := &models.Transaction{Id: "tx-1", Status: models.TxShipped}
	store.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)

	_, err := engine.ApproveFundRelease(context.Background(), "tx-1")
	assert.ErrorIs(t, err, ErrNotRequested)
}

func TestAutoCancelPaymentIsNoOpWhenPaid(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	store.On("CancelTransaction", mock.Anything, "tx-1", models.TxPendingPayment,
		models.CancelReasonTimeout, models.CancelActorSystem, frozenNow).
		Return(storage.ErrConditionFailed)

	err := engine.AutoCancelPayment(context.Background(), "tx-1")
	assert.NoError(t, err)
}

func TestAutoCancelPayment(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	tx := &models.Transaction{Id: "tx-1", SellerID: "seller-1", BuyerID: "buyer-1"}
	store.On("CancelTransaction", mock.Anything, "tx-1", models.TxPendingPayment,
		models.CancelReasonTimeout, models.CancelActorSystem, frozenNow).Return(nil)
	store.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
	store.On("GetUser", mock.Anything, mock.AnythingOfType("string")).
		Return(&models.User{}, nil).Maybe()

	err := engine.AutoCancelPayment(context.Background(), "tx-1")
	assert.NoError(t, err)
}

func TestAutoCompleteGuardNoLongerHolds(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	tx := &models.Transaction{Id: "tx-1", Status: models.TxCompleted}
	store.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)

	err := engine.AutoComplete(context.Background(), "tx-1")
	assert.NoError(t, err)
	store.AssertNotCalled(t, "CompleteTransaction",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAutoCompleteReschedulesEarlyFire(t *testing.T) {
	engine, store, sched := newTestEngine(t)

	future := frozenNow.Add(time.Hour)
	tx := &models.Transaction{Id: "tx-1", Status: models.TxShipped, BuyerConfirmDeadline: &future}
	store.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
	sched.On("Schedule", mock.Anything, models.JobAutoComplete, "tx-1", future).Return(nil)

	err := engine.AutoComplete(context.Background(), "tx-1")
	assert.NoError(t, err)
	store.AssertNotCalled(t, "CompleteTransaction",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAutoCompleteReleasesFunds(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	elapsed := frozenNow.Add(-time.Minute)
	tx := &models.Transaction{
		Id: "tx-1", SellerID: "seller-1", BuyerID: "buyer-1",
		Status: models.TxShipped, BuyerConfirmDeadline: &elapsed,
		PlatformFee: 10_000, InsuranceFee: 0, TotalAmount: 1_010_000,
	}
	seller := &models.User{Id: "seller-1", BankCode: "014", BankAccount: "1234567890"}

	store.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
	store.On("GetUser", mock.Anything, "seller-1").Return(seller, nil)
	store.On("CompleteTransaction", mock.Anything, "tx-1", models.TxShipped,
		int64(1_000_000), "014/1234567890", "seller-1", frozenNow).Return(nil)

	err := engine.AutoComplete(context.Background(), "tx-1")
	assert.NoError(t, err)
}

func TestAutoCompleteLosesRace(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	elapsed := frozenNow.Add(-time.Minute)
	tx := &models.Transaction{
		Id: "tx-1", SellerID: "seller-1",
		Status: models.TxShipped, BuyerConfirmDeadline: &elapsed,
		TotalAmount: 1_010_000, PlatformFee: 10_000,
	}
	store.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
	store.On("GetUser", mock.Anything, "seller-1").Return(&models.User{Id: "seller-1"}, nil)
	store.On("CompleteTransaction", mock.Anything, "tx-1", models.TxShipped,
		mock.AnythingOfType("int64"), mock.AnythingOfType("string"), "seller-1", frozenNow).
		Return(storage.ErrConditionFailed)

	err := engine.AutoComplete(context.Background(), "tx-1")
	assert.NoError(t, err)
}

func TestResumeAfterComplaintClampsElapsedDeadline(t *testing.T) {
	engine, _, sched := newTestEngine(t)

	elapsed := frozenNow.Add(-2 * time.Hour)
	tx := &models.Transaction{Id: "tx-1", BuyerConfirmDeadline: &elapsed}
	sched.On("Schedule", mock.Anything, models.JobAutoComplete, "tx-1", frozenNow).Return(nil)

	engine.ResumeAfterComplaint(context.Background(), tx)
}
