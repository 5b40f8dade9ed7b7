package complaints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andika/rekber-backend/pkg/api"
	complaintsengine "github.com/andika/rekber-backend/pkg/complaints"
	"github.com/andika/rekber-backend/pkg/escrow"
	"github.com/andika/rekber-backend/pkg/identity"
	"github.com/andika/rekber-backend/pkg/middleware"
	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/notify"
	scheduler_mocks "github.com/andika/rekber-backend/pkg/scheduler/mocks"
	storage_mocks "github.com/andika/rekber-backend/pkg/storage/mocks"
	upload_mocks "github.com/andika/rekber-backend/pkg/uploads/mocks"
)

func newHandler(t *testing.T) (*ComplaintsHandler, *storage_mocks.Storage, *scheduler_mocks.Scheduler, *upload_mocks.Uploader) {
	mockStorage := storage_mocks.NewStorage(t)
	mockScheduler := scheduler_mocks.NewScheduler(t)
	mockUploader := upload_mocks.NewUploader(t)

	esc := escrow.NewEngine(mockStorage, mockStorage, identity.NewService(mockStorage, nil), mockScheduler, &notify.NoOpNotifier{}, escrow.DefaultDeadlines)
	engine := complaintsengine.NewEngine(mockStorage, mockStorage, mockStorage, esc, mockScheduler, &notify.NoOpNotifier{}, mockUploader, complaintsengine.DefaultDeadlines)
	return NewComplaintsHandler(engine, mockStorage), mockStorage, mockScheduler, mockUploader
}

func asCaller(req *http.Request, user *models.User) *http.Request {
	return req.WithContext(middleware.WithCaller(req.Context(), user))
}

func TestCreateComplaint_Success(t *testing.T) {
	handler, mockStorage, mockScheduler, _ := newHandler(t)

	txID := uuid.New()
	tx := &models.Transaction{
		Id: txID.String(), SellerID: "seller-1", BuyerID: "buyer-1",
		ItemName: "Camera lens", Status: models.TxShipped,
	}
	mockStorage.On("GetTransaction", mock.Anything, txID.String()).Return(tx, nil)
	mockStorage.On("CreateComplaint", mock.Anything, mock.AnythingOfType("*models.Complaint")).Return(nil)
	mockStorage.On("GetUser", mock.Anything, "seller-1").Return(&models.User{Id: "seller-1"}, nil).Maybe()
	mockScheduler.On("Cancel", mock.Anything, models.JobAutoComplete, txID.String()).Return(nil)
	mockScheduler.On("Schedule", mock.Anything, models.JobSellerResponseDeadline, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	body, _ := json.Marshal(api.NewComplaint{
		TransactionId: txID,
		Type:          "damaged",
		Reason:        "Arrived cracked",
	})
	req := httptest.NewRequest(http.MethodPost, "/complaints", bytes.NewReader(body))
	req = asCaller(req, &models.User{Id: "buyer-1", Role: models.RoleUser})
	rr := httptest.NewRecorder()

	handler.CreateComplaint(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var out api.Complaint
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "waiting_seller_approval", out.Status)
	assert.Equal(t, txID.String(), out.TransactionId)
}

func TestCreateComplaint_AlreadyParked(t *testing.T) {
	handler, mockStorage, _, _ := newHandler(t)

	txID := uuid.New()
	tx := &models.Transaction{Id: txID.String(), BuyerID: "buyer-1", Status: models.TxComplain}
	mockStorage.On("GetTransaction", mock.Anything, txID.String()).Return(tx, nil)

	body, _ := json.Marshal(api.NewComplaint{TransactionId: txID, Type: "damaged", Reason: "Cracked"})
	req := httptest.NewRequest(http.MethodPost, "/complaints", bytes.NewReader(body))
	req = asCaller(req, &models.User{Id: "buyer-1", Role: models.RoleUser})
	rr := httptest.NewRecorder()

	handler.CreateComplaint(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCreateComplaint_UnknownType(t *testing.T) {
	handler, mockStorage, _, _ := newHandler(t)

	txID := uuid.New()
	mockStorage.On("GetTransaction", mock.Anything, txID.String()).
		Return(&models.Transaction{Id: txID.String(), BuyerID: "buyer-1", Status: models.TxShipped}, nil).Maybe()

	body, _ := json.Marshal(api.NewComplaint{TransactionId: txID, Type: "melted", Reason: "?"})
	req := httptest.NewRequest(http.MethodPost, "/complaints", bytes.NewReader(body))
	req = asCaller(req, &models.User{Id: "buyer-1", Role: models.RoleUser})
	rr := httptest.NewRecorder()

	handler.CreateComplaint(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminRespond_InvalidDecision(t *testing.T) {
	handler, _, _, _ := newHandler(t)

	body, _ := json.Marshal(api.AdminComplaintResponse{Decision: "maybe"})
	req := httptest.NewRequest(http.MethodPost, "/complaints/c-1/admin-response", bytes.NewReader(body))
	req = asCaller(req, &models.User{Id: "admin-1", Role: models.RoleAdmin})
	rr := httptest.NewRecorder()

	handler.AdminRespond(rr, req, "c-1")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetComplaintById_HiddenFromStrangers(t *testing.T) {
	handler, mockStorage, _, _ := newHandler(t)

	c := &models.Complaint{Id: "c-1", TransactionID: "tx-1", BuyerID: "buyer-1"}
	mockStorage.On("GetComplaint", mock.Anything, "c-1").Return(c, nil)
	mockStorage.On("GetTransaction", mock.Anything, "tx-1").
		Return(&models.Transaction{Id: "tx-1", SellerID: "seller-1"}, nil)

	req := asCaller(httptest.NewRequest(http.MethodGet, "/complaints/c-1", nil),
		&models.User{Id: "someone-else", Role: models.RoleUser})
	rr := httptest.NewRecorder()

	handler.GetComplaintById(rr, req, "c-1")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListByTransaction_SellerSeesHistory(t *testing.T) {
	handler, mockStorage, _, _ := newHandler(t)

	tx := &models.Transaction{Id: "tx-1", SellerID: "seller-1", BuyerID: "buyer-1", Status: models.TxShipped}
	history := []models.Complaint{
		{Id: "c-1", TransactionID: "tx-1", BuyerID: "buyer-1", Type: models.ComplaintDamaged, Status: models.ComplaintRejectedBySeller},
		{Id: "c-2", TransactionID: "tx-1", BuyerID: "buyer-1", Type: models.ComplaintLost, Status: models.ComplaintUnderInvestigation},
	}
	mockStorage.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
	mockStorage.On("ListComplaintsByTransaction", mock.Anything, "tx-1").Return(history, nil)

	req := asCaller(httptest.NewRequest(http.MethodGet, "/transactions/tx-1/complaints", nil),
		&models.User{Id: "seller-1", Role: models.RoleUser})
	rr := httptest.NewRecorder()

	handler.ListByTransaction(rr, req, "tx-1")

	assert.Equal(t, http.StatusOK, rr.Code)
	var out []api.Complaint
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "c-1", out[0].Id)
	assert.Equal(t, "under_investigation", out[1].Status)
}

func TestListByTransaction_HiddenFromStrangers(t *testing.T) {
	handler, mockStorage, _, _ := newHandler(t)

	tx := &models.Transaction{Id: "tx-1", SellerID: "seller-1", BuyerID: "buyer-1"}
	mockStorage.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)

	req := asCaller(httptest.NewRequest(http.MethodGet, "/transactions/tx-1/complaints", nil),
		&models.User{Id: "someone-else", Role: models.RoleUser})
	rr := httptest.NewRecorder()

	handler.ListByTransaction(rr, req, "tx-1")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	mockStorage.AssertNotCalled(t, "ListComplaintsByTransaction", mock.Anything, mock.Anything)
}

func TestSellerRespond_Reject(t *testing.T) {
	handler, mockStorage, mockScheduler, _ := newHandler(t)

	c := &models.Complaint{Id: "c-1", TransactionID: "tx-1", BuyerID: "buyer-1",
		Type: models.ComplaintDamaged, Status: models.ComplaintWaitingSellerApproval}
	tx := &models.Transaction{Id: "tx-1", SellerID: "seller-1", BuyerID: "buyer-1", Status: models.TxComplain}

	mockStorage.On("GetComplaint", mock.Anything, "c-1").Return(c, nil)
	mockStorage.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
	mockStorage.On("RecordSellerResponse", mock.Anything, "c-1", models.DecisionReject, "Packed fine",
		[]string(nil), models.ComplaintRejectedBySeller, mock.AnythingOfType("time.Time")).Return(nil)
	mockStorage.On("ResumeTransaction", mock.Anything, "tx-1", mock.AnythingOfType("time.Time")).Return(nil)
	mockStorage.On("GetUser", mock.Anything, "buyer-1").Return(&models.User{Id: "buyer-1"}, nil).Maybe()
	mockScheduler.On("Cancel", mock.Anything, models.JobSellerResponseDeadline, "c-1").Return(nil)

	body, _ := json.Marshal(api.SellerComplaintResponse{Decision: "reject", Reason: "Packed fine"})
	req := httptest.NewRequest(http.MethodPost, "/complaints/c-1/seller-response", bytes.NewReader(body))
	req = asCaller(req, &models.User{Id: "seller-1", Role: models.RoleUser})
	rr := httptest.NewRecorder()

	handler.SellerRespond(rr, req, "c-1")

	assert.Equal(t, http.StatusOK, rr.Code)
	var out api.Complaint
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "rejected_by_seller", out.Status)
}
