package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
	"github.com/andika/rekber-backend/pkg/storage/dynamodb/mocks"
)

func TestResolveComplaintAndResumeTransaction(t *testing.T) {
	now := time.Now()

	t.Run("Both Records Move Together", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ComplaintsTableName: "complaints", TransactionsTableName: "transactions"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 2 &&
				input.TransactItems[0].Update != nil &&
				input.TransactItems[1].Update != nil
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.ResolveComplaintAndResumeTransaction(context.Background(), "c-1",
			models.ComplaintReturnRequested, models.ComplaintCanceledByBuyer, "tx-1", now)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Racing Transition Aborts", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ComplaintsTableName: "complaints", TransactionsTableName: "transactions"}

		reasons := []types.CancellationReason{{Code: stringPtr("ConditionalCheckFailed")}, {Code: stringPtr("None")}}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		err := store.ResolveComplaintAndResumeTransaction(context.Background(), "c-1",
			models.ComplaintReturnRequested, models.ComplaintCanceledByBuyer, "tx-1", now)

		assert.ErrorIs(t, err, storage.ErrConditionFailed)
		mockClient.AssertExpectations(t)
	})
}

func TestResolveComplaintAndRefund(t *testing.T) {
	now := time.Now()

	t.Run("Refund Writes Complaint Transaction And Ledger", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ComplaintsTableName: "complaints", TransactionsTableName: "transactions", LedgerTableName: "ledger"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			// Complaint update, transaction completion, debit and credit entries.
			return len(input.TransactItems) == 4
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.ResolveComplaintAndRefund(context.Background(), "c-1",
			models.ComplaintAwaitingAdminApproval, "tx-1", 1_000_000, "009/555111", "buyer-1", now)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ComplaintsTableName: "complaints", TransactionsTableName: "transactions", LedgerTableName: "ledger"}

		reasons := []types.CancellationReason{{Code: stringPtr("ConditionalCheckFailed")}}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		err := store.ResolveComplaintAndRefund(context.Background(), "c-1",
			models.ComplaintAwaitingAdminApproval, "tx-1", 1_000_000, "009/555111", "buyer-1", now)

		assert.ErrorIs(t, err, storage.ErrConditionFailed)
		mockClient.AssertExpectations(t)
	})
}
