package dynamodb

import (
	"context"
	"errors"
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

func TestMarkTransactionPaid(t *testing.T) {
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			return *input.ConditionExpression == "#status = :expected AND attribute_not_exists(paid_at)"
		})).Once().Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.MarkTransactionPaid(context.Background(), "tx-1", now, now.Add(48*time.Hour))

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Paid", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.MarkTransactionPaid(context.Background(), "tx-1", now, now.Add(48*time.Hour))

		assert.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrConditionFailed)
		mockClient.AssertExpectations(t)
	})
}

func TestCancelTransaction(t *testing.T) {
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			expected := input.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberS)
			return expected.Value == string(models.TxPendingPayment)
		})).Once().Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.CancelTransaction(context.Background(), "tx-1", models.TxPendingPayment, models.CancelReasonTimeout, models.CancelActorSystem, now)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Status Moved On", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.CancelTransaction(context.Background(), "tx-1", models.TxPendingPayment, models.CancelReasonTimeout, models.CancelActorSystem, now)

		assert.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrConditionFailed)
		mockClient.AssertExpectations(t)
	})

	t.Run("Update Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("update failed"))

		err := store.CancelTransaction(context.Background(), "tx-1", models.TxPendingPayment, models.CancelReasonTimeout, models.CancelActorSystem, now)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update transaction")
		mockClient.AssertExpectations(t)
	})
}

func TestSetFundReleaseRequested(t *testing.T) {
	t.Run("Second Request Fails Guard", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.SetFundReleaseRequested(context.Background(), "tx-1", time.Now())

		assert.ErrorIs(t, err, storage.ErrConditionFailed)
		mockClient.AssertExpectations(t)
	})
}

func TestCompleteTransaction(t *testing.T) {
	now := time.Now()

	t.Run("Writes Payout And Ledger Atomically", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions", LedgerTableName: "ledger"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			// One status update plus the debit/credit ledger pair.
			return len(input.TransactItems) == 3
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.CompleteTransaction(context.Background(), "tx-1", models.TxShipped, 1_000_000, "014/1234567890", "seller-1", now)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions", LedgerTableName: "ledger"}

		reasons := []types.CancellationReason{{Code: stringPtr("ConditionalCheckFailed")}}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		err := store.CompleteTransaction(context.Background(), "tx-1", models.TxShipped, 1_000_000, "014/1234567890", "seller-1", now)

		assert.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrConditionFailed)
		mockClient.AssertExpectations(t)
	})
}

func stringPtr(s string) *string { return &s }
