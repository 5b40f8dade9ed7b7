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

func TestCreateComplaint(t *testing.T) {
	c := &models.Complaint{
		Id:            "c-1",
		TransactionID: "tx-1",
		BuyerID:       "buyer-1",
		Type:          models.ComplaintDamaged,
		Status:        models.ComplaintWaitingSellerApproval,
		CreatedAt:     time.Now(),
	}

	t.Run("Creates And Parks Atomically", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ComplaintsTableName: "complaints", TransactionsTableName: "transactions"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			if len(input.TransactItems) != 2 {
				return false
			}
			// The complaint put and the shipped -> complain park travel together.
			return input.TransactItems[0].Put != nil && input.TransactItems[1].Update != nil
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.CreateComplaint(context.Background(), c)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Already Parked", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ComplaintsTableName: "complaints", TransactionsTableName: "transactions"}

		reasons := []types.CancellationReason{
			{Code: stringPtr("None")},
			{Code: stringPtr("ConditionalCheckFailed")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		err := store.CreateComplaint(context.Background(), c)

		assert.ErrorIs(t, err, storage.ErrActiveComplaintExists)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transact Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ComplaintsTableName: "complaints", TransactionsTableName: "transactions"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("transact failed"))

		err := store.CreateComplaint(context.Background(), c)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create complaint")
		mockClient.AssertExpectations(t)
	})
}
