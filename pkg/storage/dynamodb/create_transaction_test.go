package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
	"github.com/andika/rekber-backend/pkg/storage/dynamodb/mocks"
)

func TestCreateTransaction(t *testing.T) {
	tx := &models.Transaction{Id: "tx-1", SellerID: "seller-1", BuyerID: "buyer-1", ItemPrice: 1_000_000, Status: models.TxPendingPayment}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.PutItemOutput{}, nil)

		err := store.CreateTransaction(context.Background(), tx)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Id", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.CreateTransaction(context.Background(), tx)

		assert.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrConditionFailed)
		mockClient.AssertExpectations(t)
	})

	t.Run("Put Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("put failed"))

		err := store.CreateTransaction(context.Background(), tx)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to put transaction")
		mockClient.AssertExpectations(t)
	})
}

func TestHasActiveTransaction(t *testing.T) {
	t.Run("Active Pair Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		txAV, _ := attributevalue.MarshalMap(&models.Transaction{Id: "tx-1", Status: models.TxShipped})
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{txAV}}, nil)

		active, err := store.HasActiveTransaction(context.Background(), "seller-1", "buyer-1")

		assert.NoError(t, err)
		assert.True(t, active)
		mockClient.AssertExpectations(t)
	})

	t.Run("No Active Pair", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

		active, err := store.HasActiveTransaction(context.Background(), "seller-1", "buyer-1")

		assert.NoError(t, err)
		assert.False(t, active)
		mockClient.AssertExpectations(t)
	})

	t.Run("Query Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		_, err := store.HasActiveTransaction(context.Background(), "seller-1", "buyer-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query active transactions")
		mockClient.AssertExpectations(t)
	})
}
