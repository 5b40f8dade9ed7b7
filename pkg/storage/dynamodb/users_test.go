package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
	"github.com/andika/rekber-backend/pkg/storage/dynamodb/mocks"
)

func TestCreateUser(t *testing.T) {
	user := &models.User{
		Id:    "u-1",
		Email: "andika@example.com",
		Name:  "Andika",
		Role:  models.RoleUser,
	}

	t.Run("Reserves The Email", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, UsersTableName: "users"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			if len(input.TransactItems) != 2 || input.TransactItems[0].Put == nil || input.TransactItems[1].Put == nil {
				return false
			}
			marker, ok := input.TransactItems[1].Put.Item["id"].(*types.AttributeValueMemberS)
			return ok && marker.Value == "EMAIL#andika@example.com"
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.CreateUser(context.Background(), user)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Email Already Taken", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, UsersTableName: "users"}

		// The user put passes (fresh UUID), the marker put collides.
		reasons := []types.CancellationReason{
			{Code: stringPtr("None")},
			{Code: stringPtr("ConditionalCheckFailed")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		err := store.CreateUser(context.Background(), user)

		assert.ErrorIs(t, err, storage.ErrUserExists)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transact Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, UsersTableName: "users"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("transact failed"))

		err := store.CreateUser(context.Background(), user)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to put user")
		mockClient.AssertExpectations(t)
	})
}
