package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
)

const transactionIDIndex = "transaction_id-index"

// GetComplaint retrieves a complaint from DynamoDB by its ID.
func (s *Store) GetComplaint(ctx context.Context, complaintID string) (*models.Complaint, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": complaintID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal complaint ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.ComplaintsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("complaint %s: %w", complaintID, storage.ErrNotFound)
	}

	var c models.Complaint
	if err := attributevalue.UnmarshalMap(result.Item, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal complaint: %w", err)
	}

	return &c, nil
}

// ListComplaintsByTransaction retrieves all complaints ever filed on a transaction.
func (s *Store) ListComplaintsByTransaction(ctx context.Context, txID string) ([]models.Complaint, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.ComplaintsTableName),
		IndexName:              aws.String(transactionIDIndex),
		KeyConditionExpression: aws.String("transaction_id = :txID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":txID": &types.AttributeValueMemberS{Value: txID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints by transaction: %w", err)
	}

	var complaints []models.Complaint
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &complaints); err != nil {
		return nil, fmt.Errorf("failed to unmarshal complaints: %w", err)
	}

	return complaints, nil
}
