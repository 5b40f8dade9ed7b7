package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/andika/rekber-backend/pkg/models"
)

// CreateTransaction persists a new transaction record. The caller is expected
// to have filled in all server-side fields (id, code, fees, deadlines).
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.TransactionsTableName),
		Item:                txAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to put transaction: %w", mapConditionErr(err))
	}

	return nil
}

// HasActiveTransaction reports whether a non-terminal transaction already
// exists between the seller and buyer.
func (s *Store) HasActiveTransaction(ctx context.Context, sellerID, buyerID string) (bool, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(sellerIDIndex),
		KeyConditionExpression: aws.String("seller_id = :sellerID"),
		FilterExpression:       aws.String("buyer_id = :buyerID AND NOT #status IN (:completed, :canceled)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sellerID":  &types.AttributeValueMemberS{Value: sellerID},
			":buyerID":   &types.AttributeValueMemberS{Value: buyerID},
			":completed": &types.AttributeValueMemberS{Value: string(models.TxCompleted)},
			":canceled":  &types.AttributeValueMemberS{Value: string(models.TxCanceled)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return false, fmt.Errorf("failed to query active transactions: %w", err)
	}

	return len(result.Items) > 0, nil
}
