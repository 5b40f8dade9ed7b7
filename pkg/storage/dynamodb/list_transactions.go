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

const (
	sellerIDIndex = "seller_id-index"
	buyerIDIndex  = "buyer_id-index"
)

// ListTransactionsBySeller retrieves all transactions created by a seller.
func (s *Store) ListTransactionsBySeller(ctx context.Context, sellerID string) ([]models.Transaction, error) {
	return s.listTransactions(ctx, sellerIDIndex, "seller_id", sellerID)
}

// ListTransactionsByBuyer retrieves all transactions addressed to a buyer.
func (s *Store) ListTransactionsByBuyer(ctx context.Context, buyerID string) ([]models.Transaction, error) {
	return s.listTransactions(ctx, buyerIDIndex, "buyer_id", buyerID)
}

func (s *Store) listTransactions(ctx context.Context, index, keyAttr, userID string) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(fmt.Sprintf("%s = :userID", keyAttr)),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID": &types.AttributeValueMemberS{Value: userID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by %s: %w", keyAttr, err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	return transactions, nil
}
