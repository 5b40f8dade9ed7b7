package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
)

// CreateComplaint atomically creates the complaint record and parks its
// transaction shipped -> complain. The park is the "one active complaint per
// transaction" guard: a second filing finds the transaction already in
// complain and fails the condition.
func (s *Store) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	complaintAV, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("failed to marshal complaint: %w", err)
	}

	updatedAtAV, err := attributevalue.Marshal(c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal complaint creation time: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.ComplaintsTableName),
					Item:                complaintAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				Update: &types.Update{
					TableName:           aws.String(s.TransactionsTableName),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: c.TransactionID}},
					UpdateExpression:    aws.String("SET #status = :complain, updated_at = :now"),
					ConditionExpression: aws.String("#status = :shipped"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":complain": &types.AttributeValueMemberS{Value: string(models.TxComplain)},
						":shipped":  &types.AttributeValueMemberS{Value: string(models.TxShipped)},
						":now":      updatedAtAV,
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		mapped := mapConditionErr(err)
		if errors.Is(mapped, storage.ErrConditionFailed) {
			return storage.ErrActiveComplaintExists
		}
		return fmt.Errorf("failed to create complaint: %w", mapped)
	}

	return nil
}
