package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/andika/rekber-backend/pkg/models"
)

// resolveComplaintUpdate builds the guarded terminal update for a complaint.
func (s *Store) resolveComplaintUpdate(complaintID string, expected, next models.ComplaintStatus, at time.Time) (*types.Update, error) {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resolution time: %w", err)
	}

	return &types.Update{
		TableName:           aws.String(s.ComplaintsTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: complaintID}},
		UpdateExpression:    aws.String("SET #status = :next, resolved_at = :at, updated_at = :at"),
		ConditionExpression: aws.String("#status = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: string(next)},
			":expected": &types.AttributeValueMemberS{Value: string(expected)},
			":at":       atAV,
		},
	}, nil
}

// ResolveComplaintAndResumeTransaction atomically retires the complaint and
// returns its transaction complain -> shipped. Either both records move or
// neither does, so a racing transition on one side aborts the whole write.
func (s *Store) ResolveComplaintAndResumeTransaction(ctx context.Context, complaintID string, expected, next models.ComplaintStatus, txID string, at time.Time) error {
	complaintUpdate, err := s.resolveComplaintUpdate(complaintID, expected, next, at)
	if err != nil {
		return err
	}

	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal resume time: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: complaintUpdate},
			{
				Update: &types.Update{
					TableName:           aws.String(s.TransactionsTableName),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: txID}},
					UpdateExpression:    aws.String("SET #status = :shipped, updated_at = :at"),
					ConditionExpression: aws.String("#status = :complain"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":shipped":  &types.AttributeValueMemberS{Value: string(models.TxShipped)},
						":complain": &types.AttributeValueMemberS{Value: string(models.TxComplain)},
						":at":       atAV,
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		return fmt.Errorf("failed to resolve complaint %s: %w", complaintID, mapConditionErr(err))
	}

	return nil
}

// ResolveComplaintAndRefund atomically completes the complaint, completes its
// transaction with the refund amount, and writes the refund ledger entries.
// This is the buyer-favor resolution: the buyer-confirm step is bypassed.
func (s *Store) ResolveComplaintAndRefund(ctx context.Context, complaintID string, expected models.ComplaintStatus, txID string, refund int64, bankAccount, buyerID string, at time.Time) error {
	complaintUpdate, err := s.resolveComplaintUpdate(complaintID, expected, models.ComplaintCompleted, at)
	if err != nil {
		return err
	}

	txUpdate, err := s.completeTransactionUpdate(txID, models.TxComplain, refund, bankAccount, at)
	if err != nil {
		return err
	}

	items := []types.TransactWriteItem{
		{Update: complaintUpdate},
		{Update: txUpdate},
	}
	ledgerPuts, err := s.ledgerPuts(txID, buyerID, refund, fmt.Sprintf("Refund for transaction %s", txID), at)
	if err != nil {
		return err
	}
	items = append(items, ledgerPuts...)

	input := &dynamodb.TransactWriteItemsInput{TransactItems: items}
	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		return fmt.Errorf("failed to refund complaint %s: %w", complaintID, mapConditionErr(err))
	}

	return nil
}
