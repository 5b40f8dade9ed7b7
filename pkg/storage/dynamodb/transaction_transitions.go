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

// updateTransaction runs a guarded UpdateItem against the transactions table.
// ErrConditionFailed is returned when the guard no longer holds.
func (s *Store) updateTransaction(ctx context.Context, txID, updateExpr, conditionExpr string, names map[string]string, values map[string]types.AttributeValue) error {
	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.TransactionsTableName),
		Key:                       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: txID}},
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String(conditionExpr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txID, mapConditionErr(err))
	}

	return nil
}

// MarkTransactionPaid transitions pending_payment -> waiting_shipment.
// The paid_at guard makes a double payment callback a conditional failure
// rather than a silent overwrite.
func (s *Store) MarkTransactionPaid(ctx context.Context, txID string, paidAt, shipmentDeadline time.Time) error {
	paidAtAV, err := attributevalue.Marshal(paidAt)
	if err != nil {
		return fmt.Errorf("failed to marshal paid_at: %w", err)
	}
	deadlineAV, err := attributevalue.Marshal(shipmentDeadline)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment deadline: %w", err)
	}

	return s.updateTransaction(ctx, txID,
		"SET #status = :next, paid_at = :paidAt, shipment_deadline = :deadline, updated_at = :paidAt",
		"#status = :expected AND attribute_not_exists(paid_at)",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: string(models.TxWaitingShipment)},
			":expected": &types.AttributeValueMemberS{Value: string(models.TxPendingPayment)},
			":paidAt":   paidAtAV,
			":deadline": deadlineAV,
		},
	)
}

// MarkTransactionShipped transitions waiting_shipment -> shipped.
func (s *Store) MarkTransactionShipped(ctx context.Context, txID, courier, trackingNumber string, shippedAt time.Time) error {
	shippedAtAV, err := attributevalue.Marshal(shippedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal shipped_at: %w", err)
	}

	return s.updateTransaction(ctx, txID,
		"SET #status = :next, courier = :courier, tracking_number = :tracking, shipped_at = :shippedAt, updated_at = :shippedAt",
		"#status = :expected",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":next":      &types.AttributeValueMemberS{Value: string(models.TxShipped)},
			":expected":  &types.AttributeValueMemberS{Value: string(models.TxWaitingShipment)},
			":courier":   &types.AttributeValueMemberS{Value: courier},
			":tracking":  &types.AttributeValueMemberS{Value: trackingNumber},
			":shippedAt": shippedAtAV,
		},
	)
}

// CancelTransaction transitions expected -> canceled with a recorded reason and actor.
func (s *Store) CancelTransaction(ctx context.Context, txID string, expected models.TransactionStatus, reason, actor string, at time.Time) error {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal cancellation time: %w", err)
	}

	return s.updateTransaction(ctx, txID,
		"SET #status = :next, cancel_reason = :reason, cancelled_by = :actor, cancelled_at = :at, updated_at = :at",
		"#status = :expected",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: string(models.TxCanceled)},
			":expected": &types.AttributeValueMemberS{Value: string(expected)},
			":reason":   &types.AttributeValueMemberS{Value: reason},
			":actor":    &types.AttributeValueMemberS{Value: actor},
			":at":       atAV,
		},
	)
}

// SetFundReleaseRequested records a seller's early-release request while shipped.
func (s *Store) SetFundReleaseRequested(ctx context.Context, txID string, at time.Time) error {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal request time: %w", err)
	}

	return s.updateTransaction(ctx, txID,
		"SET fund_release_requested_at = :at, updated_at = :at",
		"#status = :expected AND attribute_not_exists(fund_release_requested_at)",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberS{Value: string(models.TxShipped)},
			":at":       atAV,
		},
	)
}

// SetBuyerConfirmDeadline records the admin-approved confirmation window while shipped.
func (s *Store) SetBuyerConfirmDeadline(ctx context.Context, txID string, deadline time.Time) error {
	deadlineAV, err := attributevalue.Marshal(deadline)
	if err != nil {
		return fmt.Errorf("failed to marshal buyer confirm deadline: %w", err)
	}

	return s.updateTransaction(ctx, txID,
		"SET buyer_confirm_deadline = :deadline",
		"#status = :expected",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberS{Value: string(models.TxShipped)},
			":deadline": deadlineAV,
		},
	)
}

// ResumeTransaction transitions complain -> shipped after a complaint is
// retired without a refund.
func (s *Store) ResumeTransaction(ctx context.Context, txID string, at time.Time) error {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal resume time: %w", err)
	}

	return s.updateTransaction(ctx, txID,
		"SET #status = :next, updated_at = :at",
		"#status = :expected",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: string(models.TxShipped)},
			":expected": &types.AttributeValueMemberS{Value: string(models.TxComplain)},
			":at":       atAV,
		},
	)
}
