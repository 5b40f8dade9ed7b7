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

// updateComplaint runs a guarded UpdateItem against the complaints table.
func (s *Store) updateComplaint(ctx context.Context, complaintID, updateExpr, conditionExpr string, names map[string]string, values map[string]types.AttributeValue) error {
	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.ComplaintsTableName),
		Key:                       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: complaintID}},
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String(conditionExpr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("failed to update complaint %s: %w", complaintID, mapConditionErr(err))
	}

	return nil
}

// RecordSellerResponse stores the seller's decision while waiting_seller_approval.
func (s *Store) RecordSellerResponse(ctx context.Context, complaintID, decision, reason string, evidence []string, next models.ComplaintStatus, at time.Time) error {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal response time: %w", err)
	}
	evidenceAV, err := attributevalue.Marshal(evidence)
	if err != nil {
		return fmt.Errorf("failed to marshal seller evidence: %w", err)
	}

	return s.updateComplaint(ctx, complaintID,
		"SET #status = :next, seller_decision = :decision, seller_reason = :reason, seller_evidence_urls = :evidence, updated_at = :at",
		"#status = :expected",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: string(next)},
			":expected": &types.AttributeValueMemberS{Value: string(models.ComplaintWaitingSellerApproval)},
			":decision": &types.AttributeValueMemberS{Value: decision},
			":reason":   &types.AttributeValueMemberS{Value: reason},
			":evidence": evidenceAV,
			":at":       atAV,
		},
	)
}

// EscalateComplaint moves an unanswered complaint to the admin queue.
func (s *Store) EscalateComplaint(ctx context.Context, complaintID string, at time.Time) error {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal escalation time: %w", err)
	}

	return s.updateComplaint(ctx, complaintID,
		"SET #status = :next, updated_at = :at",
		"#status = :expected",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: string(models.ComplaintAwaitingAdminApproval)},
			":expected": &types.AttributeValueMemberS{Value: string(models.ComplaintWaitingSellerApproval)},
			":at":       atAV,
		},
	)
}

// RecordAdminDecision stores the admin's decision and moves the complaint to
// next. When the decision opens the return window, returnDeadline is persisted
// so the auto-cancel job has a matching field to validate against.
func (s *Store) RecordAdminDecision(ctx context.Context, complaintID string, expected models.ComplaintStatus, decision string, next models.ComplaintStatus, returnDeadline *time.Time, at time.Time) error {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal decision time: %w", err)
	}

	updateExpr := "SET #status = :next, admin_decision = :decision, admin_responded_at = :at, updated_at = :at"
	values := map[string]types.AttributeValue{
		":next":     &types.AttributeValueMemberS{Value: string(next)},
		":expected": &types.AttributeValueMemberS{Value: string(expected)},
		":decision": &types.AttributeValueMemberS{Value: decision},
		":at":       atAV,
	}

	if returnDeadline != nil {
		deadlineAV, err := attributevalue.Marshal(*returnDeadline)
		if err != nil {
			return fmt.Errorf("failed to marshal return deadline: %w", err)
		}
		updateExpr += ", return_shipment_deadline = :deadline"
		values[":deadline"] = deadlineAV
	}

	return s.updateComplaint(ctx, complaintID,
		updateExpr,
		"#status = :expected",
		map[string]string{"#status": "status"},
		values,
	)
}

// SetReturnShipment attaches the return shipment while return_requested. The
// attribute_not_exists guard makes the shipment record write-once.
func (s *Store) SetReturnShipment(ctx context.Context, complaintID string, rs *models.ReturnShipment, at time.Time) error {
	rsAV, err := attributevalue.Marshal(rs)
	if err != nil {
		return fmt.Errorf("failed to marshal return shipment: %w", err)
	}
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment time: %w", err)
	}

	return s.updateComplaint(ctx, complaintID,
		"SET #status = :next, return_shipment = :shipment, updated_at = :at",
		"#status = :expected AND attribute_not_exists(return_shipment)",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: string(models.ComplaintReturnInTransit)},
			":expected": &types.AttributeValueMemberS{Value: string(models.ComplaintReturnRequested)},
			":shipment": rsAV,
			":at":       atAV,
		},
	)
}

// RecordConfirmationRequest stores the buyer's delivered-back claim while return_in_transit.
func (s *Store) RecordConfirmationRequest(ctx context.Context, complaintID, reason string, evidence []string, at time.Time) error {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal request time: %w", err)
	}
	evidenceAV, err := attributevalue.Marshal(evidence)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation evidence: %w", err)
	}

	return s.updateComplaint(ctx, complaintID,
		"SET #status = :next, request_confirmation_reason = :reason, request_confirmation_evidence = :evidence, "+
			"request_confirmation_at = :at, request_confirmation_status = :pending, updated_at = :at",
		"#status = :expected",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: string(models.ComplaintAwaitingAdminConfirmation)},
			":expected": &types.AttributeValueMemberS{Value: string(models.ComplaintReturnInTransit)},
			":reason":   &types.AttributeValueMemberS{Value: reason},
			":evidence": evidenceAV,
			":pending":  &types.AttributeValueMemberS{Value: "pending"},
			":at":       atAV,
		},
	)
}

// RecordReturnConfirmation stores the admin's verdict on the buyer's
// delivered-back claim. Approval opens the seller-confirm window and stamps
// the return shipment received; rejection sends the complaint back to transit.
func (s *Store) RecordReturnConfirmation(ctx context.Context, complaintID, adminID string, approved bool, sellerConfirmDeadline *time.Time, at time.Time) error {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation time: %w", err)
	}

	names := map[string]string{"#status": "status"}
	values := map[string]types.AttributeValue{
		":expected": &types.AttributeValueMemberS{Value: string(models.ComplaintAwaitingAdminConfirmation)},
		":adminID":  &types.AttributeValueMemberS{Value: adminID},
		":at":       atAV,
	}

	var updateExpr string
	if approved {
		if sellerConfirmDeadline == nil {
			return fmt.Errorf("seller confirm deadline required on approval")
		}
		deadlineAV, err := attributevalue.Marshal(*sellerConfirmDeadline)
		if err != nil {
			return fmt.Errorf("failed to marshal seller confirm deadline: %w", err)
		}
		updateExpr = "SET #status = :next, request_confirmation_status = :verdict, request_confirmation_admin_id = :adminID, " +
			"seller_confirm_deadline = :deadline, return_shipment.received_at = :at, updated_at = :at"
		values[":next"] = &types.AttributeValueMemberS{Value: string(models.ComplaintAwaitingSellerConfirmation)}
		values[":verdict"] = &types.AttributeValueMemberS{Value: "approved"}
		values[":deadline"] = deadlineAV
	} else {
		updateExpr = "SET #status = :next, request_confirmation_status = :verdict, request_confirmation_admin_id = :adminID, updated_at = :at"
		values[":next"] = &types.AttributeValueMemberS{Value: string(models.ComplaintReturnInTransit)}
		values[":verdict"] = &types.AttributeValueMemberS{Value: "rejected"}
	}

	return s.updateComplaint(ctx, complaintID, updateExpr, "#status = :expected", names, values)
}
