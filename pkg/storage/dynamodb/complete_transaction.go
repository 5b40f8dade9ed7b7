package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/andika/rekber-backend/pkg/models"
)

// CompleteTransaction transitions expected -> completed, records the withdrawn
// amount and destination bank account, and writes the payout ledger entries in
// the same atomic write. The platform fee entries make the revenue auditable.
func (s *Store) CompleteTransaction(ctx context.Context, txID string, expected models.TransactionStatus, withdrawn int64, bankAccount, payeeID string, at time.Time) error {
	update, err := s.completeTransactionUpdate(txID, expected, withdrawn, bankAccount, at)
	if err != nil {
		return err
	}

	items := []types.TransactWriteItem{{Update: update}}
	ledgerPuts, err := s.ledgerPuts(txID, payeeID, withdrawn, fmt.Sprintf("Escrow release for transaction %s", txID), at)
	if err != nil {
		return err
	}
	items = append(items, ledgerPuts...)

	input := &dynamodb.TransactWriteItemsInput{TransactItems: items}
	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		return fmt.Errorf("failed to complete transaction %s: %w", txID, mapConditionErr(err))
	}

	return nil
}

// completeTransactionUpdate builds the guarded status update shared by direct
// completion and complaint-driven refunds.
func (s *Store) completeTransactionUpdate(txID string, expected models.TransactionStatus, withdrawn int64, bankAccount string, at time.Time) (*types.Update, error) {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion time: %w", err)
	}
	withdrawnAV, err := attributevalue.Marshal(withdrawn)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal withdrawn amount: %w", err)
	}

	return &types.Update{
		TableName: aws.String(s.TransactionsTableName),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: txID}},
		UpdateExpression: aws.String("SET #status = :next, confirmed_at = :at, withdrawn_at = :at, " +
			"withdrawn_amount = :withdrawn, withdrawal_bank_account = :bank, updated_at = :at"),
		ConditionExpression: aws.String("#status = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":next":      &types.AttributeValueMemberS{Value: string(models.TxCompleted)},
			":expected":  &types.AttributeValueMemberS{Value: string(expected)},
			":withdrawn": withdrawnAV,
			":bank":      &types.AttributeValueMemberS{Value: bankAccount},
			":at":        atAV,
		},
	}, nil
}

// ledgerPuts builds the double-entry puts for a completing transition: the
// escrow account is debited, the payee credited.
func (s *Store) ledgerPuts(txID, payeeID string, amount int64, description string, at time.Time) ([]types.TransactWriteItem, error) {
	debit := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: txID,
		AccountID:     models.PlatformAccountID,
		Debit:         amount,
		Description:   description,
		Timestamp:     at,
		GSI1PK:        models.LedgerPartition,
	}
	credit := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: txID,
		AccountID:     payeeID,
		Credit:        amount,
		Description:   description,
		Timestamp:     at,
		GSI1PK:        models.LedgerPartition,
	}

	debitAV, err := attributevalue.MarshalMap(debit)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal debit entry: %w", err)
	}
	creditAV, err := attributevalue.MarshalMap(credit)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credit entry: %w", err)
	}

	return []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           aws.String(s.LedgerTableName),
			Item:                debitAV,
			ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
		}},
		{Put: &types.Put{
			TableName:           aws.String(s.LedgerTableName),
			Item:                creditAV,
			ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
		}},
	}, nil
}
