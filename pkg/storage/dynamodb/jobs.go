package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/andika/rekber-backend/pkg/models"
)

const dueJobsGSI = "gsi1pk-fire_at-index"

// ScheduleJob persists a deadline job, replacing any job under the same key.
// Replacement keeps the "at most one live job per (entity, phase)" invariant
// without a separate cancel round-trip.
func (s *Store) ScheduleJob(ctx context.Context, job *models.DeadlineJob) error {
	job.GSI1PK = models.JobsPartition

	jobAV, err := attributevalue.MarshalMap(job)
	if err != nil {
		return fmt.Errorf("failed to marshal deadline job: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.JobsTableName),
		Item:      jobAV,
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to put deadline job %s: %w", job.JobKey, err)
	}

	return nil
}

// CancelJob removes the job under the key. A missing key is a harmless no-op:
// the worker may already have dequeued the job, and its guard re-check is what
// actually protects the entity.
func (s *Store) CancelJob(ctx context.Context, jobKey string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.JobsTableName),
		Key:       map[string]types.AttributeValue{"job_key": &types.AttributeValueMemberS{Value: jobKey}},
	}

	if _, err := s.Client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to cancel deadline job %s: %w", jobKey, err)
	}

	return nil
}

// DeleteJob removes a dispatched job.
func (s *Store) DeleteJob(ctx context.Context, jobKey string) error {
	return s.CancelJob(ctx, jobKey)
}

// DueJobs lists jobs whose fire time is at or before now, oldest first.
// The cutoff is epoch seconds to match the numeric fire_at range key.
func (s *Store) DueJobs(ctx context.Context, now time.Time, limit int32) ([]models.DeadlineJob, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.JobsTableName),
		IndexName:              aws.String(dueJobsGSI),
		KeyConditionExpression: aws.String("gsi1pk = :pk AND fire_at <= :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":  &types.AttributeValueMemberS{Value: models.JobsPartition},
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Unix(), 10)},
		},
		Limit: &limit,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query due jobs: %w", err)
	}

	var jobs []models.DeadlineJob
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &jobs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal due jobs: %w", err)
	}

	return jobs, nil
}
