package dynamodb

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage/dynamodb/mocks"
)

func TestScheduleJob(t *testing.T) {
	t.Run("Assigns Sweep Partition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, JobsTableName: "jobs"}

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
			pk, ok := input.Item["gsi1pk"].(*types.AttributeValueMemberS)
			return ok && pk.Value == models.JobsPartition
		})).Once().Return(&dynamodb.PutItemOutput{}, nil)

		job := &models.DeadlineJob{
			JobKey:   models.JobAutoComplete.Key("tx-1"),
			Kind:     models.JobAutoComplete,
			EntityID: "tx-1",
			FireAt:   time.Now().Add(24 * time.Hour),
		}
		err := store.ScheduleJob(context.Background(), job)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Stores Fire Time As Epoch Seconds", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, JobsTableName: "jobs"}

		// A zoned fire time must land as the same numeric instant: the GSI
		// range key sorts by number, so offsets and fractional digits cannot
		// reorder the queue.
		wib := time.FixedZone("WIB", 7*3600)
		fireAt := time.Date(2026, 8, 30, 17, 0, 0, 150_000_000, wib)

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
			n, ok := input.Item["fire_at"].(*types.AttributeValueMemberN)
			return ok && n.Value == strconv.FormatInt(fireAt.Unix(), 10)
		})).Once().Return(&dynamodb.PutItemOutput{}, nil)

		err := store.ScheduleJob(context.Background(), &models.DeadlineJob{
			JobKey:   models.JobAutoComplete.Key("tx-1"),
			Kind:     models.JobAutoComplete,
			EntityID: "tx-1",
			FireAt:   fireAt,
		})

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Put Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, JobsTableName: "jobs"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("put failed"))

		err := store.ScheduleJob(context.Background(), &models.DeadlineJob{JobKey: "auto-complete:tx-1"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to put deadline job")
		mockClient.AssertExpectations(t)
	})
}

func TestCancelJob(t *testing.T) {
	t.Run("Missing Job Is A No-Op", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, JobsTableName: "jobs"}

		// DeleteItem succeeds whether or not the key existed.
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.DeleteItemOutput{}, nil)

		err := store.CancelJob(context.Background(), "cancel:tx-1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})
}

func TestDueJobs(t *testing.T) {
	t.Run("Returns Due Jobs", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, JobsTableName: "jobs"}

		job := models.DeadlineJob{
			JobKey:   "cancel:tx-1",
			Kind:     models.JobCancelPayment,
			EntityID: "tx-1",
			FireAt:   time.Now().Add(-time.Minute).UTC().Truncate(time.Second),
			GSI1PK:   models.JobsPartition,
		}
		jobAV, _ := attributevalue.MarshalMap(job)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			_, ok := input.ExpressionAttributeValues[":now"].(*types.AttributeValueMemberN)
			return ok
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{jobAV}}, nil)

		jobs, err := store.DueJobs(context.Background(), time.Now(), 100)

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.Equal(t, "cancel:tx-1", jobs[0].JobKey)
		assert.Equal(t, models.JobCancelPayment, jobs[0].Kind)
		mockClient.AssertExpectations(t)
	})

	t.Run("Query Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, JobsTableName: "jobs"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		_, err := store.DueJobs(context.Background(), time.Now(), 100)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query due jobs")
		mockClient.AssertExpectations(t)
	})
}
