package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/andika/rekber-backend/pkg/models"
)

// SQSAPI is the subset of the SQS client used by the dispatcher.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSDispatcher hands due jobs to the deadline workers via SQS. It carries the
// wire payload only; the worker re-reads the entity before acting.
type SQSDispatcher struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSDispatcher creates a new SQSDispatcher.
func NewSQSDispatcher(client SQSAPI, queueURL string) *SQSDispatcher {
	return &SQSDispatcher{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Dispatch sends the job payload to the dispatch queue.
func (d *SQSDispatcher) Dispatch(ctx context.Context, job *models.DeadlineJob) error {
	body, err := json.Marshal(job.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal job payload for SQS: %w", err)
	}

	_, err = d.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(d.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send job to SQS: %w", err)
	}

	return nil
}
