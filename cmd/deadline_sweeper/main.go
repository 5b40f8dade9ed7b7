package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/andika/rekber-backend/pkg/config"
	"github.com/andika/rekber-backend/pkg/scheduler"
	"github.com/andika/rekber-backend/pkg/storage"
	dydbstore "github.com/andika/rekber-backend/pkg/storage/dynamodb"
)

var (
	store      storage.Storage
	dispatcher *scheduler.SQSDispatcher
	batchSize  int32
)

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	sqsClient := sqs.NewFromConfig(awsCfg)

	store = dydbstore.New(dbClient, cfg.TransactionsTable, cfg.ComplaintsTable, cfg.JobsTable, cfg.UsersTable, cfg.LedgerTable)
	dispatcher = scheduler.NewSQSDispatcher(sqsClient, cfg.QueueURL)
	batchSize = cfg.SweepBatchSize
}

// HandleRequest is triggered by an EventBridge Schedule. It moves due jobs
// from the durable table onto the dispatch queue. Deleting after dispatch
// gives at-least-once delivery; the workers tolerate duplicates.
func HandleRequest(ctx context.Context) error {
	log.Println("Sweeping due deadline jobs...")

	due, err := store.DueJobs(ctx, time.Now(), batchSize)
	if err != nil {
		log.Printf("ERROR: failed to list due jobs: %v", err)
		return err
	}

	if len(due) == 0 {
		log.Println("No due jobs found.")
		return nil
	}

	log.Printf("Found %d due jobs. Dispatching them...", len(due))

	for i := range due {
		job := &due[i]
		if err := dispatcher.Dispatch(ctx, job); err != nil {
			log.Printf("ERROR: failed to dispatch job %s: %v", job.JobKey, err)
			// Continue to the next job, don't let one failure stop the whole batch.
			continue
		}
		if err := store.DeleteJob(ctx, job.JobKey); err != nil {
			log.Printf("ERROR: dispatched job %s but failed to delete it: %v", job.JobKey, err)
			continue
		}
		log.Printf("Successfully dispatched job %s", job.JobKey)
	}

	log.Println("Sweep finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
