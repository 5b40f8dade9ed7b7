package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/andika/rekber-backend/pkg/complaints"
	"github.com/andika/rekber-backend/pkg/config"
	"github.com/andika/rekber-backend/pkg/escrow"
	"github.com/andika/rekber-backend/pkg/identity"
	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/notify"
	"github.com/andika/rekber-backend/pkg/scheduler"
	dydbstore "github.com/andika/rekber-backend/pkg/storage/dynamodb"
)

var (
	escrowEngine     *escrow.Engine
	complaintsEngine *complaints.Engine
)

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, cfg.TransactionsTable, cfg.ComplaintsTable, cfg.JobsTable, cfg.UsersTable, cfg.LedgerTable)

	jobScheduler := scheduler.NewJobStoreScheduler(store)

	// The worker has no push credentials of its own; notifications from
	// automatic transitions are best-effort no-ops here.
	notifier := &notify.NoOpNotifier{}

	escrowEngine = escrow.NewEngine(store, store, identity.NewService(store, nil), jobScheduler, notifier, escrow.Deadlines{
		Payment:      cfg.PaymentDeadline,
		Shipment:     cfg.ShipmentDeadline,
		BuyerConfirm: cfg.BuyerConfirmDeadline,
	})

	// The worker never uploads evidence, so no uploader is wired.
	complaintsEngine = complaints.NewEngine(store, store, store, escrowEngine, jobScheduler, notifier, nil, complaints.Deadlines{
		SellerResponse: cfg.SellerResponseDeadline,
		ReturnShipment: cfg.ReturnShipmentDeadline,
		SellerConfirm:  cfg.SellerConfirmDeadline,
	})
}

// HandleRequest processes dispatched deadline jobs. A job is a hint to
// re-check its entity: the engines re-validate every guard, so duplicate or
// stale deliveries are harmless.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var payload models.JobPayload
		if err := json.Unmarshal([]byte(message.Body), &payload); err != nil {
			log.Printf("ERROR: failed to unmarshal job from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		if err := runJob(ctx, payload); err != nil {
			log.Printf("ERROR: failed to run job %s: %v", payload.JobID, err)
			return err
		}

		log.Printf("Successfully processed job %s", payload.JobID)
	}

	return nil
}

// runJob routes a dispatched job to its deadline transition.
func runJob(ctx context.Context, payload models.JobPayload) error {
	kind, ok := models.KindFromJobID(payload.JobID)
	if !ok {
		// A malformed key cannot succeed on retry; drop it loudly.
		log.Printf("ERROR: dropping malformed job id %q", payload.JobID)
		return nil
	}

	switch kind {
	case models.JobCancelPayment:
		return escrowEngine.AutoCancelPayment(ctx, payload.EntityID)
	case models.JobCancelShipment:
		return escrowEngine.AutoCancelShipment(ctx, payload.EntityID)
	case models.JobAutoComplete:
		return escrowEngine.AutoComplete(ctx, payload.EntityID)
	case models.JobCancelReturnShipment:
		return complaintsEngine.AutoCancelReturnShipment(ctx, payload.EntityID)
	case models.JobConfirmReturnDeadline:
		return complaintsEngine.AutoResolveReturn(ctx, payload.EntityID)
	case models.JobSellerResponseDeadline:
		return complaintsEngine.AutoEscalateSellerResponse(ctx, payload.EntityID)
	}

	return fmt.Errorf("unknown job kind %q", kind)
}

func main() {
	lambda.Start(HandleRequest)
}
