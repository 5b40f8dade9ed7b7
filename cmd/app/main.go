package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	firebase "firebase.google.com/go/v4"

	gcs "cloud.google.com/go/storage"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/andika/rekber-backend/pkg/complaints"
	"github.com/andika/rekber-backend/pkg/config"
	"github.com/andika/rekber-backend/pkg/escrow"
	"github.com/andika/rekber-backend/pkg/handlers"
	"github.com/andika/rekber-backend/pkg/identity"
	"github.com/andika/rekber-backend/pkg/middleware"
	"github.com/andika/rekber-backend/pkg/notify"
	"github.com/andika/rekber-backend/pkg/scheduler"
	dydbstore "github.com/andika/rekber-backend/pkg/storage/dynamodb"
	"github.com/andika/rekber-backend/pkg/uploads"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, cfg.TransactionsTable, cfg.ComplaintsTable, cfg.JobsTable, cfg.UsersTable, cfg.LedgerTable)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	sessions := identity.NewSessionCache(redisClient)

	jobScheduler := scheduler.NewJobStoreScheduler(store)

	var notifier notify.Notifier = &notify.NoOpNotifier{}
	var gcsOpts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		gcsOpts = append(gcsOpts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
		app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
		if err != nil {
			log.Fatalf("failed to initialize firebase app: %v", err)
		}
		notifier, err = notify.NewFCMNotifier(ctx, app)
		if err != nil {
			log.Fatalf("failed to initialize FCM notifier: %v", err)
		}
	}

	gcsClient, err := gcs.NewClient(ctx, gcsOpts...)
	if err != nil {
		log.Fatalf("failed to initialize storage client: %v", err)
	}
	uploader := uploads.NewGCSUploader(gcsClient, cfg.EvidenceBucket)

	escrowEngine := escrow.NewEngine(store, store, identity.NewService(store, sessions), jobScheduler, notifier, escrow.Deadlines{
		Payment:      cfg.PaymentDeadline,
		Shipment:     cfg.ShipmentDeadline,
		BuyerConfirm: cfg.BuyerConfirmDeadline,
	})
	complaintsEngine := complaints.NewEngine(store, store, store, escrowEngine, jobScheduler, notifier, uploader, complaints.Deadlines{
		SellerResponse: cfg.SellerResponseDeadline,
		ReturnShipment: cfg.ReturnShipmentDeadline,
		SellerConfirm:  cfg.SellerConfirmDeadline,
	})

	router := handlers.NewRouter(handlers.Deps{
		Store:      store,
		Escrow:     escrowEngine,
		Complaints: complaintsEngine,
		Sessions:   sessions,
		Notifier:   notifier,
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	wrapped := chimiddleware.RequestID(middleware.NewStructuredLogger(logger)(router))

	log.Printf("Starting server on port %s", cfg.HTTPPort)

	if err := http.ListenAndServe(":"+cfg.HTTPPort, wrapped); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
