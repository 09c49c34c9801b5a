package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/travelease/inquiry-pipeline/internal/config"
	"github.com/travelease/inquiry-pipeline/internal/intake"
	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
	"github.com/travelease/inquiry-pipeline/internal/storage"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateIntake(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	logger.SetRedactPII(cfg.Log.RedactPIIEnabled())

	awsCfg, err := cfg.LoadAWS(context.Background())
	if err != nil {
		log.Fatalf("aws config: %v", err)
	}

	store := storage.NewDynamoStore(awsCfg, cfg.Table.Name)
	handler := intake.NewHandler(store)

	logger.Info("submit handler ready", "table", cfg.Table.Name)
	lambda.Start(handler.Handle)
}
