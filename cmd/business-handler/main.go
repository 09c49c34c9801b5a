package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/travelease/inquiry-pipeline/internal/config"
	"github.com/travelease/inquiry-pipeline/internal/notify"
	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
	"github.com/travelease/inquiry-pipeline/internal/ses"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateBusiness(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	logger.SetRedactPII(cfg.Log.RedactPIIEnabled())

	awsCfg, err := cfg.LoadAWS(context.Background())
	if err != nil {
		log.Fatalf("aws config: %v", err)
	}

	handler := notify.NewBusinessHandler(ses.NewMailer(awsCfg), notify.BusinessConfig{
		From:         cfg.Email.From,
		AdminEmail:   cfg.Email.Admin,
		CompanyEmail: cfg.Email.Company,
	})

	logger.Info("business handler ready", "admin_email", cfg.Email.Admin, "company_email", cfg.Email.Company)
	lambda.Start(handler.Handle)
}
