// Command server runs the whole inquiry pipeline in one process for local
// development: the intake endpoint behind chi, an in-memory table whose
// writes fan out to both notification handlers, and a mailer that logs
// instead of sending unless -send-email is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/travelease/inquiry-pipeline/internal/api"
	"github.com/travelease/inquiry-pipeline/internal/config"
	"github.com/travelease/inquiry-pipeline/internal/intake"
	"github.com/travelease/inquiry-pipeline/internal/notify"
	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
	"github.com/travelease/inquiry-pipeline/internal/ses"
	"github.com/travelease/inquiry-pipeline/internal/storage"
)

func main() {
	useDynamo := flag.Bool("dynamodb", false, "write submissions to the configured DynamoDB table instead of memory")
	sendEmail := flag.Bool("send-email", false, "send notifications through SES instead of logging them")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	logger.SetRedactPII(cfg.Log.RedactPIIEnabled())

	ctx := context.Background()

	var mailer notify.Mailer = ses.LogMailer{}
	if *sendEmail || *useDynamo {
		awsCfg, err := cfg.LoadAWS(ctx)
		if err != nil {
			log.Fatalf("aws config: %v", err)
		}
		if *sendEmail {
			mailer = ses.NewMailer(awsCfg)
		}
		if *useDynamo {
			if err := cfg.ValidateIntake(); err != nil {
				log.Fatalf("Invalid config: %v", err)
			}
			run(cfg, storage.NewDynamoStore(awsCfg, cfg.Table.Name), nil)
			return
		}
	}

	// Business and client notifications need addresses even when only logged.
	if err := cfg.ValidateBusiness(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	store := storage.NewMemoryStore()
	client := notify.NewClientHandler(mailer, notify.ClientConfig{From: cfg.Email.Company})
	business := notify.NewBusinessHandler(mailer, notify.BusinessConfig{
		From:         cfg.Email.From,
		AdminEmail:   cfg.Email.Admin,
		CompanyEmail: cfg.Email.Company,
	})
	store.Subscribe(subscriber(client.Handle))
	store.Subscribe(subscriber(business.Handle))

	run(cfg, store, store.Close)
}

func subscriber(handle func(context.Context, events.DynamoDBEvent) (notify.Result, error)) storage.Subscriber {
	return func(ctx context.Context, event events.DynamoDBEvent) {
		if _, err := handle(ctx, event); err != nil {
			logger.Error("notification handler failed", "error", err)
		}
	}
}

func run(cfg *config.Config, store intake.Store, drain func()) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(intake.NewHandler(store)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("inquiry pipeline listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down inquiry pipeline...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if drain != nil {
		drain()
	}
}
