package notify

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/travelease/inquiry-pipeline/internal/domain"
	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
)

// BusinessConfig holds the fixed addresses for internal notifications.
type BusinessConfig struct {
	From         string
	AdminEmail   string
	CompanyEmail string
}

// BusinessHandler sends the admin alert and the sales lead notice for each new submission.
type BusinessHandler struct {
	mailer Mailer
	cfg    BusinessConfig
	log    *logger.Logger
}

// NewBusinessHandler creates a business-notification handler.
func NewBusinessHandler(mailer Mailer, cfg BusinessConfig) *BusinessHandler {
	return &BusinessHandler{
		mailer: mailer,
		cfg:    cfg,
		log:    logger.With("handler", "business"),
	}
}

// Handle processes one change-feed batch.
func (h *BusinessHandler) Handle(ctx context.Context, event events.DynamoDBEvent) (Result, error) {
	return process(ctx, h.log, "Business emails processed", event, h.notify)
}

func (h *BusinessHandler) notify(ctx context.Context, counter *sendCounter, sub domain.Submission) {
	admin := AdminAlert(sub, h.cfg.From, h.cfg.AdminEmail)
	err := send(ctx, h.mailer, admin)
	counter.record(err)
	if err != nil {
		h.log.Error("admin email failed", "submission_id", sub.ID, "recipient", h.cfg.AdminEmail, "error", err)
	} else {
		h.log.Info("admin notification sent", "submission_id", sub.ID, "recipient", h.cfg.AdminEmail)
	}

	lead := LeadCapture(sub, h.cfg.From, h.cfg.CompanyEmail)
	err = send(ctx, h.mailer, lead)
	counter.record(err)
	if err != nil {
		h.log.Error("company email failed", "submission_id", sub.ID, "recipient", h.cfg.CompanyEmail, "error", err)
	} else {
		h.log.Info("company notification sent", "submission_id", sub.ID, "recipient", h.cfg.CompanyEmail)
	}
}
