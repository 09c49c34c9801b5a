package notify

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/travelease/inquiry-pipeline/internal/domain"
	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
	"github.com/travelease/inquiry-pipeline/internal/ses"
)

// ClientConfig holds the sender of confirmation emails.
type ClientConfig struct {
	From string
}

// ClientHandler sends one confirmation email to the submitter of each new submission.
type ClientHandler struct {
	mailer Mailer
	cfg    ClientConfig
	log    *logger.Logger
}

// NewClientHandler creates a client-notification handler.
func NewClientHandler(mailer Mailer, cfg ClientConfig) *ClientHandler {
	return &ClientHandler{
		mailer: mailer,
		cfg:    cfg,
		log:    logger.With("handler", "client"),
	}
}

// Handle processes one change-feed batch.
func (h *ClientHandler) Handle(ctx context.Context, event events.DynamoDBEvent) (Result, error) {
	return process(ctx, h.log, "Client emails processed", event, h.notify)
}

func (h *ClientHandler) notify(ctx context.Context, counter *sendCounter, sub domain.Submission) {
	if strings.TrimSpace(sub.Email) == "" {
		counter.record(ses.ErrNoRecipients)
		h.log.Error("confirmation skipped", "submission_id", sub.ID, "error", ses.ErrNoRecipients)
		return
	}

	err := send(ctx, h.mailer, ClientConfirmation(sub, h.cfg.From))
	counter.record(err)
	if err != nil {
		h.log.Error("confirmation email failed", "submission_id", sub.ID, "recipient", sub.Email, "error", err)
		return
	}
	h.log.Info("confirmation email sent", "submission_id", sub.ID, "recipient", sub.Email)
}
