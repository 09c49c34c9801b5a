package ses

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
)

// SendEmailAPI is the subset of the SES v2 client used by Mailer.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Mailer sends plain-text messages through AWS SES v2.
type Mailer struct {
	client SendEmailAPI
}

// NewMailer creates an SES mailer from a loaded AWS config.
func NewMailer(cfg aws.Config) *Mailer {
	return NewMailerWithClient(sesv2.NewFromConfig(cfg))
}

// NewMailerWithClient wraps an existing SES client.
func NewMailerWithClient(client SendEmailAPI) *Mailer {
	return &Mailer{client: client}
}

// Send delivers one message. SES handles SMTP delivery, retries, and bounces;
// a returned error means SES did not accept the message.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	for _, to := range msg.To {
		if strings.TrimSpace(to) == "" {
			return ErrNoRecipients
		}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination:      &types.Destination{ToAddresses: msg.To},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", strings.Join(msg.To, ","), err)
	}

	messageID := ""
	if out != nil && out.MessageId != nil {
		messageID = *out.MessageId
	}
	logger.Debug("ses accepted message", "recipient", strings.Join(msg.To, ","), "message_id", messageID)
	return nil
}

// LogMailer writes messages to the log instead of sending them. Used by the
// local server when no SES identity is available.
type LogMailer struct{}

// Send logs the message and always succeeds.
func (LogMailer) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	logger.Info("email (not sent)",
		"from", msg.From,
		"recipient", strings.Join(msg.To, ","),
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
