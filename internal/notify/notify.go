// Package notify turns change-feed INSERT events into notification emails.
//
// Two handlers subscribe to the same feed independently: BusinessHandler
// alerts the admin and sales mailboxes, ClientHandler confirms receipt to the
// submitter. A failed send is logged and counted but never fails the
// invocation, so one bad address does not trigger redelivery of the batch.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/travelease/inquiry-pipeline/internal/domain"
	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
	"github.com/travelease/inquiry-pipeline/internal/ses"
	"github.com/travelease/inquiry-pipeline/internal/stream"
)

// Mailer sends one composed message.
type Mailer interface {
	Send(ctx context.Context, msg ses.Message) error
}

// Result is what a notification handler reports back to the trigger.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Summary is the success body of a Result.
type Summary struct {
	Message string `json:"message"`
	Inserts int    `json:"inserts"`
	Skipped int    `json:"skipped"`
	Invalid int    `json:"invalid"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}

type sendCounter struct {
	sent   int
	failed int
}

func (c *sendCounter) record(err error) {
	if err != nil {
		c.failed++
		return
	}
	c.sent++
}

// send delivers msg, turning a panic in the mailer into an error so it is
// isolated like any other failed send.
func send(ctx context.Context, mailer Mailer, msg ses.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mailer panic: %v", r)
		}
	}()
	return mailer.Send(ctx, msg)
}

// process runs fn over every INSERT in the batch and builds the Result. A panic
// while walking the batch is reported as a failed invocation.
func process(ctx context.Context, log *logger.Logger, message string, event events.DynamoDBEvent, fn func(context.Context, *sendCounter, domain.Submission)) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing batch: %v", r)
			log.Error("batch processing failed", "error", err)
			res = jsonResult(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}()

	var counter sendCounter
	sum := stream.ForEachInsert(ctx, event, func(ctx context.Context, sub domain.Submission) {
		fn(ctx, &counter, sub)
	})

	log.Info("batch processed",
		"records", len(event.Records),
		"inserts", sum.Inserts,
		"skipped", sum.Skipped,
		"invalid", sum.DecodeErrors,
		"sent", counter.sent,
		"failed", counter.failed,
	)

	return jsonResult(http.StatusOK, Summary{
		Message: message,
		Inserts: sum.Inserts,
		Skipped: sum.Skipped,
		Invalid: sum.DecodeErrors,
		Sent:    counter.sent,
		Failed:  counter.failed,
	}), nil
}

func jsonResult(status int, v any) Result {
	body, _ := json.Marshal(v)
	return Result{StatusCode: status, Body: string(body)}
}
