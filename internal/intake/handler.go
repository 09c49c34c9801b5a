// Package intake implements the public contact-form endpoint: it validates a
// submission, assigns it an id and timestamp, and writes it to the record store.
package intake

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/travelease/inquiry-pipeline/internal/domain"
	"github.com/travelease/inquiry-pipeline/internal/pkg/httputil"
	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
)

const (
	preflightMessage = "CORS Preflight"
	successMessage   = "Travel form submitted successfully"
)

// Store persists a new submission as a single write.
type Store interface {
	Put(ctx context.Context, sub domain.Submission) error
}

// SubmitResponse is the success body.
type SubmitResponse struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submission_id"`
}

// Handler serves the intake endpoint.
type Handler struct {
	store Store
	newID func() string
	now   func() time.Time
}

// Option customizes a Handler.
type Option func(*Handler)

// WithIDGenerator overrides the submission id source.
func WithIDGenerator(fn func() string) Option {
	return func(h *Handler) { h.newID = fn }
}

// WithClock overrides the time source.
func WithClock(fn func() time.Time) Option {
	return func(h *Handler) { h.now = fn }
}

// NewHandler creates an intake handler writing to store.
func NewHandler(store Store, opts ...Option) *Handler {
	h := &Handler{
		store: store,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes one API Gateway proxy request. Every outcome is expressed
// as an HTTP response; the returned error is always nil.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("intake handler panic", "panic", r)
			resp = httputil.InternalError(fmt.Errorf("internal error: %v", r))
			err = nil
		}
	}()

	if req.HTTPMethod == http.MethodOptions {
		return httputil.OK(httputil.MessageResponse{Message: preflightMessage}), nil
	}

	payload := parseBody(req)
	if field := payload.MissingField(); field != "" {
		logger.Info("submission rejected", "missing_field", field)
		return httputil.BadRequest("Missing required field: " + field), nil
	}

	sub := domain.NewSubmission(h.newID(), h.now(), payload)
	if err := h.store.Put(ctx, sub); err != nil {
		logger.Error("storing submission failed", "submission_id", sub.ID, "error", err)
		return httputil.InternalError(err), nil
	}

	logger.Info("submission stored", "submission_id", sub.ID, "email", sub.Email)
	return httputil.OK(SubmitResponse{Message: successMessage, SubmissionID: sub.ID}), nil
}

// parseBody decodes the JSON body. A missing, undecodable, or non-object body
// yields an empty request so validation reports the first missing field.
// Within an object, each field is read on its own: see fieldValue.
func parseBody(req events.APIGatewayProxyRequest) domain.SubmissionRequest {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			logger.Warn("request body is not valid base64", "error", err)
			return domain.SubmissionRequest{}
		}
		body = decoded
	}
	if len(body) == 0 {
		return domain.SubmissionRequest{}
	}

	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		logger.Warn("request body is not a JSON object", "error", err)
		return domain.SubmissionRequest{}
	}

	return domain.SubmissionRequest{
		Name:        fieldValue(fields, domain.FieldName),
		Email:       fieldValue(fields, domain.FieldEmail),
		Message:     fieldValue(fields, domain.FieldMessage),
		Phone:       fieldValue(fields, domain.FieldPhone),
		Company:     fieldValue(fields, domain.FieldCompany),
		Subject:     fieldValue(fields, domain.FieldSubject),
		TravelDates: fieldValue(fields, domain.FieldTravelDates),
		Budget:      fieldValue(fields, domain.FieldBudget),
	}
}

// fieldValue returns a request field as text. Strings are kept verbatim,
// numbers keep their JSON text, booleans become "true"/"false". Null, arrays
// and objects count as absent.
func fieldValue(fields map[string]any, name string) string {
	switch v := fields[name].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		logger.Warn("ignoring non-scalar request field", "field", name)
		return ""
	}
}
