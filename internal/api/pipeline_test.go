package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelease/inquiry-pipeline/internal/intake"
	"github.com/travelease/inquiry-pipeline/internal/notify"
	"github.com/travelease/inquiry-pipeline/internal/ses"
	"github.com/travelease/inquiry-pipeline/internal/storage"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []ses.Message
}

func (m *recordingMailer) Send(_ context.Context, msg ses.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func TestSubmissionFansOutToBothHandlers(t *testing.T) {
	mailer := &recordingMailer{}
	store := storage.NewMemoryStore()

	client := notify.NewClientHandler(mailer, notify.ClientConfig{From: "sales@travelease.com"})
	business := notify.NewBusinessHandler(mailer, notify.BusinessConfig{
		From:         "noreply@travelease.com",
		AdminEmail:   "admin@travelease.com",
		CompanyEmail: "sales@travelease.com",
	})
	for _, handle := range []func(context.Context, events.DynamoDBEvent) (notify.Result, error){client.Handle, business.Handle} {
		handle := handle
		store.Subscribe(func(ctx context.Context, e events.DynamoDBEvent) {
			_, err := handle(ctx, e)
			assert.NoError(t, err)
		})
	}

	srv := httptest.NewServer(NewRouter(intake.NewHandler(store)))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/submit", "application/json",
		strings.NewReader(`{"name":"Ana","email":"ana@x.com","message":"Hi"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	store.Close()

	require.Len(t, mailer.sent, 3)
	var subjects []string
	for _, m := range mailer.sent {
		subjects = append(subjects, m.Subject+" -> "+strings.Join(m.To, ","))
	}
	sort.Strings(subjects)
	assert.Equal(t, []string{
		"New Lead - Ana -> sales@travelease.com",
		"New Travel Inquiry - Ana -> admin@travelease.com",
		"Thank You for Contacting TravelEase! -> ana@x.com",
	}, subjects)
}
