package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMissingField(t *testing.T) {
	tests := []struct {
		name string
		req  SubmissionRequest
		want string
	}{
		{"all present", SubmissionRequest{Name: "Ana", Email: "ana@x.com", Message: "Hi"}, ""},
		{"empty name", SubmissionRequest{Email: "a@b.com", Message: "hi"}, FieldName},
		{"blank name wins over blank email", SubmissionRequest{Name: "  ", Email: "\t", Message: "hi"}, FieldName},
		{"blank email", SubmissionRequest{Name: "Ana", Email: "   ", Message: "hi"}, FieldEmail},
		{"missing message", SubmissionRequest{Name: "Ana", Email: "ana@x.com"}, FieldMessage},
		{"everything missing", SubmissionRequest{}, FieldName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.MissingField())
		})
	}
}

func TestNewSubmission(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	sub := NewSubmission("id-1", created, SubmissionRequest{
		Name:        " Ana ",
		Email:       "ana@x.com",
		Message:     "Hi",
		Phone:       "+1 555 0100",
		Company:     "   ",
		TravelDates: "June 2026",
	})

	assert.Equal(t, "id-1", sub.ID)
	assert.Equal(t, " Ana ", sub.Name)
	assert.Equal(t, "+1 555 0100", sub.Phone)
	assert.Empty(t, sub.Company)
	assert.Empty(t, sub.Subject)
	assert.Equal(t, "June 2026", sub.TravelDates)
	assert.Empty(t, sub.Budget)
	assert.Equal(t, "2026-03-14T08:30:00Z", sub.Timestamp)
	assert.Equal(t, StatusNew, sub.Status)
	assert.Equal(t, TypeBusinessContact, sub.Type)
}
