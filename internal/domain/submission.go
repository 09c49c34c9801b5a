package domain

import (
	"strings"
	"time"
)

const (
	// StatusNew is the only lifecycle state this pipeline assigns.
	StatusNew = "new"
	// TypeBusinessContact tags records that come from the travel contact form.
	TypeBusinessContact = "business_contact"
)

// Attribute names, shared by the JSON request body and the DynamoDB item.
const (
	FieldSubmissionID = "submission_id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldMessage      = "message"
	FieldPhone        = "phone"
	FieldCompany      = "company"
	FieldSubject      = "subject"
	FieldTravelDates  = "travel_dates"
	FieldBudget       = "budget"
	FieldTimestamp    = "timestamp"
	FieldStatus       = "status"
	FieldType         = "type"
)

// RequiredFields lists the required request fields in validation order.
var RequiredFields = []string{FieldName, FieldEmail, FieldMessage}

// OptionalFields lists the optional request fields that are persisted when non-blank.
var OptionalFields = []string{FieldPhone, FieldCompany, FieldSubject, FieldTravelDates, FieldBudget}

// Submission is one contact-form inquiry. It is written once at intake and never mutated.
type Submission struct {
	ID          string `json:"submission_id" dynamodbav:"submission_id"`
	Name        string `json:"name" dynamodbav:"name"`
	Email       string `json:"email" dynamodbav:"email"`
	Message     string `json:"message" dynamodbav:"message"`
	Phone       string `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Company     string `json:"company,omitempty" dynamodbav:"company,omitempty"`
	Subject     string `json:"subject,omitempty" dynamodbav:"subject,omitempty"`
	TravelDates string `json:"travel_dates,omitempty" dynamodbav:"travel_dates,omitempty"`
	Budget      string `json:"budget,omitempty" dynamodbav:"budget,omitempty"`
	Timestamp   string `json:"timestamp" dynamodbav:"timestamp"`
	Status      string `json:"status" dynamodbav:"status"`
	Type        string `json:"type" dynamodbav:"type"`
}

// SubmissionRequest is the inbound form payload.
type SubmissionRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Subject     string `json:"subject"`
	TravelDates string `json:"travel_dates"`
	Budget      string `json:"budget"`
}

// MissingField returns the first required field that is absent or blank after
// trimming, checked in RequiredFields order. It returns "" when all are present.
func (r SubmissionRequest) MissingField() string {
	values := map[string]string{
		FieldName:    r.Name,
		FieldEmail:   r.Email,
		FieldMessage: r.Message,
	}
	for _, f := range RequiredFields {
		if isBlank(values[f]) {
			return f
		}
	}
	return ""
}

// NewSubmission assembles the record for a validated request. Required values
// are kept verbatim; optional values are kept verbatim only when non-blank.
func NewSubmission(id string, createdAt time.Time, r SubmissionRequest) Submission {
	return Submission{
		ID:          id,
		Name:        r.Name,
		Email:       r.Email,
		Message:     r.Message,
		Phone:       optional(r.Phone),
		Company:     optional(r.Company),
		Subject:     optional(r.Subject),
		TravelDates: optional(r.TravelDates),
		Budget:      optional(r.Budget),
		Timestamp:   createdAt.UTC().Format(time.RFC3339),
		Status:      StatusNew,
		Type:        TypeBusinessContact,
	}
}

func optional(v string) string {
	if isBlank(v) {
		return ""
	}
	return v
}

func isBlank(v string) bool { return strings.TrimSpace(v) == "" }
