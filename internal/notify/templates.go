package notify

import (
	"fmt"
	"strings"

	"github.com/travelease/inquiry-pipeline/internal/domain"
	"github.com/travelease/inquiry-pipeline/internal/ses"
)

// Fallback labels for fields missing from a record.
const (
	notProvided    = "Not provided"
	notSpecified   = "Not specified"
	notAvailable   = "N/A"
	directLead     = "Direct"
	valuedCustomer = "Valued Customer"
)

// Subject lines.
const (
	ClientSubject       = "Thank You for Contacting TravelEase!"
	adminSubjectFormat  = "New Travel Inquiry - %s"
	leadSubjectFormat   = "New Lead - %s"
	leadSourceLabel     = "Travel Contact Form"
	supportContactEmail = "support@travelease.com"
	websiteURL          = "www.travelease.com"
)

// display returns v, or fallback when v is blank.
func display(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// AdminAlert composes the internal alert for a new inquiry.
func AdminAlert(sub domain.Submission, from, to string) ses.Message {
	body := fmt.Sprintf(`🆕 NEW TRAVEL INQUIRY

Client Details:
👤 Name: %s
📧 Email: %s
📞 Phone: %s
🏢 Company: %s

Subject: %s

Travel Dates: %s
Budget: %s

Message:
%s

Reference ID: %s
Received: %s

Please respond within 24 hours.
`,
		sub.Name,
		sub.Email,
		display(sub.Phone, notProvided),
		display(sub.Company, notProvided),
		display(sub.Subject, notProvided),
		display(sub.TravelDates, notProvided),
		display(sub.Budget, notProvided),
		sub.Message,
		sub.ID,
		sub.Timestamp,
	)

	return ses.Message{
		From:    from,
		To:      []string{to},
		Subject: fmt.Sprintf(adminSubjectFormat, sub.Name),
		Body:    body,
	}
}

// LeadCapture composes the sales-facing lead notice.
func LeadCapture(sub domain.Submission, from, to string) ses.Message {
	body := fmt.Sprintf(`🎯 NEW LEAD CAPTURED

Lead Details:
Name: %s
Email: %s
Company: %s
Phone: %s
Source: %s

Travel Details:
Dates: %s
Budget: %s

Message:
%s

Lead ID: %s
Timestamp: %s

This lead has been captured in the system.
`,
		sub.Name,
		sub.Email,
		display(sub.Company, directLead),
		display(sub.Phone, notProvided),
		leadSourceLabel,
		display(sub.TravelDates, notSpecified),
		display(sub.Budget, notSpecified),
		sub.Message,
		sub.ID,
		sub.Timestamp,
	)

	return ses.Message{
		From:    from,
		To:      []string{to},
		Subject: fmt.Sprintf(leadSubjectFormat, sub.Name),
		Body:    body,
	}
}

// ClientConfirmation composes the thank-you email sent to the submitter.
func ClientConfirmation(sub domain.Submission, from string) ses.Message {
	body := fmt.Sprintf(`Dear %s,

Thank you for your interest in TravelEase! We have received your inquiry and our team will contact you shortly.

Inquiry Summary:
- Reference ID: %s
- Submitted: %s

Your Message:
%s

We look forward to assisting you with your travel needs!

Best regards,
The TravelEase Team
📞 Contact: %s
🌐 Website: %s
`,
		display(sub.Name, valuedCustomer),
		display(sub.ID, notAvailable),
		display(sub.Timestamp, notAvailable),
		display(sub.Message, notAvailable),
		supportContactEmail,
		websiteURL,
	)

	return ses.Message{
		From:    from,
		To:      []string{sub.Email},
		Subject: ClientSubject,
		Body:    body,
	}
}
