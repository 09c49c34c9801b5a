package ses

import "errors"

// ErrNoRecipients is returned when a message has no destination address.
var ErrNoRecipients = errors.New("message has no recipients")

// Message is a fully composed plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}
