package mailer

// Gateway defines the interface for sending transactional email
type Gateway interface {
	// Send delivers one message to a single recipient.
	// Returns an error if the send failed.
	Send(to, subject, body string) error

	// GetName returns the name of the gateway implementation
	GetName() string
}
