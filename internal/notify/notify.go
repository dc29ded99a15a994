// Package notify delivers outbound mail for the trip planner: the
// "trip created" message to owners and invitations to participants.
package notify

import "context"

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Receipt identifies a message accepted for delivery.
type Receipt struct {
	MessageID string
}

// Dispatcher sends a single message. Implementations do not retry; a failed
// send is reported to the caller, which decides whether to log and move on.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}
