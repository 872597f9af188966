package mailer

import "context"

// Message is an outbound notification. ReplyTo carries the submitter's
// address so the operator can answer an inquiry directly.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers notification messages. Implementations report delivery
// failure through the returned error; callers must not treat dispatch as
// fire-and-forget.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
