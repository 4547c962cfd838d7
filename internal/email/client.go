// Package email defines the interface for transactional email delivery and
// provides a SendGrid-backed implementation.
package email

import "context"

// Attachment is a single file carried on a Message. For this relay the
// content type is always "application/pdf" and the disposition "attachment";
// the fields exist so the gateway stays a dumb pipe.
type Attachment struct {
	Filename    string
	Content     []byte // raw bytes — the gateway handles provider encoding
	ContentType string
	Disposition string
}

// Message is a fully-composed email, ready to hand to the provider.
// It is built per-request and discarded after Send returns.
type Message struct {
	To         string // recipient address; already validated by the caller
	ToName     string // recipient display name; may be empty
	CC         string // optional CC address; empty means no CC
	Subject    string
	HTML       string
	Attachment Attachment
}

// Sender is the interface the HTTP layer uses to deliver email.
// Tests inject a stub that records calls without hitting the network.
type Sender interface {
	// Send submits the message to the provider and blocks until it answers.
	// A nil return means the provider accepted the message. No retries are
	// performed — a failed call is surfaced to the caller immediately.
	Send(ctx context.Context, m Message) error
}
