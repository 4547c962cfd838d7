package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ProviderError is a structured rejection from SendGrid. Message holds the
// first entry of the provider's error list when one is present, otherwise a
// trimmed copy of the raw response body. The HTTP layer surfaces Message
// verbatim to the caller for operator debugging.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("email: sendgrid returned %d: %s", e.StatusCode, e.Message)
}

// sendGridClient is the concrete Sender backed by the SendGrid v3 API.
type sendGridClient struct {
	client   *sendgrid.Client
	fromAddr string // e.g. "alex.morgan@pipelinehq.io"
	fromName string // e.g. "PipelineHQ Reports"
}

// NewSendGridClient returns a Sender that delivers email via SendGrid.
// An empty API key is accepted — the server must start without one — but
// every Send will then fail with the provider's authorization error.
func NewSendGridClient(apiKey, fromAddr, fromName string) Sender {
	return &sendGridClient{
		client:   sendgrid.NewSendClient(apiKey),
		fromAddr: fromAddr,
		fromName: fromName,
	}
}

// Send implements Sender. It blocks until SendGrid answers; any non-2xx
// response becomes a *ProviderError.
func (c *sendGridClient) Send(ctx context.Context, m Message) error {
	v3 := mail.NewV3Mail()
	v3.SetFrom(mail.NewEmail(c.fromName, c.fromAddr))
	v3.Subject = m.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(m.ToName, m.To))
	if m.CC != "" {
		p.AddCCs(mail.NewEmail("", m.CC))
	}
	v3.AddPersonalizations(p)

	v3.AddContent(mail.NewContent("text/html", m.HTML))

	// SendGrid wants attachment content base64-encoded inside the JSON payload.
	a := mail.NewAttachment()
	a.SetContent(base64.StdEncoding.EncodeToString(m.Attachment.Content))
	a.SetType(m.Attachment.ContentType)
	a.SetFilename(m.Attachment.Filename)
	a.SetDisposition(m.Attachment.Disposition)
	v3.AddAttachment(a)

	resp, err := c.client.SendWithContext(ctx, v3)
	if err != nil {
		return fmt.Errorf("email: sendgrid request: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return newProviderError(resp.StatusCode, resp.Body)
}

// ─── ERROR EXTRACTION ─────────────────────────────────────────────────────────

// sendGridErrorBody matches SendGrid's error envelope:
//
//	{"errors":[{"message":"...","field":null,"help":null}]}
type sendGridErrorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// newProviderError builds a ProviderError from a non-2xx response. The first
// message in the errors list wins; an unparseable or empty body falls back to
// the raw text so the operator always sees something.
func newProviderError(status int, body string) *ProviderError {
	var parsed sendGridErrorBody
	if err := json.Unmarshal([]byte(body), &parsed); err == nil &&
		len(parsed.Errors) > 0 && parsed.Errors[0].Message != "" {
		return &ProviderError{StatusCode: status, Message: parsed.Errors[0].Message}
	}

	msg := body
	if len(msg) > 512 {
		msg = msg[:512]
	}
	if msg == "" {
		msg = fmt.Sprintf("sendgrid returned status %d with an empty body", status)
	}
	return &ProviderError{StatusCode: status, Message: msg}
}
