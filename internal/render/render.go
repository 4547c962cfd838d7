// Package render produces the subject line and HTML body for a pipeline
// snapshot email. Rendering is a pure function of its inputs: the same
// SenderType, names, and instant always produce byte-identical output. The
// caller supplies the clock so tests can pin it.
package render

import (
	"fmt"
	"time"
)

// SenderType selects which of the two template variants is rendered.
//
// SenderManager is deliberately the zero value: any sender type other than
// the exact string "owner" renders the team-rollup variant. The fallthrough
// is part of the contract, not an accident — unknown values must degrade to
// the manager template rather than fail.
type SenderType int

const (
	// SenderManager renders the team-level rollup variant.
	SenderManager SenderType = iota
	// SenderOwner renders the individual-contributor variant.
	SenderOwner
)

// ParseSenderType maps the wire value to a SenderType. Only the exact string
// "owner" selects the owner variant; everything else is a manager.
func ParseSenderType(s string) SenderType {
	if s == "owner" {
		return SenderOwner
	}
	return SenderManager
}

// Input carries everything the renderer needs besides the clock.
type Input struct {
	Sender        SenderType
	SenderName    string // display name of the person the report belongs to
	RecipientName string // display name used in the greeting; may be empty
}

// Message is a rendered subject/body pair, ready for the delivery gateway.
type Message struct {
	Subject string
	HTML    string
}

// dateFormat is abbreviated month, numeric day, numeric year: "Jan 5, 2025".
const dateFormat = "Jan 2, 2006"

// Render builds the subject and HTML body for the given input at the given
// instant. It never fails.
func Render(in Input, now time.Time) Message {
	date := now.Format(dateFormat)

	greeting := "Hi"
	if in.RecipientName != "" {
		greeting = fmt.Sprintf("Hi %s", in.RecipientName)
	}

	switch in.Sender {
	case SenderOwner:
		return Message{
			Subject: fmt.Sprintf("Your Quarterly Pipeline Snapshot - %s", date),
			HTML:    ownerHTML(greeting, in.SenderName, date),
		}
	default:
		return Message{
			Subject: fmt.Sprintf("%s's Team Pipeline Snapshot - %s", in.SenderName, date),
			HTML:    managerHTML(greeting, in.SenderName, date),
		}
	}
}

// ─── HTML TEMPLATES ───────────────────────────────────────────────────────────

func ownerHTML(greeting, senderName, date string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="margin-bottom: 8px;">Your Quarterly Pipeline Snapshot</h2>
  <p>%s,</p>
  <p>Your personal pipeline snapshot as of <strong>%s</strong> is attached as
  a PDF. It covers the deals you own: stage progression, quarter-over-quarter
  movement, and where your open pipeline stands against target.</p>
  <p style="color: #6b7280; font-size: 14px;">
    This snapshot was prepared for %s. If any numbers look off, reply to this
    email and we will re-run the report.
  </p>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 32px 0;">
  <p style="color: #9ca3af; font-size: 12px;">
    PipelineHQ · Quarterly snapshot · Generated %s
  </p>
</body>
</html>`, greeting, date, senderName, date)
}

func managerHTML(greeting, senderName, date string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="margin-bottom: 8px;">%s's Team Pipeline Snapshot</h2>
  <p>%s,</p>
  <p>The team pipeline snapshot as of <strong>%s</strong> is attached as a
  PDF. It rolls up every rep on %s's team: coverage by stage, movement since
  last quarter, and the deals that need attention before quarter close.</p>
  <p style="color: #6b7280; font-size: 14px;">
    Questions about a specific rep's numbers? Reply to this email and we will
    break the rollup down for you.
  </p>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 32px 0;">
  <p style="color: #9ca3af; font-size: 12px;">
    PipelineHQ · Quarterly snapshot · Generated %s
  </p>
</body>
</html>`, senderName, greeting, date, senderName, date)
}
