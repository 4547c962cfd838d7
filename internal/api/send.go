package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nyashahama/pipeline-snapshot-mailer/internal/email"
	"github.com/nyashahama/pipeline-snapshot-mailer/internal/render"
)

// ─── POST /send-pdf-email ─────────────────────────────────────────────────────

type sendPDFEmailRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
	SenderName     string `json:"senderName"`
	SenderType     string `json:"senderType"` // "owner" | "manager"; anything else renders the manager variant
	PDFBase64      string `json:"pdfBase64"`
	PDFFilename    string `json:"pdfFilename"`
	CCEmail        string `json:"ccEmail"`
	// QuartersLabel is accepted but not used in rendering. Reserved: the
	// upstream tool already sends it, and a future template revision will put
	// the covered quarters in the subject line.
	QuartersLabel string `json:"quartersLabel"`
}

type sendPDFEmailResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// handleSendPDFEmail validates the request, renders the subject and body for
// the sender type, decodes the PDF payload, and relays the message through
// the delivery provider. The provider call is synchronous and never retried:
// the caller is a human-facing tool whose user retries manually.
func (s *Server) handleSendPDFEmail(w http.ResponseWriter, r *http.Request) {
	var req sendPDFEmailRequest
	if !decode(w, r, &req, s.cfg.MaxBodyBytes) {
		return
	}

	// ── Validate ──────────────────────────────────────────────────────────────
	// Cheap syntactic checks only — no MX lookup, no RFC 5322 parsing. The
	// gateway must not be invoked for a request that fails here.
	if req.RecipientEmail == "" || req.PDFBase64 == "" || req.PDFFilename == "" {
		respondErr(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !strings.Contains(req.RecipientEmail, "@") {
		respondErr(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	pdf, err := base64.StdEncoding.DecodeString(req.PDFBase64)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid PDF payload")
		return
	}

	// ── Render ────────────────────────────────────────────────────────────────
	msg := render.Render(render.Input{
		Sender:        render.ParseSenderType(req.SenderType),
		SenderName:    req.SenderName,
		RecipientName: req.RecipientName,
	}, time.Now())

	// ── Deliver ───────────────────────────────────────────────────────────────
	err = s.mailer.Send(r.Context(), email.Message{
		To:      req.RecipientEmail,
		ToName:  req.RecipientName,
		CC:      req.CCEmail,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Attachment: email.Attachment{
			Filename:    req.PDFFilename,
			Content:     pdf,
			ContentType: "application/pdf",
			Disposition: "attachment",
		},
	})
	if err != nil {
		// Surface the provider's structured detail verbatim when present —
		// the caller is an internal operator tool, not an untrusted public
		// client. Anything else is reported as-is.
		message := err.Error()
		var pe *email.ProviderError
		if errors.As(err, &pe) {
			message = pe.Message
		}
		s.logger.Error("send failed",
			"recipient", req.RecipientEmail,
			"sender_type", req.SenderType,
			"error", err,
			"request_id", reqID(r),
		)
		respond(w, http.StatusInternalServerError, map[string]string{
			"error":     message,
			"timestamp": timestamp(),
		})
		return
	}

	s.logger.Info("send delivered",
		"recipient", req.RecipientEmail,
		"sender_type", req.SenderType,
		"pdf_bytes", len(pdf),
		"request_id", reqID(r),
	)

	respond(w, http.StatusOK, sendPDFEmailResponse{
		Success:   true,
		Message:   fmt.Sprintf("Email sent successfully to %s", req.RecipientEmail),
		Timestamp: timestamp(),
	})
}
