package api

import "net/http"

// ─── GET /health ──────────────────────────────────────────────────────────────

type healthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

// handleHealth answers 200 regardless of provider configuration — it reports
// that the process is up, not that sends will succeed.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, healthResponse{
		Status:      "Backend is running",
		Timestamp:   timestamp(),
		Environment: s.cfg.Env,
	})
}

// ─── GET /logs ────────────────────────────────────────────────────────────────

type logsResponse struct {
	Message            string `json:"message"`
	SendGridConfigured bool   `json:"sendgridConfigured"`
	Timestamp          string `json:"timestamp"`
}

// handleLogs is the operator's quick configuration check: it tells whether a
// provider API key was present at startup without revealing the key.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, logsResponse{
		Message:            "Backend is operational",
		SendGridConfigured: s.cfg.SendGridConfigured,
		Timestamp:          timestamp(),
	})
}
