// Package statusserver exposes operational state over HTTP.
package statusserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Stats is the slice of server state the status endpoints report.
// *authserver.Server satisfies it.
type Stats interface {
	ActiveSessions() int64
	TotalSessions() uint64
}

type statusServer struct {
	stats   Stats
	log     *slog.Logger
	started time.Time
}

// StatusResponse is the body of a GET /status.
type StatusResponse struct {
	ActiveSessions int64  `json:"active_sessions"`
	TotalSessions  uint64 `json:"total_sessions"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}

// New creates the status handler, which needs to then be attached to some
// http server, a la `http.ListenAndServe(...)`. It serves GET /healthz and
// GET /status.
func New(stats Stats, log *slog.Logger) http.Handler {
	s := &statusServer{
		stats:   stats,
		log:     log,
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.healthz)
	mux.HandleFunc("GET /status", s.status)
	return mux
}

func (s *statusServer) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *statusServer) status(w http.ResponseWriter, _ *http.Request) {
	body := StatusResponse{
		ActiveSessions: s.stats.ActiveSessions(),
		TotalSessions:  s.stats.TotalSessions(),
		UptimeSeconds:  int64(time.Since(s.started).Seconds()),
	}

	out, err := json.Marshal(body)
	if err != nil {
		s.log.Warn("unable to marshal status", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
