// Package authd provides the default authentication service: it logs every
// decoded request and echoes it back. The wire encoder narrows the echoed
// message down to the response vocabulary (access, tokenSeq) on the way out,
// so an echoed infoReq goes back as a bare "infoReq" line.
package authd

import (
	"context"
	"log/slog"

	"github.com/rayauth/rayauth/pkg/authmsg"
)

// Service implements session.Handler.
type Service struct {
	log *slog.Logger
}

// New creates the echo service.
func New(log *slog.Logger) *Service {
	return &Service{log: log}
}

// Handle logs the request and returns it unchanged.
func (s *Service) Handle(_ context.Context, req *authmsg.Message) (*authmsg.Message, error) {
	s.log.Info("request", "message", req)
	return req, nil
}
