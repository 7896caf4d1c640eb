package natsgath

import (
	"encoding/json"
	"log/slog"
)

// send never fails the session; a lost event is only logged.
func (s *natsGatherer) send(msg any) {
	b, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("failed to marshal message", slog.Any("error", err))
		return
	}

	if err := s.nc.Publish(s.subject, b); err != nil {
		s.logger.Warn("failed to publish message to NATS",
			slog.String("subject", s.subject),
			slog.Any("error", err))
	}
}

// finish sends the last message of a session and waits for the server to
// acknowledge everything published so far.
func (s *natsGatherer) finish(msg any) {
	s.send(msg)
	if err := s.nc.Flush(); err != nil {
		s.logger.Warn("failed to flush NATS connection", slog.Any("error", err))
	}
}
