// Package natsgath publishes session events as JSON messages on a NATS subject.
package natsgath

import (
	"log/slog"

	"github.com/nats-io/nats.go"
)

// New creates a new NATS gatherer that streams events to the given subject.
func New(nc *nats.Conn, sessionUuid string, subject string, logger *slog.Logger) *natsGatherer {
	if logger == nil {
		logger = slog.Default()
	}
	return &natsGatherer{
		nc:          nc,
		subject:     subject,
		sessionUuid: sessionUuid,
		logger:      logger,
	}
}
