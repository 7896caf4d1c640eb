package natsgath

import (
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/gatherer"
)

// publisher is the part of *nats.Conn the gatherer uses.
type publisher interface {
	Publish(subject string, data []byte) error
	Flush() error
}

var _ publisher = (*nats.Conn)(nil)

type natsGatherer struct {
	nc          publisher
	subject     string
	sessionUuid string
	logger      *slog.Logger
}

var _ gatherer.ResultGatherer = (*natsGatherer)(nil)

// StartJob implements gatherer.ResultGatherer.
func (s *natsGatherer) StartJob(systemInfo string, mode api.Mode, limits api.Limits) {
	s.send(api.NewStartJob(s.sessionUuid, systemInfo, mode, limits))
}

// StartCompile implements gatherer.ResultGatherer.
func (s *natsGatherer) StartCompile() {
	s.send(api.NewStartCompile(s.sessionUuid))
}

// FinishCompile implements gatherer.ResultGatherer.
func (s *natsGatherer) FinishCompile(data *api.RuntimeData) {
	s.send(api.NewFinishCompile(s.sessionUuid, gatherer.TrimRuntimeData(data)))
}

// ReachTest implements gatherer.ResultGatherer.
func (s *natsGatherer) ReachTest(testId int, input []byte, answer []byte) {
	s.send(api.NewReachTest(s.sessionUuid, testId, gatherer.TrimBytes(input), gatherer.TrimBytes(answer)))
}

// IgnoreTest implements gatherer.ResultGatherer.
func (s *natsGatherer) IgnoreTest(testId int) {
	s.send(api.NewIgnoreTest(s.sessionUuid, testId))
}

// FinishTest implements gatherer.ResultGatherer.
func (s *natsGatherer) FinishTest(testId int, outcome api.TestOutcome) {
	s.send(api.NewFinishTest(s.sessionUuid, testId, outcome))
}

// CompileError implements gatherer.ResultGatherer.
func (s *natsGatherer) CompileError(msg string) {
	msg = gatherer.TrimToRect(msg, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	s.finish(api.NewFinishJob(s.sessionUuid, &api.Outcome{Code: api.CE, Test: 1}, &msg, true, false))
}

// InternalError implements gatherer.ResultGatherer.
func (s *natsGatherer) InternalError(msg string) {
	s.finish(api.NewFinishJob(s.sessionUuid, nil, &msg, false, true))
}

// FinishNoError implements gatherer.ResultGatherer.
func (s *natsGatherer) FinishNoError(outcome *api.Outcome) {
	s.finish(api.NewFinishJob(s.sessionUuid, outcome, nil, false, false))
}
