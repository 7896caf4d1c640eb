package sqsgath

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/gatherer"
)

type sender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

var _ sender = (*sqs.Client)(nil)

type sqsGatherer struct {
	client      sender
	queueUrl    string
	sessionUuid string
	logger      *slog.Logger
}

var _ gatherer.ResultGatherer = (*sqsGatherer)(nil)

func (s *sqsGatherer) StartJob(systemInfo string, mode api.Mode, limits api.Limits) {
	s.send(api.NewStartJob(s.sessionUuid, systemInfo, mode, limits))
}

func (s *sqsGatherer) StartCompile() {
	s.send(api.NewStartCompile(s.sessionUuid))
}

func (s *sqsGatherer) FinishCompile(data *api.RuntimeData) {
	s.send(api.NewFinishCompile(s.sessionUuid, gatherer.TrimRuntimeData(data)))
}

func (s *sqsGatherer) ReachTest(testId int, input []byte, answer []byte) {
	s.send(api.NewReachTest(s.sessionUuid, testId, gatherer.TrimBytes(input), gatherer.TrimBytes(answer)))
}

func (s *sqsGatherer) IgnoreTest(testId int) {
	s.send(api.NewIgnoreTest(s.sessionUuid, testId))
}

func (s *sqsGatherer) FinishTest(testId int, outcome api.TestOutcome) {
	s.send(api.NewFinishTest(s.sessionUuid, testId, outcome))
}

func (s *sqsGatherer) CompileError(msg string) {
	msg = gatherer.TrimToRect(msg, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	s.send(api.NewFinishJob(s.sessionUuid, &api.Outcome{Code: api.CE, Test: 1}, &msg, true, false))
}

func (s *sqsGatherer) InternalError(msg string) {
	s.send(api.NewFinishJob(s.sessionUuid, nil, &msg, false, true))
}

func (s *sqsGatherer) FinishNoError(outcome *api.Outcome) {
	s.send(api.NewFinishJob(s.sessionUuid, outcome, nil, false, false))
}
