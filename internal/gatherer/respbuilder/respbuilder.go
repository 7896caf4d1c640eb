// Package respbuilder collects session events into an api.Summary.
package respbuilder

import (
	"time"

	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/gatherer"
)

// Builder gathers session events and builds a complete api.Summary.
type Builder struct {
	sessionUuid string
	systemInfo  string
	mode        api.Mode
	limits      api.Limits

	started  time.Time
	finished *time.Time
	now      func() time.Time

	compileResult api.CompileResult
	testResults   []api.TestResult
	outcome       *api.Outcome

	status       api.Status
	errorMessage *string
}

var _ gatherer.ResultGatherer = (*Builder)(nil)

func New(sessionUuid string) *Builder {
	b := &Builder{
		sessionUuid: sessionUuid,
		now:         time.Now,
		status:      api.Finished,
		testResults: []api.TestResult{},
	}
	b.started = b.now()
	return b
}

// StartJob implements gatherer.ResultGatherer.
func (b *Builder) StartJob(systemInfo string, mode api.Mode, limits api.Limits) {
	b.systemInfo = systemInfo
	b.mode = mode
	b.limits = limits
	b.started = b.now()
}

// StartCompile implements gatherer.ResultGatherer.
func (b *Builder) StartCompile() {}

// FinishCompile implements gatherer.ResultGatherer.
func (b *Builder) FinishCompile(data *api.RuntimeData) {
	// interpreted submissions have nothing to compile
	b.compileResult.Success = true
	if data == nil {
		return
	}
	code, wall := data.ExitCode, data.WallMillis
	b.compileResult.ExitCode = &code
	b.compileResult.WallMillis = &wall
	if code != 0 {
		b.compileResult.Success = false
		msg := "compilation failed"
		if data.Stderr != "" {
			msg = gatherer.TrimToRect(data.Stderr, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
		}
		b.compileResult.Error = &msg
	}
}

// ReachTest implements gatherer.ResultGatherer.
func (b *Builder) ReachTest(testId int, input []byte, answer []byte) {}

// IgnoreTest implements gatherer.ResultGatherer.
func (b *Builder) IgnoreTest(testId int) {
	b.testResults = append(b.testResults, api.TestResult{TestId: testId, Ignored: true})
}

// FinishTest implements gatherer.ResultGatherer.
func (b *Builder) FinishTest(testId int, outcome api.TestOutcome) {
	b.testResults = append(b.testResults, api.TestResult{TestId: testId, Outcome: &outcome})
}

// CompileError implements gatherer.ResultGatherer.
func (b *Builder) CompileError(msg string) {
	b.status = api.CompileFailed
	b.compileResult.Success = false
	b.errorMessage = &msg
	b.outcome = &api.Outcome{Code: api.CE, Test: 1}
	b.finish()
}

// InternalError implements gatherer.ResultGatherer.
func (b *Builder) InternalError(msg string) {
	b.status = api.InternalFail
	b.errorMessage = &msg
	b.finish()
}

// FinishNoError implements gatherer.ResultGatherer.
func (b *Builder) FinishNoError(outcome *api.Outcome) {
	b.outcome = outcome
	b.finish()
}

func (b *Builder) finish() {
	now := b.now()
	b.finished = &now
}

// Summary builds the api.Summary from gathered data.
func (b *Builder) Summary() api.Summary {
	start := b.started.Format(time.RFC3339)
	finish := start
	total := int64(0)
	if b.finished != nil {
		finish = b.finished.Format(time.RFC3339)
		total = b.finished.Sub(b.started).Milliseconds()
	}
	return api.Summary{
		SessionUuid: b.sessionUuid,
		Status:      b.status,
		Mode:        b.mode.String(),
		Limits:      b.limits,
		Compilation: b.compileResult,
		TestResults: b.testResults,
		Outcome:     b.outcome,
		ErrorMessage: func() *string {
			if b.errorMessage == nil {
				return nil
			}
			v := *b.errorMessage
			return &v
		}(),
		StartTime:   start,
		FinishTime:  finish,
		TotalTimeMs: total,
		SystemInfo: func() *string {
			if b.systemInfo == "" {
				return nil
			}
			v := b.systemInfo
			return &v
		}(),
	}
}
