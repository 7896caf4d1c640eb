// Package gatherer defines the event stream a judge session reports to.
package gatherer

import "github.com/programme-lv/minijudge/api"

// ResultGatherer receives session events in order: StartJob, StartCompile,
// FinishCompile, then ReachTest/FinishTest per executed test and IgnoreTest
// per skipped test, and finally exactly one of CompileError, InternalError
// or FinishNoError.
type ResultGatherer interface {
	StartJob(systemInfo string, mode api.Mode, limits api.Limits)

	StartCompile()
	FinishCompile(data *api.RuntimeData)

	ReachTest(testId int, input []byte, answer []byte)
	IgnoreTest(testId int)
	FinishTest(testId int, outcome api.TestOutcome)

	CompileError(msg string)
	InternalError(msg string)
	FinishNoError(outcome *api.Outcome)
}

// Multi forwards every event to each gatherer in order.
type Multi []ResultGatherer

var _ ResultGatherer = Multi(nil)

func (m Multi) StartJob(systemInfo string, mode api.Mode, limits api.Limits) {
	for _, g := range m {
		g.StartJob(systemInfo, mode, limits)
	}
}

func (m Multi) StartCompile() {
	for _, g := range m {
		g.StartCompile()
	}
}

func (m Multi) FinishCompile(data *api.RuntimeData) {
	for _, g := range m {
		g.FinishCompile(data)
	}
}

func (m Multi) ReachTest(testId int, input []byte, answer []byte) {
	for _, g := range m {
		g.ReachTest(testId, input, answer)
	}
}

func (m Multi) IgnoreTest(testId int) {
	for _, g := range m {
		g.IgnoreTest(testId)
	}
}

func (m Multi) FinishTest(testId int, outcome api.TestOutcome) {
	for _, g := range m {
		g.FinishTest(testId, outcome)
	}
}

func (m Multi) CompileError(msg string) {
	for _, g := range m {
		g.CompileError(msg)
	}
}

func (m Multi) InternalError(msg string) {
	for _, g := range m {
		g.InternalError(msg)
	}
}

func (m Multi) FinishNoError(outcome *api.Outcome) {
	for _, g := range m {
		g.FinishNoError(outcome)
	}
}

// Nop discards every event.
type Nop struct{}

var _ ResultGatherer = Nop{}

func (Nop) StartJob(string, api.Mode, api.Limits) {}
func (Nop) StartCompile()                         {}
func (Nop) FinishCompile(*api.RuntimeData)        {}
func (Nop) ReachTest(int, []byte, []byte)         {}
func (Nop) IgnoreTest(int)                        {}
func (Nop) FinishTest(int, api.TestOutcome)       {}
func (Nop) CompileError(string)                   {}
func (Nop) InternalError(string)                  {}
func (Nop) FinishNoError(*api.Outcome)            {}
