// Package termgath prints session events to a terminal.
package termgath

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/gatherer"
)

var (
	info  = color.New(color.FgCyan)
	faint = color.New(color.Faint)
	fail  = color.New(color.FgRed)
)

// CodeColor is the colour a verdict is printed in.
func CodeColor(code api.Verdict) *color.Color {
	switch code {
	case api.OK:
		return color.New(color.FgGreen)
	case api.TL, api.ML, api.IL:
		return color.New(color.FgMagenta)
	case api.PE:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// OutcomeLine formats a session outcome as ">>> WA, test 3".
func OutcomeLine(outcome api.Outcome) string {
	if outcome.Test > 0 {
		return fmt.Sprintf(">>> %s, test %d", outcome.Code, outcome.Test)
	}
	return fmt.Sprintf(">>> %s", outcome.Code)
}

type TerminalGatherer struct {
	StartedAt time.Time
	out       io.Writer

	executed int
	passed   int
}

var _ gatherer.ResultGatherer = (*TerminalGatherer)(nil)

func New(out io.Writer) *TerminalGatherer {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalGatherer{StartedAt: time.Now(), out: out}
}

func (t *TerminalGatherer) StartJob(systemInfo string, mode api.Mode, limits api.Limits) {
	t.StartedAt = time.Now()
	info.Fprintf(t.out, "Judging in %s mode (%d ms, %d KB).\n", mode, limits.TimeMs, limits.MemoryKiB)
	if systemInfo != "" {
		faint.Fprintln(t.out, systemInfo)
	}
}

func (t *TerminalGatherer) StartCompile() {
	info.Fprintln(t.out, "Preparing submission...")
}

func (t *TerminalGatherer) FinishCompile(data *api.RuntimeData) {
	if data == nil {
		return
	}
	info.Fprintf(t.out, "Compiler finished with code %d (%d ms).\n", data.ExitCode, data.WallMillis)
	if data.Stderr != "" {
		faint.Fprintln(t.out, gatherer.TrimToRect(data.Stderr, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth))
	}
}

func (t *TerminalGatherer) ReachTest(testId int, input []byte, answer []byte) {
	info.Fprintf(t.out, "\nRunning on test #%d...\n", testId)
}

func (t *TerminalGatherer) IgnoreTest(testId int) {
	faint.Fprintf(t.out, "Test #%d skipped.\n", testId)
}

func (t *TerminalGatherer) FinishTest(testId int, outcome api.TestOutcome) {
	t.executed++
	if outcome.Code == api.OK {
		t.passed++
	}
	CodeColor(outcome.Code).Fprintf(t.out, "%s (%d ms, %d KB).\n", describe(outcome.Code), outcome.TimeMs, outcome.MemoryKiB)
}

func (t *TerminalGatherer) CompileError(msg string) {
	fail.Fprintln(t.out, "Compilation error.")
	if msg != "" {
		faint.Fprintln(t.out, gatherer.TrimToRect(msg, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth))
	}
	CodeColor(api.CE).Fprintf(t.out, "\n%s\n", OutcomeLine(api.Outcome{Code: api.CE, Test: 1}))
}

func (t *TerminalGatherer) InternalError(msg string) {
	fail.Fprintf(t.out, "Internal error: %s\n", msg)
}

func (t *TerminalGatherer) FinishNoError(outcome *api.Outcome) {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	if outcome != nil {
		CodeColor(outcome.Code).Fprintf(t.out, "\n%s\n", OutcomeLine(*outcome))
	} else {
		info.Fprintf(t.out, "\n>>> %d/%d tests passed\n", t.passed, t.executed)
	}
	faint.Fprintf(t.out, "Finished in %s.\n", dur)
}

func describe(code api.Verdict) string {
	switch code {
	case api.OK:
		return "Accepted"
	case api.TL:
		return "Time limit exceeded"
	case api.ML:
		return "Memory limit exceeded"
	case api.IL:
		return "Idleness limit exceeded"
	case api.WA:
		return "Wrong answer"
	case api.PE:
		return "Presentation error"
	case api.RE:
		return "Runtime error"
	default:
		return string(code)
	}
}
