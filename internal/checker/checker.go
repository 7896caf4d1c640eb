// Package checker runs a testlib-style checker over a contestant's output.
//
// A checker is invoked as `<checker> <input> <output> <answer>` and reports
// through its exit code: 0 accepted, 1 wrong answer, 2 presentation error.
package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"

	"github.com/programme-lv/minijudge/api"
)

var ErrCheckerMisbehaved = errors.New("checker misbehaved")

// MisbehaviorError is returned when the checker exits with a code outside
// 0..2 or is killed by a signal. It aborts the whole session.
type MisbehaviorError struct {
	ExitCode int
	Stderr   string
}

func (e *MisbehaviorError) Error() string {
	if e.ExitCode < 0 {
		return "checker was terminated by a signal"
	}
	return fmt.Sprintf("checker exited with unexpected code %d", e.ExitCode)
}

func (e *MisbehaviorError) Unwrap() error {
	return ErrCheckerMisbehaved
}

// Invoker holds the command prefix that launches a prepared checker.
type Invoker struct {
	Argv   []string
	Logger *slog.Logger
}

func NewInvoker(argv []string, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{Argv: argv, Logger: logger}
}

// Check runs the checker to completion and maps its exit code to a verdict.
func (c *Invoker) Check(ctx context.Context, input, output, answer string) (api.Verdict, error) {
	if len(c.Argv) == 0 {
		return "", errors.New("checker command is empty")
	}

	args := append(slices.Clone(c.Argv[1:]), input, output, answer)
	cmd := exec.CommandContext(ctx, c.Argv[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("failed to run checker: %w", err)
		}
	}

	code := cmd.ProcessState.ExitCode()
	c.Logger.Debug("checker finished",
		slog.String("output", output),
		slog.Int("exit", code),
		slog.String("stderr", stderr.String()))

	switch code {
	case 0:
		return api.OK, nil
	case 1:
		return api.WA, nil
	case 2:
		return api.PE, nil
	default:
		return "", &MisbehaviorError{ExitCode: code, Stderr: stderr.String()}
	}
}
