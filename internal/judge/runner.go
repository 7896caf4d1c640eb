package judge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/corpus"
	"github.com/programme-lv/minijudge/internal/monitor"
)

// Checker judges one produced output.
type Checker interface {
	Check(ctx context.Context, input, output, answer string) (api.Verdict, error)
}

// Runner executes a single test: it routes input and output, launches the
// submission under the monitor and hands a clean run to the checker.
type Runner struct {
	Argv    []string
	WorkDir string
	TmpDir  string

	// InputFile and OutputFile are fixed names inside WorkDir. Empty means
	// the standard stream is used instead.
	InputFile  string
	OutputFile string

	Limits  api.Limits
	Monitor *monitor.Monitor
	Checker Checker
	Logger  *slog.Logger
}

// Run returns the outcome of test t. An error means the session cannot
// continue: the submission could not be launched, the checker misbehaved or
// ctx was cancelled.
func (r *Runner) Run(ctx context.Context, t corpus.Test) (api.TestOutcome, error) {
	cmd := &monitor.Command{Args: r.Argv, Dir: r.WorkDir}

	if r.InputFile != "" {
		if err := copyFile(t.InputPath, filepath.Join(r.WorkDir, r.InputFile)); err != nil {
			return api.TestOutcome{}, fmt.Errorf("failed to place input of test %d: %w", t.ID, err)
		}
	} else {
		in, err := os.Open(t.InputPath)
		if err != nil {
			return api.TestOutcome{}, fmt.Errorf("failed to open input of test %d: %w", t.ID, err)
		}
		defer in.Close()
		cmd.Stdin = in
	}

	var outputPath string
	var out *os.File
	if r.OutputFile != "" {
		outputPath = filepath.Join(r.WorkDir, r.OutputFile)
		if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
			return api.TestOutcome{}, fmt.Errorf("failed to clear previous output: %w", err)
		}
	} else {
		outputPath = filepath.Join(r.TmpDir, "output")
		var err error
		out, err = os.Create(outputPath)
		if err != nil {
			return api.TestOutcome{}, fmt.Errorf("failed to create output of test %d: %w", t.ID, err)
		}
		defer out.Close()
		cmd.Stdout = out
	}

	if err := cmd.Start(); err != nil {
		return api.TestOutcome{}, fmt.Errorf("failed to launch submission: %w", err)
	}

	res, err := r.Monitor.Watch(ctx, cmd)
	if err != nil {
		_, _ = cmd.Wait()
		return api.TestOutcome{}, err
	}

	if res.Kind == monitor.Breach {
		_, _ = cmd.Wait()
		outcome := api.TestOutcome{Code: res.Verdict, TimeMs: res.ElapsedMs, MemoryKiB: res.MemoryKiB}
		switch res.Verdict {
		case api.TL, api.IL:
			outcome.TimeMs = r.Limits.TimeMs
		case api.ML:
			outcome.MemoryKiB = r.Limits.MemoryKiB
		}
		r.Logger.Debug("limit exceeded", slog.Int("test", t.ID), slog.String("verdict", string(outcome.Code)))
		return outcome, nil
	}

	code, err := cmd.Wait()
	if err != nil {
		return api.TestOutcome{}, fmt.Errorf("failed to wait for submission: %w", err)
	}
	outcome := api.TestOutcome{Code: api.OK, TimeMs: res.ElapsedMs, MemoryKiB: res.MemoryKiB}
	if code != 0 {
		outcome.Code = api.RE
		r.Logger.Debug("runtime error", slog.Int("test", t.ID), slog.Int("exit", code))
		return outcome, nil
	}

	if out != nil {
		if err := out.Close(); err != nil {
			return api.TestOutcome{}, fmt.Errorf("failed to close output of test %d: %w", t.ID, err)
		}
	}

	verdict, err := r.Checker.Check(ctx, t.InputPath, outputPath, t.AnswerPath)
	if err != nil {
		return api.TestOutcome{}, fmt.Errorf("test %d: %w", t.ID, err)
	}
	outcome.Code = verdict
	return outcome, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
