// Package judge runs a submission against a test directory and folds the
// per-test verdicts into a report under the ACM or IOI policy.
package judge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/checker"
	"github.com/programme-lv/minijudge/internal/compiler"
	"github.com/programme-lv/minijudge/internal/corpus"
	"github.com/programme-lv/minijudge/internal/gatherer"
	"github.com/programme-lv/minijudge/internal/monitor"
	"golang.org/x/sync/errgroup"
)

var ErrMissingInput = errors.New("required input is missing")

// previewBytes bounds how much of a test's input and answer is attached to
// ReachTest events.
const previewBytes = 4096

type Config struct {
	Source  string
	Checker string
	TestDir string

	Limits api.Limits
	Mode   api.Mode

	InputFile    string
	OutputFile   string
	AnswerSuffix string
	// Compiler forces a compiler rule by name instead of matching the extension.
	Compiler   string
	SystemInfo string
}

// Validate checks that the inputs exist and the limits are positive, in
// that order.
func (c Config) Validate() error {
	for _, p := range []struct{ what, path string }{
		{"source", c.Source},
		{"checker", c.Checker},
	} {
		info, err := os.Stat(p.path)
		if err != nil || !info.Mode().IsRegular() {
			return fmt.Errorf("%w: %s %q", ErrMissingInput, p.what, p.path)
		}
	}
	if info, err := os.Stat(c.TestDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: test directory %q", ErrMissingInput, c.TestDir)
	}
	return c.Limits.Validate()
}

type Deps struct {
	Rules    compiler.Rules
	Compiler *compiler.Compiler
	Checkers *checker.Preparer
	Sampler  monitor.Sampler
	Gatherer gatherer.ResultGatherer
	Logger   *slog.Logger
}

type state int

const (
	created state = iota
	compiled
	running
	finished
)

// Session owns every temporary artifact of one judging run. Close must be
// called once the session is no longer needed, whatever Run returned.
type Session struct {
	cfg  Config
	deps Deps
	rule compiler.Rule

	source  string
	workDir string
	tmpDir  string

	state    state
	artifact string

	closeOnce sync.Once
	closeErr  error
}

// NewSession validates cfg and reserves a temp directory. All configuration
// errors are reported here, before anything runs.
func NewSession(cfg Config, deps Deps) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rule, err := deps.Rules.Select(cfg.Compiler, cfg.Source)
	if err != nil {
		return nil, err
	}

	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = gatherer.Nop{}
	}
	if deps.Compiler == nil {
		deps.Compiler = compiler.New(deps.Logger)
	}
	if deps.Sampler == nil {
		sampler, err := monitor.NewProcSampler()
		if err != nil {
			return nil, err
		}
		deps.Sampler = sampler
	}

	source, err := filepath.Abs(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}
	tmpDir, err := os.MkdirTemp("", "minijudge-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &Session{
		cfg:     cfg,
		deps:    deps,
		rule:    rule,
		source:  source,
		workDir: filepath.Dir(source),
		tmpDir:  tmpDir,
	}, nil
}

// Run compiles the submission and judges it. Verdicts, including a compile
// error, are part of the returned report; an error is returned only when the
// session could not complete.
func (s *Session) Run(ctx context.Context) (api.Report, error) {
	if s.state != created {
		return api.Report{}, errors.New("session has already run")
	}
	log, gath := s.deps.Logger, s.deps.Gatherer

	gath.StartJob(s.cfg.SystemInfo, s.cfg.Mode, s.cfg.Limits)

	var (
		prep  compiler.Prepared
		chk   Checker
		tests []corpus.Test
	)
	// The tasks do not cancel each other: a compile error outranks a broken
	// checker or test directory, so compilation always runs to completion.
	var (
		eg         errgroup.Group
		compileErr error
		prepareErr error
	)
	eg.Go(func() error {
		gath.StartCompile()
		var err error
		prep, err = s.deps.Compiler.Compile(ctx, s.rule, s.source, "")
		if err != nil {
			compileErr = fmt.Errorf("failed to compile submission: %w", err)
		}
		return compileErr
	})
	eg.Go(func() error {
		var err error
		chk, err = s.prepareChecker(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		tests, err = corpus.Discover(s.cfg.TestDir, s.cfg.AnswerSuffix)
		return err
	})
	prepareErr = eg.Wait()
	s.artifact = prep.Artifact
	if compileErr != nil {
		return s.fail(compileErr)
	}
	s.state = compiled
	gath.FinishCompile(prep.Log)

	if !prep.Ready {
		s.state = finished
		if prepareErr != nil {
			log.Debug("ignoring preparation error after compile failure", slog.Any("error", prepareErr))
		}
		msg := "compilation failed"
		if prep.Log != nil && prep.Log.Stderr != "" {
			msg = prep.Log.Stderr
		}
		log.Info("compilation failed", slog.String("source", s.source))
		gath.CompileError(msg)
		return api.Report{Outcome: &api.Outcome{Code: api.CE, Test: 1}}, nil
	}
	if prepareErr != nil {
		return s.fail(prepareErr)
	}

	mon := monitor.New(s.cfg.Limits, s.deps.Sampler, log)
	runner := &Runner{
		Argv:       prep.Argv,
		WorkDir:    s.workDir,
		TmpDir:     s.tmpDir,
		InputFile:  s.cfg.InputFile,
		OutputFile: s.cfg.OutputFile,
		Limits:     s.cfg.Limits,
		Monitor:    mon,
		Checker:    chk,
		Logger:     log,
	}

	s.state = running
	report := api.Report{TestData: make([]api.TestOutcome, 0, len(tests))}
	for i, t := range tests {
		gath.ReachTest(t.ID, preview(t.InputPath), preview(t.AnswerPath))

		outcome, err := runner.Run(ctx, t)
		if err != nil {
			return s.fail(err)
		}
		report.TestData = append(report.TestData, outcome)
		gath.FinishTest(t.ID, outcome)
		log.Debug("test finished",
			slog.Int("test", t.ID),
			slog.String("verdict", string(outcome.Code)),
			slog.Int64("time_ms", outcome.TimeMs),
			slog.Int64("memory_kib", outcome.MemoryKiB))

		if s.cfg.Mode == api.ACM && outcome.Code != api.OK {
			report.Outcome = &api.Outcome{Code: outcome.Code, Test: t.ID}
			for _, skipped := range tests[i+1:] {
				gath.IgnoreTest(skipped.ID)
			}
			break
		}
	}
	if s.cfg.Mode == api.ACM && report.Outcome == nil {
		report.Outcome = &api.Outcome{Code: api.OK, Test: api.NoFailingTest}
	}

	s.state = finished
	gath.FinishNoError(report.Outcome)
	return report, nil
}

func (s *Session) fail(err error) (api.Report, error) {
	s.state = finished
	s.deps.Gatherer.InternalError(err.Error())
	return api.Report{}, err
}

func (s *Session) prepareChecker(ctx context.Context) (Checker, error) {
	if s.deps.Checkers == nil {
		path, err := filepath.Abs(s.cfg.Checker)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve checker path: %w", err)
		}
		return checker.NewInvoker([]string{path}, s.deps.Logger), nil
	}
	inv, err := s.deps.Checkers.Prepare(ctx, s.cfg.Checker)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare checker: %w", err)
	}
	return inv, nil
}

// Close removes the compiled executable, the fixed-name input and output
// files and the temp directory. Only the first call does any work.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		remove := func(path string) {
			if path == "" {
				return
			}
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				errs = append(errs, err)
			}
		}
		remove(s.artifact)
		if s.cfg.InputFile != "" {
			remove(filepath.Join(s.workDir, s.cfg.InputFile))
		}
		if s.cfg.OutputFile != "" {
			remove(filepath.Join(s.workDir, s.cfg.OutputFile))
		}
		if err := os.RemoveAll(s.tmpDir); err != nil {
			errs = append(errs, err)
		}
		s.state = finished
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

func preview(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	b, _ := io.ReadAll(io.LimitReader(f, previewBytes))
	return b
}
