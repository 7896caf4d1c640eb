package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/checker"
	"github.com/programme-lv/minijudge/internal/compiler"
	"github.com/programme-lv/minijudge/internal/gatherer"
	"github.com/programme-lv/minijudge/internal/gatherer/natsgath"
	"github.com/programme-lv/minijudge/internal/gatherer/respbuilder"
	"github.com/programme-lv/minijudge/internal/gatherer/sqsgath"
	"github.com/programme-lv/minijudge/internal/gatherer/termgath"
	"github.com/programme-lv/minijudge/internal/judge"
	"github.com/programme-lv/minijudge/internal/reportfile"
	"github.com/programme-lv/minijudge/internal/xdg"
	"github.com/urfave/cli/v3"
	"golang.org/x/sys/unix"
)

func judgeAction(ctx context.Context, cmd *cli.Command, dirs *xdg.XDGDirs) error {
	if cmd.Args().Len() != 3 {
		return exitError(fmt.Errorf("%w: expected FILE CHECKER TEST_DIR, got %d arguments", errUsage, cmd.Args().Len()))
	}
	logger := slog.Default()

	rules, rulesPath, err := compiler.LoadDefault(cmd.String("compilers"), dirs)
	if err != nil {
		return exitError(fmt.Errorf("%w: %w", errConfig, err))
	}
	logger.Debug("loaded compilers", "path", rulesPath, "count", len(rules))

	mode, err := api.ParseMode(cmd.String("mode"))
	if err != nil {
		return exitError(fmt.Errorf("%w: %w", errUsage, err))
	}
	if cmd.Bool("ioi") {
		mode = api.IOI
	}
	args := cmd.Args()
	cfg := judge.Config{
		Source:  args.Get(0),
		Checker: args.Get(1),
		TestDir: args.Get(2),
		Limits: api.Limits{
			TimeMs:    cmd.Int64("time-limit"),
			MemoryKiB: cmd.Int64("memory-limit"),
		},
		Mode:         mode,
		InputFile:    cmd.String("input-file"),
		OutputFile:   cmd.String("output-file"),
		AnswerSuffix: cmd.String("answer-suffix"),
		Compiler:     cmd.String("compiler"),
		SystemInfo:   systemInfo(),
	}
	if err := validate(cfg, cmd.String("out"), cmd.String("summary")); err != nil {
		return exitError(err)
	}
	out, summaryPath := cmd.String("out"), cmd.String("summary")

	sessionUuid := uuid.NewString()
	gatherers, cleanup, err := newGatherers(ctx, cmd, sessionUuid, logger)
	if err != nil {
		return exitError(err)
	}
	defer cleanup()
	builder := respbuilder.New(sessionUuid)
	gatherers = append(gatherers, builder)

	cacheDir := filepath.Join(dirs.AppCacheDir(xdg.AppName), "checkers")
	if err := dirs.EnsureDir(cacheDir); err != nil {
		return exitError(fmt.Errorf("failed to create checker cache: %w", err))
	}
	comp := compiler.New(logger)

	session, err := judge.NewSession(cfg, judge.Deps{
		Rules:    rules,
		Compiler: comp,
		Checkers: checker.NewPreparer(rules, comp, cacheDir, logger),
		Gatherer: gatherer.Multi(gatherers),
		Logger:   logger,
	})
	if err != nil {
		return exitError(err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to clean up session", "error", err)
		}
	}()
	logger.Debug("judging", "session", sessionUuid, "source", cfg.Source, "mode", mode)

	report, runErr := session.Run(ctx)
	if summaryPath != "" {
		if err := reportfile.Write(summaryPath, builder.Summary()); err != nil {
			logger.Error("failed to write summary", "path", summaryPath, "error", err)
		}
	}
	if runErr != nil {
		return exitError(runErr)
	}

	if out == "" {
		err = reportfile.Encode(os.Stdout, report, false)
	} else {
		err = reportfile.Write(out, report)
	}
	if err != nil {
		return exitError(fmt.Errorf("failed to write report: %w", err))
	}
	return nil
}

// validate reports missing inputs before unusable output paths and those
// before bad limits.
func validate(cfg judge.Config, outputs ...string) error {
	limits := cfg.Limits
	cfg.Limits = api.Limits{TimeMs: 1, MemoryKiB: 1}
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, p := range outputs {
		if p == "" {
			continue
		}
		if err := reportfile.Check(p); err != nil {
			return err
		}
	}
	return limits.Validate()
}

func newGatherers(ctx context.Context, cmd *cli.Command, sessionUuid string, logger *slog.Logger) ([]gatherer.ResultGatherer, func(), error) {
	var res []gatherer.ResultGatherer
	cleanup := func() {}
	if !cmd.Bool("quiet") {
		res = append(res, termgath.New(os.Stderr))
	}

	if url := cmd.String("nats-url"); url != "" {
		nc, err := nats.Connect(url, nats.Name("minijudge"))
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to nats: %w", err)
		}
		cleanup = nc.Close
		res = append(res, natsgath.New(nc, sessionUuid, cmd.String("nats-subject"), logger))
	}

	if url := cmd.String("sqs-queue-url"); url != "" {
		g, err := sqsgath.New(ctx, sessionUuid, url, cmd.String("sqs-region"), logger)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		res = append(res, g)
	}
	return res, cleanup, nil
}

func systemInfo() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return fmt.Sprintf("%s %s %s",
		unix.ByteSliceToString(u.Sysname[:]),
		unix.ByteSliceToString(u.Release[:]),
		unix.ByteSliceToString(u.Machine[:]))
}

var (
	errUsage  = errors.New("invalid arguments")
	errConfig = errors.New("compiler configuration unavailable")
)

// exitCode maps fatal errors to the process exit status.
func exitCode(err error) int {
	switch {
	case errors.Is(err, judge.ErrMissingInput), errors.Is(err, errUsage):
		return 1
	case errors.Is(err, reportfile.ErrExists), errors.Is(err, reportfile.ErrIsDirectory):
		return 2
	case errors.Is(err, api.ErrNonPositiveLimits):
		return 3
	case errors.Is(err, compiler.ErrNoCompiler):
		return 4
	case errors.Is(err, checker.ErrCheckerMisbehaved), errors.Is(err, checker.ErrCheckerCompile):
		return 5
	case errors.Is(err, context.Canceled):
		return 130
	case errors.Is(err, errConfig), errors.Is(err, compiler.ErrConfigNotFound), errors.Is(err, compiler.ErrInvalidRules):
		return 255
	default:
		return 6
	}
}

func exitError(err error) error {
	return cli.Exit(fmt.Sprintf("%s: %s %v", filepath.Base(os.Args[0]), color.RedString("error:"), err), exitCode(err))
}
