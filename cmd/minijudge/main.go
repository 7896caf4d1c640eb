package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/corpus"
	"github.com/programme-lv/minijudge/internal/environment"
	"github.com/programme-lv/minijudge/internal/xdg"
	"github.com/urfave/cli/v3"
)

func main() {
	dirs := xdg.NewXDGDirs()
	// .env has to be applied before flags read their environment sources
	loaded, envErr := environment.Load(dirs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newCommand(dirs)
	cmd.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		logger, err := newLogger(cmd.String("log-level"), cmd.Bool("verbose"))
		if err != nil {
			return ctx, cli.Exit(err.Error(), 1)
		}
		slog.SetDefault(logger)
		if envErr != nil {
			logger.Warn("failed to load env file", "error", envErr)
		}
		for _, f := range loaded {
			logger.Debug("loaded env file", "path", f)
		}
		return ctx, nil
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func newCommand(dirs *xdg.XDGDirs) *cli.Command {
	return &cli.Command{
		Name:      "minijudge",
		Usage:     "batch test ACM-ICPC and IOI solutions and produce JSON reports",
		ArgsUsage: "FILE CHECKER TEST_DIR",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "ioi",
				Usage:   "keep running after a failed test",
				Sources: cli.EnvVars("MINIJUDGE_IOI"),
			},
			&cli.StringFlag{
				Name:    "mode",
				Usage:   "execution mode, acm or ioi",
				Value:   api.ACM.String(),
				Sources: cli.EnvVars("MINIJUDGE_MODE"),
			},
			&cli.Int64Flag{
				Name:    "memory-limit",
				Aliases: []string{"m"},
				Usage:   "memory limit in kilobytes",
				Value:   api.DefaultMemoryLimitKiB,
				Sources: cli.EnvVars("MINIJUDGE_MEMORY_LIMIT"),
			},
			&cli.Int64Flag{
				Name:    "time-limit",
				Aliases: []string{"t"},
				Usage:   "time limit in milliseconds",
				Value:   api.DefaultTimeLimitMs,
				Sources: cli.EnvVars("MINIJUDGE_TIME_LIMIT"),
			},
			&cli.StringFlag{
				Name:  "input-file",
				Usage: "name of the file the program reads input from (default: stdin)",
			},
			&cli.StringFlag{
				Name:  "output-file",
				Usage: "name of the file the program writes output to (default: stdout)",
			},
			&cli.StringFlag{
				Name:    "compiler",
				Aliases: []string{"c"},
				Usage:   "compiler to use (guessed from the extension by default)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "path to the report file, .zst compresses it",
			},
			&cli.StringFlag{
				Name:    "summary",
				Usage:   "path to a detailed session summary",
				Sources: cli.EnvVars("MINIJUDGE_SUMMARY"),
			},
			&cli.StringFlag{
				Name:    "compilers",
				Usage:   "path to the compiler configuration",
				Sources: cli.EnvVars("MINIJUDGE_COMPILERS"),
			},
			&cli.StringFlag{
				Name:    "answer-suffix",
				Usage:   "suffix of reference answer files",
				Value:   corpus.DefaultAnswerSuffix,
				Sources: cli.EnvVars("MINIJUDGE_ANSWER_SUFFIX"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "do not print progress to stderr",
				Sources: cli.EnvVars("MINIJUDGE_QUIET"),
			},
			&cli.StringFlag{
				Name:    "nats-url",
				Usage:   "publish session events to this NATS server",
				Sources: cli.EnvVars("MINIJUDGE_NATS_URL", "NATS_URL"),
			},
			&cli.StringFlag{
				Name:    "nats-subject",
				Value:   "minijudge.events",
				Sources: cli.EnvVars("MINIJUDGE_NATS_SUBJECT"),
			},
			&cli.StringFlag{
				Name:    "sqs-queue-url",
				Usage:   "send session events to this SQS queue",
				Sources: cli.EnvVars("MINIJUDGE_SQS_QUEUE_URL", "RESPONSE_SQS_URL"),
			},
			&cli.StringFlag{
				Name:    "sqs-region",
				Sources: cli.EnvVars("MINIJUDGE_SQS_REGION", "AWS_REGION"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Sources: cli.EnvVars("MINIJUDGE_LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log at debug level",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return judgeAction(ctx, cmd, dirs)
		},
		Commands: []*cli.Command{
			{
				Name:  "health",
				Usage: "check that submissions can be judged on this host",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return healthAction(ctx, cmd, dirs)
				},
			},
			{
				Name:      "show",
				Usage:     "print a stored report",
				ArgsUsage: "REPORT",
				Action:    showAction,
			},
		},
	}
}

func newLogger(level string, verbose bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		NoColor:    color.NoColor,
	})), nil
}
