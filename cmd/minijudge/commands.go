package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/compiler"
	"github.com/programme-lv/minijudge/internal/gatherer/termgath"
	"github.com/programme-lv/minijudge/internal/health"
	"github.com/programme-lv/minijudge/internal/reportfile"
	"github.com/programme-lv/minijudge/internal/xdg"
	"github.com/urfave/cli/v3"
)

func healthAction(ctx context.Context, cmd *cli.Command, dirs *xdg.XDGDirs) error {
	rows := []health.Row{health.CheckSampler()}

	rules, path, err := compiler.LoadDefault(cmd.String("compilers"), dirs)
	if err != nil {
		rows = append(rows, health.Row{Unit: "compilers", Status: health.Failure, Message: err.Error()})
	} else {
		rows = append(rows, health.Row{Unit: "compilers", Message: path})
		rows = append(rows, health.CheckRules(rules, nil)...)
	}

	health.Print(os.Stdout, rows)
	if health.Worst(rows) == health.Failure {
		return cli.Exit("", 1)
	}
	return nil
}

func showAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return exitError(fmt.Errorf("%w: expected REPORT", errUsage))
	}
	var report api.Report
	if err := reportfile.Read(cmd.Args().First(), &report); err != nil {
		return exitError(err)
	}
	printReport(os.Stdout, report)
	return nil
}

func printReport(w io.Writer, report api.Report) {
	for i, t := range report.TestData {
		termgath.CodeColor(t.Code).Fprintf(w, "#%-3d %-2s %6d ms %8d KB\n", i+1, t.Code, t.TimeMs, t.MemoryKiB)
	}
	if report.Outcome != nil {
		termgath.CodeColor(report.Outcome.Code).Fprintln(w, termgath.OutcomeLine(*report.Outcome))
		return
	}
	passed := 0
	for _, t := range report.TestData {
		if t.Code == api.OK {
			passed++
		}
	}
	fmt.Fprintf(w, ">>> %d/%d tests passed\n", passed, len(report.TestData))
}
