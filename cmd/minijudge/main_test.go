package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fatih/color"
	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/checker"
	"github.com/programme-lv/minijudge/internal/compiler"
	"github.com/programme-lv/minijudge/internal/judge"
	"github.com/programme-lv/minijudge/internal/reportfile"
	"github.com/programme-lv/minijudge/internal/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: source", judge.ErrMissingInput), 1},
		{errUsage, 1},
		{fmt.Errorf("check: %w", reportfile.ErrExists), 2},
		{reportfile.ErrIsDirectory, 2},
		{fmt.Errorf("%w: time=0ms", api.ErrNonPositiveLimits), 3},
		{fmt.Errorf("%w: extension .rb", compiler.ErrNoCompiler), 4},
		{&checker.MisbehaviorError{ExitCode: 3}, 5},
		{fmt.Errorf("%w: %w", errConfig, compiler.ErrConfigNotFound), 255},
		{fmt.Errorf("run: %w", context.Canceled), 130},
		{fmt.Errorf("disk full"), 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, exitCode(tt.err), tt.err.Error())
	}
}

type workspace struct {
	dirs      *xdg.XDGDirs
	compilers string
	source    string
	checker   string
	tests     string
}

func newWorkspace(t *testing.T, program string) workspace {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))

	w := workspace{
		dirs:      xdg.NewXDGDirs(),
		compilers: filepath.Join(root, "compilers.toml"),
		source:    filepath.Join(root, "sol.sh"),
		checker:   filepath.Join(root, "checker"),
		tests:     filepath.Join(root, "tests"),
	}
	require.NoError(t, os.Mkdir(w.tests, 0755))
	files := map[string]string{
		w.compilers: "[[compilers]]\nname = \"sh\"\nextensions = [\".sh\"]\nruntime = \"sh {file}\"\n",
		w.source:    program,
		w.checker:   "#!/bin/sh\ncmp -s \"$2\" \"$3\"\n",
		filepath.Join(w.tests, "1"):   "1\n",
		filepath.Join(w.tests, "1.a"): "1\n",
		filepath.Join(w.tests, "2"):   "2\n",
		filepath.Join(w.tests, "2.a"): "3\n",
	}
	for path, content := range files {
		require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	}
	return w
}

func (w workspace) args(extra ...string) []string {
	args := append([]string{"minijudge", "--quiet", "--compilers", w.compilers}, extra...)
	return append(args, w.source, w.checker, w.tests)
}

func TestJudgeWritesReport(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs procfs")
	}
	w := newWorkspace(t, "cat\n")
	out := filepath.Join(t.TempDir(), "report.json.zst")
	summary := filepath.Join(t.TempDir(), "summary.json")

	err := newCommand(w.dirs).Run(context.Background(), w.args("--ioi", "-o", out, "--summary", summary))
	require.NoError(t, err)

	var report api.Report
	require.NoError(t, reportfile.Read(out, &report))
	require.Len(t, report.TestData, 2)
	assert.Equal(t, api.OK, report.TestData[0].Code)
	assert.Equal(t, api.WA, report.TestData[1].Code)
	assert.Nil(t, report.Outcome)

	var s api.Summary
	require.NoError(t, reportfile.Read(summary, &s))
	assert.Equal(t, api.Finished, s.Status)
	assert.Len(t, s.TestResults, 2)
}

func TestValidateOrder(t *testing.T) {
	w := newWorkspace(t, "cat\n")
	existing := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(existing, nil, 0644))

	cfg := judge.Config{
		Source:  filepath.Join(t.TempDir(), "missing.sh"),
		Checker: w.checker,
		TestDir: w.tests,
	}
	assert.ErrorIs(t, validate(cfg, existing), judge.ErrMissingInput)

	cfg.Source = w.source
	assert.ErrorIs(t, validate(cfg, existing), reportfile.ErrExists)
	assert.ErrorIs(t, validate(cfg, "", filepath.Dir(existing)), reportfile.ErrIsDirectory)
	assert.ErrorIs(t, validate(cfg), api.ErrNonPositiveLimits)

	cfg.Limits = api.Limits{TimeMs: 1000, MemoryKiB: 1024}
	assert.NoError(t, validate(cfg, filepath.Join(t.TempDir(), "new.json")))
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, api.Report{
		TestData: []api.TestOutcome{{Code: api.OK, TimeMs: 12, MemoryKiB: 900}, {Code: api.WA}},
		Outcome:  &api.Outcome{Code: api.WA, Test: 2},
	})
	assert.Equal(t, "#1   OK     12 ms      900 KB\n#2   WA      0 ms        0 KB\n>>> WA, test 2\n", buf.String())

	buf.Reset()
	printReport(&buf, api.Report{TestData: []api.TestOutcome{{Code: api.OK}, {Code: api.TL}}})
	assert.Contains(t, buf.String(), ">>> 1/2 tests passed")
}
