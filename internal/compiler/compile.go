package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/programme-lv/minijudge/api"
)

// Prepared is a source file turned into something that can be launched.
type Prepared struct {
	// Ready is false when compilation failed; Argv is then empty.
	Ready bool
	Argv  []string

	// Artifact is the compiled executable, empty for interpreted languages.
	Artifact string
	// Log is the outcome of the compile command, nil when nothing was compiled.
	Log *api.RuntimeData
}

type Compiler struct {
	Logger *slog.Logger
}

func New(logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{Logger: logger}
}

// Compile prepares source with rule. The compile command runs in the source's
// directory. stem replaces {name}; when empty it defaults to source without
// its extension. A compiler that exits non-zero or leaves no executable
// behind yields a Prepared that is not Ready. A compiler that cannot be
// started at all is reported as an error.
func (c *Compiler) Compile(ctx context.Context, rule Rule, source, stem string) (Prepared, error) {
	t, err := newTarget(rule, source, stem)
	if err != nil {
		return Prepared{}, err
	}

	if rule.Interpreted() {
		argv, err := expand(rule.Runtime, t.subst)
		if err != nil {
			return Prepared{}, fmt.Errorf("invalid runtime of %s: %w", rule.Name, err)
		}
		return Prepared{Ready: true, Argv: argv}, nil
	}

	compileArgv, err := expand(rule.Options, t.subst)
	if err != nil {
		return Prepared{}, fmt.Errorf("invalid options of %s: %w", rule.Name, err)
	}

	c.Logger.Debug("compiling",
		slog.String("compiler", rule.Name),
		slog.String("source", t.source),
		slog.Any("argv", compileArgv))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, compileArgv[0], compileArgv[1:]...)
	cmd.Dir = t.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	wall := time.Since(start)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Prepared{}, fmt.Errorf("failed to run compiler %s: %w", rule.Name, err)
		}
	}

	log := &api.RuntimeData{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		ExitCode:   int64(cmd.ProcessState.ExitCode()),
		WallMillis: wall.Milliseconds(),
	}
	if log.ExitCode != 0 {
		return Prepared{Log: log}, nil
	}

	res, ok, err := t.built()
	if err != nil {
		return Prepared{}, err
	}
	if !ok {
		c.Logger.Debug("compiler produced no executable", slog.String("path", t.artifact))
	}
	res.Log = log
	return res, nil
}

// Existing returns the Prepared for an already compiled source, or false
// when its executable is missing.
func (c *Compiler) Existing(rule Rule, source, stem string) (Prepared, bool, error) {
	if rule.Interpreted() {
		return Prepared{}, false, nil
	}
	t, err := newTarget(rule, source, stem)
	if err != nil {
		return Prepared{}, false, err
	}
	return t.built()
}

type target struct {
	rule     Rule
	source   string
	dir      string
	artifact string
	subst    *strings.Replacer
}

func newTarget(rule Rule, source, stem string) (*target, error) {
	source, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}
	if stem == "" {
		stem = strings.TrimSuffix(source, filepath.Ext(source))
	}
	t := &target{
		rule:   rule,
		source: source,
		dir:    filepath.Dir(source),
		subst:  strings.NewReplacer("{file}", source, "{name}", stem),
	}
	if !rule.Interpreted() {
		t.artifact = t.subst.Replace(rule.ExecutableFile)
		if !filepath.IsAbs(t.artifact) {
			t.artifact = filepath.Join(t.dir, t.artifact)
		}
	}
	return t, nil
}

func (t *target) built() (Prepared, bool, error) {
	if _, err := os.Stat(t.artifact); err != nil {
		return Prepared{}, false, nil
	}
	res := Prepared{Ready: true, Artifact: t.artifact, Argv: []string{t.artifact}}
	if t.rule.Runtime != "" {
		argv, err := expand(t.rule.Runtime, t.subst)
		if err != nil {
			return Prepared{}, false, fmt.Errorf("invalid runtime of %s: %w", t.rule.Name, err)
		}
		res.Argv = argv
	}
	return res, true, nil
}

// expand splits a command template shell-style and substitutes
// placeholders inside each word, so paths with spaces stay one argument.
func expand(template string, subst *strings.Replacer) ([]string, error) {
	words, err := shlex.Split(template)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errors.New("empty command")
	}
	for i, w := range words {
		words[i] = subst.Replace(w)
	}
	return words, nil
}
