// Package behave loads judging scenarios from TOML files and lays them out
// on disk as a submission, a checker and a test directory.
package behave

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/compiler"
	"github.com/programme-lv/minijudge/internal/corpus"
	"github.com/programme-lv/minijudge/internal/judge"
)

// ExactChecker accepts output that is byte-identical to the answer.
const ExactChecker = "#!/bin/sh\ncmp -s \"$2\" \"$3\" && exit 0\nexit 1\n"

// SpecTest is a single test case in the behaviour file
type SpecTest struct {
	In  string `toml:"in"`
	Ans string `toml:"ans"`
}

// SpecLanguage describes language commands in the behaviour file
type SpecLanguage struct {
	// Either reference a predefined language by id, or provide fields inline.
	LangID         string `toml:"lang_id"`
	CodeFname      string `toml:"code_fname"`
	Options        string `toml:"options"`
	ExecutableFile string `toml:"executable_file"`
	Runtime        string `toml:"runtime"`
}

// SpecRequest represents a request block inside a scenario entry
type SpecRequest struct {
	Code       string       `toml:"code"`
	Checker    string       `toml:"checker"`
	Mode       string       `toml:"mode"`
	InputFile  string       `toml:"input_file"`
	OutputFile string       `toml:"output_file"`
	Tests      []SpecTest   `toml:"tests"`
	Language   SpecLanguage `toml:"language"`
	Limits     api.Limits   `toml:"limits"`
}

// SpecExpect describes the expected report
type SpecExpect struct {
	Verdicts []api.Verdict `toml:"verdicts"`
	Outcome  *api.Outcome  `toml:"outcome"`
	// Error names the expected failure class instead of a report.
	Error string `toml:"error"`
}

type specSuite struct {
	Description string      `toml:"description"`
	Request     SpecRequest `toml:"request"`
	Expect      SpecExpect  `toml:"expect"`
}

type specRoot struct {
	Suites []specSuite `toml:"scenarios"`
	// Optional registry of languages available for reference via lang_id
	Languages []struct {
		ID             string `toml:"id"`
		CodeFname      string `toml:"code_fname"`
		Options        string `toml:"options"`
		ExecutableFile string `toml:"executable_file"`
		Runtime        string `toml:"runtime"`
	} `toml:"languages"`
}

// Case is a runnable scenario converted from TOML
type Case struct {
	Name    string
	Request SpecRequest
	Mode    api.Mode
	Rule    compiler.Rule
	Expect  SpecExpect
}

// Parse reads a behaviour TOML file and converts it to runnable cases
func Parse(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read behaviour file: %w", err)
	}
	var root specRoot
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	langByID := make(map[string]SpecLanguage)
	for _, l := range root.Languages {
		if l.ID == "" {
			continue
		}
		langByID[l.ID] = SpecLanguage{
			CodeFname:      l.CodeFname,
			Options:        l.Options,
			ExecutableFile: l.ExecutableFile,
			Runtime:        l.Runtime,
		}
	}

	cases := make([]Case, 0, len(root.Suites))
	for _, suite := range root.Suites {
		req := suite.Request

		// registry entry first, inline fields override it
		var eff SpecLanguage
		if req.Language.LangID != "" {
			base, ok := langByID[req.Language.LangID]
			if !ok {
				return nil, fmt.Errorf("unknown language id: %s", req.Language.LangID)
			}
			eff = base
		}
		if req.Language.CodeFname != "" {
			eff.CodeFname = req.Language.CodeFname
		}
		if req.Language.Options != "" {
			eff.Options = req.Language.Options
		}
		if req.Language.ExecutableFile != "" {
			eff.ExecutableFile = req.Language.ExecutableFile
		}
		if req.Language.Runtime != "" {
			eff.Runtime = req.Language.Runtime
		}
		if eff.CodeFname == "" || filepath.Ext(eff.CodeFname) == "" {
			return nil, fmt.Errorf("scenario %q: code_fname with an extension is required", suite.Description)
		}

		mode, err := api.ParseMode(req.Mode)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", suite.Description, err)
		}
		if req.Limits.TimeMs == 0 {
			req.Limits.TimeMs = api.DefaultTimeLimitMs
		}
		if req.Limits.MemoryKiB == 0 {
			req.Limits.MemoryKiB = 256 * 1024
		}
		if req.Checker == "" {
			req.Checker = ExactChecker
		}
		req.Language = eff

		cases = append(cases, Case{
			Name:    suite.Description,
			Request: req,
			Mode:    mode,
			Rule: compiler.Rule{
				Name:           "scenario",
				Extensions:     []string{filepath.Ext(eff.CodeFname)},
				Options:        eff.Options,
				ExecutableFile: eff.ExecutableFile,
				Runtime:        eff.Runtime,
			},
			Expect: suite.Expect,
		})
	}
	return cases, nil
}

// Materialize writes the scenario's files below dir and returns the session
// configuration and compiler rules that judge them.
func (c Case) Materialize(dir string) (judge.Config, compiler.Rules, error) {
	subDir := filepath.Join(dir, "submission")
	testDir := filepath.Join(dir, "tests")
	for _, d := range []string{subDir, testDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return judge.Config{}, nil, err
		}
	}

	source := filepath.Join(subDir, c.Request.Language.CodeFname)
	checker := filepath.Join(dir, "checker")
	files := map[string]string{
		source:  c.Request.Code,
		checker: c.Request.Checker,
	}
	for i, t := range c.Request.Tests {
		name := fmt.Sprint(i + 1)
		files[filepath.Join(testDir, name)] = t.In
		files[filepath.Join(testDir, name+corpus.DefaultAnswerSuffix)] = t.Ans
	}
	var errs []error
	for path, content := range files {
		errs = append(errs, os.WriteFile(path, []byte(content), 0755))
	}
	if err := errors.Join(errs...); err != nil {
		return judge.Config{}, nil, fmt.Errorf("failed to write scenario files: %w", err)
	}

	cfg := judge.Config{
		Source:     source,
		Checker:    checker,
		TestDir:    testDir,
		Limits:     c.Request.Limits,
		Mode:       c.Mode,
		InputFile:  c.Request.InputFile,
		OutputFile: c.Request.OutputFile,
	}
	return cfg, compiler.Rules{c.Rule}, nil
}
