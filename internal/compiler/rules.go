// Package compiler turns a submitted source file into a command line that
// runs it, compiling it first when its language requires that.
package compiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoCompiler   = errors.New("no compiler matches")
	ErrInvalidRules = errors.New("invalid compiler configuration")
)

// Rule describes how to build and run one language. Templates may contain
// {file} (absolute source path) and {name} (the same path without extension).
type Rule struct {
	Name       string   `toml:"name" json:"name" yaml:"name"`
	Extensions []string `toml:"extensions" json:"extensions" yaml:"extensions"`

	// Options is the compile command; empty means the language is interpreted.
	Options        string `toml:"options" json:"options,omitempty" yaml:"options"`
	ExecutableFile string `toml:"executable_file" json:"executable_file,omitempty" yaml:"executable_file"`
	Runtime        string `toml:"runtime" json:"runtime,omitempty" yaml:"runtime"`
}

func (r Rule) Interpreted() bool {
	return r.Options == ""
}

func (r Rule) matches(ext string) bool {
	for _, e := range r.Extensions {
		if normalizeExt(e) == ext {
			return true
		}
	}
	return false
}

func (r Rule) validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: rule without a name", ErrInvalidRules)
	}
	if len(r.Extensions) == 0 {
		return fmt.Errorf("%w: %s has no extensions", ErrInvalidRules, r.Name)
	}
	if r.Interpreted() && r.Runtime == "" {
		return fmt.Errorf("%w: interpreted %s needs a runtime", ErrInvalidRules, r.Name)
	}
	if !r.Interpreted() && r.ExecutableFile == "" {
		return fmt.Errorf("%w: compiled %s needs an executable_file", ErrInvalidRules, r.Name)
	}
	return nil
}

// Rules are evaluated in order; the first rule matching an extension wins.
type Rules []Rule

func (rs Rules) ByName(name string) (Rule, error) {
	for _, r := range rs {
		if r.Name == name {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("%w: unknown compiler %q", ErrNoCompiler, name)
}

func (rs Rules) ForFile(path string) (Rule, error) {
	ext := normalizeExt(filepath.Ext(path))
	if ext == "" {
		return Rule{}, fmt.Errorf("%w: %s has no extension", ErrNoCompiler, filepath.Base(path))
	}
	for _, r := range rs {
		if r.matches(ext) {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("%w: extension %s", ErrNoCompiler, ext)
}

// Select returns the named rule, or the rule matching path when name is empty.
func (rs Rules) Select(name, path string) (Rule, error) {
	if name != "" {
		return rs.ByName(name)
	}
	return rs.ForFile(path)
}

func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

type rulesFile struct {
	Compilers []Rule `toml:"compilers" json:"compilers" yaml:"compilers"`
}

// Load reads compiler rules from a TOML, YAML or JSON file.
func Load(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compiler configuration: %w", err)
	}

	var rules Rules
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var f rulesFile
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		rules = f.Compilers
	case ".yaml", ".yml":
		var f rulesFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		rules = f.Compilers
	case ".json":
		rules, err = parseJSON(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported file type %s", ErrInvalidRules, filepath.Ext(path))
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no compilers defined in %s", ErrInvalidRules, path)
	}
	for _, r := range rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

// parseJSON accepts {"compilers": [...]} as well as an object keyed by
// compiler name. Keyed objects have no order, so they are sorted by name.
// Their templates use the positional {0}, which stands for the source in
// options and runtime and for the source without extension in
// executable_file.
func parseJSON(data []byte) (Rules, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if list, ok := raw["compilers"]; ok && bytes.HasPrefix(bytes.TrimSpace(list), []byte("[")) {
		var rules Rules
		if err := json.Unmarshal(list, &rules); err != nil {
			return nil, fmt.Errorf("failed to parse JSON compiler list: %w", err)
		}
		return rules, nil
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	slices.Sort(names)

	rules := make(Rules, 0, len(names))
	for _, name := range names {
		var r Rule
		if err := json.Unmarshal(raw[name], &r); err != nil {
			return nil, fmt.Errorf("failed to parse compiler %s: %w", name, err)
		}
		r.Name = name
		r.Options = strings.ReplaceAll(r.Options, "{0}", "{file}")
		r.Runtime = strings.ReplaceAll(r.Runtime, "{0}", "{file}")
		r.ExecutableFile = strings.ReplaceAll(r.ExecutableFile, "{0}", "{name}")
		rules = append(rules, r)
	}
	return rules, nil
}
