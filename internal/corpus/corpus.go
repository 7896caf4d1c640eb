// Package corpus discovers test cases in a directory. A test is an input
// file whose name has no extension together with an answer file named
// after it plus a fixed suffix.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/maruel/natural"
)

const DefaultAnswerSuffix = ".a"

var ErrNotDirectory = errors.New("test path is not a directory")

// Test is one discovered test case. ID is its 1-based position in natural order.
type Test struct {
	ID         int
	Name       string
	InputPath  string
	AnswerPath string
}

// Discover lists the tests in dir ordered naturally by name, so "2" comes
// before "10". An empty suffix means DefaultAnswerSuffix.
func Discover(dir, answerSuffix string) ([]Test, error) {
	if answerSuffix == "" {
		answerSuffix = DefaultAnswerSuffix
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve test directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat test directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read test directory: %w", err)
	}

	inputs := mapset.NewThreadUnsafeSet[string]()
	answers := mapset.NewThreadUnsafeSet[string]()
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if base, ok := strings.CutSuffix(name, answerSuffix); ok && base != "" {
			answers.Add(base)
		}
		if !strings.Contains(name, ".") {
			inputs.Add(name)
		}
	}

	names := inputs.Intersect(answers).ToSlice()
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return strings.Compare(a, b)
		}
	})

	tests := make([]Test, len(names))
	for i, name := range names {
		tests[i] = Test{
			ID:         i + 1,
			Name:       name,
			InputPath:  filepath.Join(dir, name),
			AnswerPath: filepath.Join(dir, name+answerSuffix),
		}
	}
	return tests, nil
}
