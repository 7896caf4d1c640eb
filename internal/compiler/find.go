package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/programme-lv/minijudge/internal/xdg"
)

var ErrConfigNotFound = errors.New("compiler configuration not found")

// Candidates lists where compiler rules are looked for, in order, when no
// path was given explicitly.
func Candidates(dirs *xdg.XDGDirs) []string {
	return []string{
		"compilers.toml",
		"compilers.json",
		"compilers.yaml",
		filepath.Join(dirs.AppConfigDir(xdg.AppName), "compilers.toml"),
		filepath.Join(dirs.AppConfigDir(xdg.AppName), "compilers.json"),
	}
}

// Find returns explicit when set, otherwise the first existing candidate.
func Find(explicit string, dirs *xdg.XDGDirs) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, explicit)
		}
		return explicit, nil
	}
	for _, path := range Candidates(dirs) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// LoadDefault finds and loads compiler rules.
func LoadDefault(explicit string, dirs *xdg.XDGDirs) (Rules, string, error) {
	path, err := Find(explicit, dirs)
	if err != nil {
		return nil, "", err
	}
	rules, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return rules, path, nil
}
