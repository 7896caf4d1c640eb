// Package environment loads optional dotenv files into the process
// environment before flags are parsed, so MINIJUDGE_* variables can live in
// a file.
package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/programme-lv/minijudge/internal/xdg"
)

// DotEnvFiles lists the files Load reads, in order of precedence. Variables
// already set in the environment are never overridden.
func DotEnvFiles(dirs *xdg.XDGDirs) []string {
	return []string{
		".env",
		filepath.Join(dirs.AppConfigDir(xdg.AppName), "env"),
	}
}

// Load reads every existing file from DotEnvFiles and returns the ones it
// loaded. Missing files are skipped; malformed ones are an error.
func Load(dirs *xdg.XDGDirs) ([]string, error) {
	var loaded []string
	for _, path := range DotEnvFiles(dirs) {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("failed to load %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}
