// Package xdg resolves per-user configuration and cache locations following
// the XDG Base Directory layout.
package xdg

import (
	"os"
	"path/filepath"
)

const AppName = "minijudge"

// XDGDirs provides access to XDG Base Directory Specification compliant paths
type XDGDirs struct {
	configHome string
	cacheHome  string
}

// NewXDGDirs reads XDG_CONFIG_HOME and XDG_CACHE_HOME, falling back to
// ~/.config and ~/.cache.
func NewXDGDirs() *XDGDirs {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
		if homeDir == "" {
			homeDir = os.TempDir()
		}
	}

	x := &XDGDirs{
		configHome: os.Getenv("XDG_CONFIG_HOME"),
		cacheHome:  os.Getenv("XDG_CACHE_HOME"),
	}
	if x.configHome == "" {
		x.configHome = filepath.Join(homeDir, ".config")
	}
	if x.cacheHome == "" {
		x.cacheHome = filepath.Join(homeDir, ".cache")
	}
	return x
}

func (x *XDGDirs) ConfigHome() string {
	return x.configHome
}

func (x *XDGDirs) CacheHome() string {
	return x.cacheHome
}

// AppConfigDir returns the application-specific config directory
func (x *XDGDirs) AppConfigDir(appName string) string {
	return filepath.Join(x.configHome, appName)
}

// AppCacheDir returns the application-specific cache directory
func (x *XDGDirs) AppCacheDir(appName string) string {
	return filepath.Join(x.cacheHome, appName)
}

// EnsureDir creates the directory with appropriate permissions if it doesn't exist
func (x *XDGDirs) EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
