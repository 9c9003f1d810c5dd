package config

import (
	"os"
	"path/filepath"
)

// Paths contains the standard filesystem locations the CLI uses for its
// own state, rooted at ~/.tcore.
type Paths struct {
	// HomeDir is ~/.tcore.
	HomeDir string

	// ConfigFile is ~/.tcore/config.yaml.
	ConfigFile string

	// CacheDir is ~/.tcore/cache.
	CacheDir string
}

// DefaultPaths returns the default paths, rooted at the user's home
// directory.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	tcoreHome := filepath.Join(homeDir, ".tcore")
	return &Paths{
		HomeDir:    tcoreHome,
		ConfigFile: filepath.Join(tcoreHome, "config.yaml"),
		CacheDir:   filepath.Join(tcoreHome, "cache"),
	}, nil
}

// PathsFromEnv returns DefaultPaths with TCORE_CONFIG/TCORE_CACHE_DIR
// overrides applied, if set.
func PathsFromEnv() (*Paths, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	if configPath := os.Getenv("TCORE_CONFIG"); configPath != "" {
		paths.ConfigFile = configPath
	}
	if cacheDir := os.Getenv("TCORE_CACHE_DIR"); cacheDir != "" {
		paths.CacheDir = cacheDir
	}

	return paths, nil
}

// ExpandTilde expands a leading "~" to the user's home directory.
// "~user" forms and a mid-path "~" are left untouched.
func ExpandTilde(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] != '/' {
		return path
	}

	return filepath.Join(homeDir, path[2:])
}

// EnsureDir creates path (and any missing parents) with perm if it does
// not already exist.
func EnsureDir(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
