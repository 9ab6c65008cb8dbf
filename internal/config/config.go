// Package config resolves the data directory and file locations.
package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultDataDir is used when nothing else names a data directory.
	DefaultDataDir = "data"

	// EnvDataDir overrides the global config's data_dir.
	EnvDataDir = "HATVONI_DATA_DIR"

	ProjectsFile = "projects.json"
	TasksFile    = "tasks.json"
	TeamFile     = "team.json"
	CacheDir     = "cache"
	IndexFile    = "index.db"
)

// ProjectsPath returns the path to projects.json in a data directory.
func ProjectsPath(dataDir string) string {
	return filepath.Join(dataDir, ProjectsFile)
}

// TasksPath returns the path to tasks.json in a data directory.
func TasksPath(dataDir string) string {
	return filepath.Join(dataDir, TasksFile)
}

// TeamPath returns the path to team.json in a data directory.
func TeamPath(dataDir string) string {
	return filepath.Join(dataDir, TeamFile)
}

// IndexPath returns the path to the report index database.
func IndexPath(dataDir string) string {
	return filepath.Join(dataDir, CacheDir, IndexFile)
}

// ResolveDataDir picks the data directory: the flag value if set, then
// $HATVONI_DATA_DIR, then data_dir from the global config, then "data".
// The result has ~ expanded.
func ResolveDataDir(flagValue string) (string, error) {
	if flagValue != "" {
		return ExpandPath(flagValue), nil
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return ExpandPath(env), nil
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	return DefaultDataDir, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
