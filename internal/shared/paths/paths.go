package paths

import (
	"os"
	"path/filepath"
)

const (
	defaultDataDir   = "./data"
	defaultConfigDir = "./config"
)

// DataDir returns the directory holding mutable state (the local database).
func DataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return defaultDataDir
}

// ConfigDir returns the directory holding the static game resources
// (cards-config.json, coins-config.json, roulettes-config.json).
func ConfigDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return defaultConfigDir
}

func EnsureDataDirs() error {
	return os.MkdirAll(DataDir(), 0o755)
}

func DBPath() string {
	return filepath.Join(DataDir(), "local.db")
}

func ConfigPath(name string) string {
	return filepath.Join(ConfigDir(), name)
}
