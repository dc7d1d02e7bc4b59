package config

import (
	"os"
	"path/filepath"
)

// EnvConfig names a config file when --config is not given.
const EnvConfig = "RVFX_CONFIG"

// Discover returns the config file to load. Priority: the explicit path,
// $RVFX_CONFIG, ~/.config/rvfx/config.yaml. An empty result means no file
// was found and defaults apply.
func Discover(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	if p := userConfigPath(); p != "" && fileExists(p) {
		return p
	}
	return ""
}

func userConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "rvfx", "config.yaml")
}

func defaultJournalPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "rvfx", "journal.db")
	}
	return filepath.Join(os.TempDir(), "rvfx", "journal.db")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
