package options

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetDefaultConfigDirectory returns the per-user directory searched for
// h5shell.yaml.
func GetDefaultConfigDirectory() string {
	if runtime.GOOS == "windows" {
		return os.ExpandEnv("${APPDATA}/h5shell")
	} else if runtime.GOOS == "darwin" {
		return os.ExpandEnv("${HOME}/Library/Application Support/h5shell")
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "h5shell")
	}
	return os.ExpandEnv("${HOME}/.config/h5shell")
}
