// Package paths provides centralized path handling for the installer.
// It resolves the application's own XDG locations and implements the
// directory-lookup collaborator that maps symbolic names such as
// "program_files" or "desktop" to absolute paths.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for selfunzip
	EnvConfigDir = "SELFUNZIP_CONFIG_DIR"

	// EnvProgramPath lists extra directories searched for native payloads
	EnvProgramPath = "SELFUNZIP_PROGRAM_PATH"
)

const (
	// AppDirName is the directory name for selfunzip-specific files
	AppDirName = "selfunzip"

	// ConfigFileName is the name of the optional user configuration file
	ConfigFileName = "config.toml"
)

// ConfigDir returns the directory holding the user configuration file.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the path of the user configuration file, which may
// not exist.
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// ProgramPath returns the directories of the running program's own path:
// the executable's directory followed by SELFUNZIP_PROGRAM_PATH entries.
func ProgramPath() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	for _, dir := range filepath.SplitList(os.Getenv(EnvProgramPath)) {
		if dir == "" {
			continue
		}
		// A listed archive file contributes the directory containing it.
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		dirs = append(dirs, ExpandHome(dir))
	}
	return dirs
}
