package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/selfunzip/pkg/errors"
)

// Symbolic directory kinds understood by Lookup.
const (
	KindDesktop        = "desktop"
	KindPersonal       = "personal"
	KindProgramFiles   = "program_files"
	KindPrograms       = "programs"
	KindCommonDesktop  = "common_desktopdirectory"
	KindCommonPrograms = "common_programs"
)

const defaultWindowsProgramDir = `C:\Program Files`

// Locator resolves well-known OS directories.
type Locator interface {
	// Lookup maps a symbolic name to an absolute path. Unknown names fail
	// with ErrUnknownDirectoryKind.
	Lookup(kind string) (string, error)

	// Home returns the user's home directory.
	Home() (string, error)
}

// SystemLocator resolves directories for the running OS.
type SystemLocator struct {
	// GOOS defaults to runtime.GOOS.
	GOOS string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// NewSystemLocator returns a locator for the running platform.
func NewSystemLocator() *SystemLocator {
	return &SystemLocator{GOOS: runtime.GOOS, Getenv: os.Getenv}
}

func (l *SystemLocator) goos() string {
	if l.GOOS == "" {
		return runtime.GOOS
	}
	return l.GOOS
}

func (l *SystemLocator) getenv(key string) string {
	if l.Getenv == nil {
		return os.Getenv(key)
	}
	return l.Getenv(key)
}

func (l *SystemLocator) windows() bool {
	return l.goos() == "windows"
}

// Home returns USERPROFILE on Windows when set, otherwise the OS home.
func (l *SystemLocator) Home() (string, error) {
	if l.windows() {
		if home := l.getenv("USERPROFILE"); home != "" {
			return home, nil
		}
	}
	if home := l.getenv("HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot determine home directory")
	}
	return home, nil
}

// Lookup implements Locator. Names are matched case-insensitively.
func (l *SystemLocator) Lookup(kind string) (string, error) {
	switch strings.ToLower(kind) {
	case KindDesktop:
		return l.firstNonEmpty(xdg.UserDirs.Desktop, l.homeJoin("Desktop"))
	case KindPersonal:
		return l.firstNonEmpty(xdg.UserDirs.Documents, l.homeJoin("Documents"))
	case KindProgramFiles:
		if l.windows() {
			return l.firstNonEmpty(l.getenv("ProgramFiles"), defaultWindowsProgramDir)
		}
		return "/opt", nil
	case KindPrograms:
		if l.windows() {
			appData := l.getenv("APPDATA")
			if appData != "" {
				return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs"), nil
			}
		}
		if len(xdg.ApplicationDirs) > 0 {
			return xdg.ApplicationDirs[0], nil
		}
		return l.firstNonEmpty(filepath.Join(xdg.DataHome, "applications"))
	case KindCommonDesktop:
		if l.windows() {
			if public := l.getenv("PUBLIC"); public != "" {
				return filepath.Join(public, "Desktop"), nil
			}
		}
		return l.Lookup(KindDesktop)
	case KindCommonPrograms:
		if l.windows() {
			if data := l.getenv("ProgramData"); data != "" {
				return filepath.Join(data, "Microsoft", "Windows", "Start Menu", "Programs"), nil
			}
		}
		if n := len(xdg.ApplicationDirs); n > 0 {
			return xdg.ApplicationDirs[n-1], nil
		}
		return l.Lookup(KindPrograms)
	default:
		return "", errors.Newf(errors.ErrUnknownDirectoryKind, "unknown directory kind %q", kind).
			WithDetail("kind", kind)
	}
}

func (l *SystemLocator) homeJoin(name string) string {
	home, err := l.Home()
	if err != nil {
		return ""
	}
	return filepath.Join(home, name)
}

func (l *SystemLocator) firstNonEmpty(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return c, nil
		}
	}
	return "", errors.New(errors.ErrInternal, "no directory candidate available")
}

// DefaultInstallDir is the recommended install directory: the program
// files directory on Windows, the home directory elsewhere.
func DefaultInstallDir(l Locator, goos string) (string, error) {
	if goos == "windows" {
		return l.Lookup(KindProgramFiles)
	}
	return l.Home()
}
