package native

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/logging"
	"github.com/arthur-debert/selfunzip/pkg/types"
)

// SearchOptions configures ResolveNativeLibrary.
type SearchOptions struct {
	// Library is the file name searched for, e.g. "jshortcut.dll".
	Library string
	// EnvVar names the override variable, e.g. "JSHORTCUT_HOME".
	EnvVar string
	// ProgramPath lists program-path directories in search order.
	ProgramPath []string
	// Embedded, when set, is searched last. A hit is copied to TempDir.
	Embedded fs.FS
	TempDir  string

	FS     types.FS
	Getenv func(string) string
	GOOS   string
}

type strategy struct {
	name string
	find func(SearchOptions) (string, bool, error)
}

var strategies = []strategy{
	{"override", findOverride},
	{"library-path", findLibraryPath},
	{"program-path", findProgramPath},
	{"embedded", findEmbedded},
}

// ResolveNativeLibrary returns the path of the first library found. When no
// strategy finds it the error code is ErrNativeUnavailable.
func ResolveNativeLibrary(opts SearchOptions) (string, error) {
	logger := logging.GetLogger("native.search")

	for _, s := range strategies {
		path, ok, err := s.find(opts)
		if err != nil {
			return "", err
		}
		if ok {
			logger.Debug().Str("strategy", s.name).Str("path", path).Msg("Native library found")
			return path, nil
		}
		logger.Debug().Str("strategy", s.name).Msg("Native library candidate rejected")
	}

	return "", errors.Newf(errors.ErrNativeUnavailable, "native library %s not found", opts.Library).
		WithDetail("library", opts.Library)
}

func (o SearchOptions) getenv(key string) string {
	if o.Getenv == nil {
		return os.Getenv(key)
	}
	return o.Getenv(key)
}

func (o SearchOptions) goos() string {
	if o.GOOS == "" {
		return runtime.GOOS
	}
	return o.GOOS
}

func (o SearchOptions) exists(path string) bool {
	info, err := o.FS.Stat(path)
	return err == nil && !info.IsDir()
}

func (o SearchOptions) searchDirs(dirs []string) (string, bool) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, o.Library)
		if o.exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func findOverride(o SearchOptions) (string, bool, error) {
	if o.EnvVar == "" {
		return "", false, nil
	}
	dir := o.getenv(o.EnvVar)
	if dir == "" {
		return "", false, nil
	}
	path, ok := o.searchDirs([]string{dir})
	return path, ok, nil
}

func findLibraryPath(o SearchOptions) (string, bool, error) {
	var vars []string
	switch o.goos() {
	case "windows":
		vars = []string{"PATH"}
	case "darwin":
		vars = []string{"DYLD_LIBRARY_PATH", "LD_LIBRARY_PATH"}
	default:
		vars = []string{"LD_LIBRARY_PATH"}
	}

	var dirs []string
	for _, v := range vars {
		dirs = append(dirs, filepath.SplitList(o.getenv(v))...)
	}
	path, ok := o.searchDirs(dirs)
	return path, ok, nil
}

func findProgramPath(o SearchOptions) (string, bool, error) {
	path, ok := o.searchDirs(o.ProgramPath)
	return path, ok, nil
}

func findEmbedded(o SearchOptions) (string, bool, error) {
	if o.Embedded == nil {
		return "", false, nil
	}
	src, err := o.Embedded.Open(o.Library)
	if err != nil {
		return "", false, nil
	}
	defer src.Close()

	dest := filepath.Join(o.TempDir, o.Library)
	if err := copyTo(o.FS, dest, src); err != nil {
		return "", false, errors.Wrapf(err, errors.ErrBootstrap, "cannot materialize embedded %s", o.Library).
			WithDetail("path", dest)
	}
	return dest, true, nil
}

func copyTo(fsys types.FS, dest string, src io.Reader) error {
	if err := fsys.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	out, err := fsys.Create(dest, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
