package native

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/selfunzip/pkg/archive"
	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/filesystem"
	"github.com/arthur-debert/selfunzip/pkg/logging"
	"github.com/arthur-debert/selfunzip/pkg/naming"
	"github.com/arthur-debert/selfunzip/pkg/paths"
	"github.com/arthur-debert/selfunzip/pkg/types"
)

// Options configures a Bootstrapper.
type Options struct {
	Library string
	EnvVar  string
	TempDir string

	FS       types.FS
	Loader   Loader
	Registry *CleanupRegistry
	Embedded fs.FS

	// Setenv defaults to os.Setenv, Getenv to os.Getenv.
	Setenv func(key, value string) error
	Getenv func(string) string
	GOOS   string
}

// Bootstrapper materializes the native payload from an archive.
type Bootstrapper struct {
	opts Options
}

// NewBootstrapper fills unset options with their defaults.
func NewBootstrapper(opts Options) *Bootstrapper {
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Loader == nil {
		opts.Loader = NewSystemLoader()
	}
	if opts.Registry == nil {
		opts.Registry = ExitCleanup
	}
	if opts.Setenv == nil {
		opts.Setenv = os.Setenv
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	return &Bootstrapper{opts: opts}
}

// Payload is a materialized temp library. Release deletes it.
type Payload struct {
	// Path is the temp file written by Setup, empty when nothing was written.
	Path string
	// LibraryPath is where the library was resolved from.
	LibraryPath string

	fs       types.FS
	registry *CleanupRegistry
	once     sync.Once
	err      error
}

// Release deletes the temp file and unregisters it. It is safe to call on a
// nil payload and more than once.
func (p *Payload) Release() error {
	if p == nil || p.Path == "" {
		return nil
	}
	p.once.Do(func() {
		p.registry.Forget(p.Path)
		if err := p.fs.Remove(p.Path); err != nil && !os.IsNotExist(err) {
			p.err = err
		}
	})
	return p.err
}

// EntryName is the archive path of the native library for d.
func EntryName(d naming.Derivation, library string) string {
	return path.Join(d.RootDirName(), library)
}

// Setup copies the library out of the archive, points the override variable
// at the temp dir and loads it. A returned payload must be released even when
// err is non-nil. ErrNativeUnavailable errors are recoverable; ErrBootstrap
// errors are not.
func (b *Bootstrapper) Setup(d naming.Derivation, r *archive.Reader) (*Payload, error) {
	logger := logging.GetLogger("native.bootstrap")
	o := b.opts

	entryName := EntryName(d, o.Library)
	entry, ok := r.Lookup(entryName)
	if !ok {
		return nil, errors.Newf(errors.ErrNativeUnavailable, "archive has no %s", entryName).
			WithDetail("entry", entryName)
	}

	src, err := r.Open(entry)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNativeUnavailable, "cannot read %s", entryName)
	}
	defer src.Close()

	dest := filepath.Join(o.TempDir, o.Library)
	payload := &Payload{Path: dest, fs: o.FS, registry: o.Registry}
	o.Registry.Add(dest)

	if err := copyTo(o.FS, dest, src); err != nil {
		return payload, errors.Wrapf(err, errors.ErrBootstrap, "cannot write native library to %s", dest).
			WithDetail("path", dest)
	}
	logger.Debug().Str("path", dest).Msg("Native library extracted")

	if err := o.Setenv(o.EnvVar, o.TempDir); err != nil {
		return payload, errors.Wrapf(err, errors.ErrBootstrap, "cannot set %s", o.EnvVar)
	}

	libPath, err := ResolveNativeLibrary(SearchOptions{
		Library:     o.Library,
		EnvVar:      o.EnvVar,
		ProgramPath: paths.ProgramPath(),
		Embedded:    o.Embedded,
		TempDir:     o.TempDir,
		FS:          o.FS,
		Getenv:      o.Getenv,
		GOOS:        o.GOOS,
	})
	if err != nil {
		return payload, err
	}
	payload.LibraryPath = libPath

	if err := o.Loader.Load(libPath); err != nil {
		return payload, errors.Wrapf(err, errors.ErrNativeUnavailable, "cannot load %s", libPath).
			WithDetail("path", libPath)
	}

	logger.Info().Str("library", libPath).Msg("Native library loaded")
	return payload, nil
}
