// pkg/native/native_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero memory filesystem, zip fixtures
// PURPOSE: Test library search order, payload materialization and cleanup

package native

import (
	stderrors "errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/selfunzip/pkg/archive"
	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/filesystem"
	"github.com/arthur-debert/selfunzip/pkg/naming"
	"github.com/arthur-debert/selfunzip/pkg/testutil"
	"github.com/arthur-debert/selfunzip/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lib = "jshortcut.dll"

type env map[string]string

func (e env) get(k string) string { return e[k] }
func (e env) set(k, v string) error {
	e[k] = v
	return nil
}

func writeLib(t *testing.T, fs types.FS, dir string) string {
	t.Helper()
	require.NoError(t, fs.MkdirAll(dir, 0755))
	p := filepath.Join(dir, lib)
	require.NoError(t, fs.WriteFile(p, []byte("MZ"), 0644))
	return p
}

func TestResolveOrder(t *testing.T) {
	fs := filesystem.NewMemory()
	overridePath := writeLib(t, fs, "/override")
	libPath := writeLib(t, fs, "/libs")
	progPath := writeLib(t, fs, "/prog")

	base := SearchOptions{Library: lib, EnvVar: "JSHORTCUT_HOME", FS: fs, GOOS: "linux", TempDir: "/tmp"}

	t.Run("override wins", func(t *testing.T) {
		o := base
		o.Getenv = env{"JSHORTCUT_HOME": "/override", "LD_LIBRARY_PATH": "/libs"}.get
		o.ProgramPath = []string{"/prog"}
		got, err := ResolveNativeLibrary(o)
		require.NoError(t, err)
		assert.Equal(t, overridePath, got)
	})

	t.Run("library path before program path", func(t *testing.T) {
		o := base
		o.Getenv = env{"LD_LIBRARY_PATH": "/nothing" + string(filepath.ListSeparator) + "/libs"}.get
		o.ProgramPath = []string{"/prog"}
		got, err := ResolveNativeLibrary(o)
		require.NoError(t, err)
		assert.Equal(t, libPath, got)
	})

	t.Run("override without library falls through", func(t *testing.T) {
		o := base
		o.Getenv = env{"JSHORTCUT_HOME": "/empty"}.get
		o.ProgramPath = []string{"/prog"}
		got, err := ResolveNativeLibrary(o)
		require.NoError(t, err)
		assert.Equal(t, progPath, got)
	})

	t.Run("windows searches PATH", func(t *testing.T) {
		o := base
		o.GOOS = "windows"
		o.Getenv = env{"PATH": "/libs", "LD_LIBRARY_PATH": "/prog"}.get
		got, err := ResolveNativeLibrary(o)
		require.NoError(t, err)
		assert.Equal(t, libPath, got)
	})

	t.Run("embedded fallback is materialized", func(t *testing.T) {
		o := base
		o.Getenv = env{}.get
		o.Embedded = fstest.MapFS{lib: {Data: []byte("embedded")}}
		got, err := ResolveNativeLibrary(o)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp", lib), got)
		data, err := fs.ReadFile(got)
		require.NoError(t, err)
		assert.Equal(t, "embedded", string(data))
	})

	t.Run("nothing found", func(t *testing.T) {
		o := base
		o.Getenv = env{}.get
		_, err := ResolveNativeLibrary(o)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNativeUnavailable))
	})
}

func TestCleanupRegistry(t *testing.T) {
	var removed []string
	c := NewCleanupRegistry()
	c.remove = func(p string) error {
		removed = append(removed, p)
		return nil
	}

	c.Add("/tmp/a")
	c.Add("/tmp/b")
	c.Forget("/tmp/b")
	assert.Equal(t, 1, c.Pending())

	c.Run()
	assert.Equal(t, []string{"/tmp/a"}, removed)
	assert.Equal(t, 0, c.Pending())

	c.Run()
	assert.Len(t, removed, 1, "run is not repeated for already deleted paths")
}

func archiveWithLibrary(t *testing.T, withLib bool) (*archive.Reader, naming.Derivation) {
	t.Helper()
	b := testutil.NewZipBuilder().File("jshortcut-0_4/README.txt", "hi", testutil.DefaultModTime)
	if withLib {
		b.File("jshortcut-0_4/jshortcut.dll", "MZ native", testutil.DefaultModTime)
	}
	path := b.Write(t, t.TempDir(), "jshortcut-0_4.zip")
	r, err := archive.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, naming.Default().Derive(path)
}

func newTestBootstrapper(fs types.FS, e env, loader Loader) (*Bootstrapper, *CleanupRegistry) {
	reg := NewCleanupRegistry()
	return NewBootstrapper(Options{
		Library:  lib,
		EnvVar:   "JSHORTCUT_HOME",
		TempDir:  "/tmp/selfunzip",
		FS:       fs,
		Loader:   loader,
		Registry: reg,
		Setenv:   e.set,
		Getenv:   e.get,
		GOOS:     "windows",
	}), reg
}

func TestSetup(t *testing.T) {
	fs := filesystem.NewMemory()
	r, d := archiveWithLibrary(t, true)
	e := env{}
	var loaded string
	b, reg := newTestBootstrapper(fs, e, LoaderFunc(func(p string) error {
		loaded = p
		return nil
	}))

	payload, err := b.Setup(d, r)
	require.NoError(t, err)
	require.NotNil(t, payload)

	want := filepath.Join("/tmp/selfunzip", lib)
	assert.Equal(t, want, payload.Path)
	assert.Equal(t, want, payload.LibraryPath)
	assert.Equal(t, want, loaded)
	assert.Equal(t, "/tmp/selfunzip", e["JSHORTCUT_HOME"])
	assert.Equal(t, 1, reg.Pending())

	data, err := fs.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "MZ native", string(data))

	require.NoError(t, payload.Release())
	require.NoError(t, payload.Release())
	_, err = fs.Stat(want)
	assert.Error(t, err)
	assert.Equal(t, 0, reg.Pending())
}

func TestSetupMissingEntryIsRecoverable(t *testing.T) {
	r, d := archiveWithLibrary(t, false)
	b, reg := newTestBootstrapper(filesystem.NewMemory(), env{}, nil)

	payload, err := b.Setup(d, r)
	assert.Nil(t, payload)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNativeUnavailable))
	assert.Equal(t, 0, reg.Pending())
}

func TestSetupLoaderFailureStillReturnsPayload(t *testing.T) {
	fs := filesystem.NewMemory()
	r, d := archiveWithLibrary(t, true)
	b, _ := newTestBootstrapper(fs, env{}, LoaderFunc(func(string) error {
		return stderrors.New("bad image")
	}))

	payload, err := b.Setup(d, r)
	require.NotNil(t, payload)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNativeUnavailable))
	require.NoError(t, payload.Release())
}

func TestReleaseNilPayload(t *testing.T) {
	var p *Payload
	assert.NoError(t, p.Release())
}
