// pkg/archive/reader_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: real temp files
// PURPOSE: Test archive enumeration, content streams and handle isolation

package archive_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/selfunzip/pkg/archive"
	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var modTime = time.Date(2002, 11, 5, 14, 30, 10, 0, time.UTC)

func buildFixture(t *testing.T) string {
	t.Helper()
	return testutil.NewZipBuilder().
		Dir("jshortcut-0_4/").
		File("jshortcut-0_4/README.txt", "read me", modTime).
		File("jshortcut-0_4/lib/jshortcut.jar", "jar bytes", modTime).
		Write(t, t.TempDir(), "jshortcut-0_4.zip")
}

func collect(t *testing.T, r *archive.Reader) []archive.Entry {
	t.Helper()
	var entries []archive.Entry
	for {
		e, err := r.Next()
		if err == io.EOF {
			return entries
		}
		require.NoError(t, err)
		entries = append(entries, e)
	}
}

func TestOpenAndEnumerate(t *testing.T) {
	r, err := archive.Open(buildFixture(t))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 3, r.Len())

	entries := collect(t, r)
	require.Len(t, entries, 3)

	assert.Equal(t, "jshortcut-0_4/", entries[0].Path)
	assert.True(t, entries[0].IsDir)

	assert.Equal(t, "jshortcut-0_4/README.txt", entries[1].Path)
	assert.False(t, entries[1].IsDir)
	assert.Equal(t, uint64(len("read me")), entries[1].Size)
	assert.True(t, entries[1].ModTime.Equal(modTime), "got %v", entries[1].ModTime)
}

func TestNextIsSinglePass(t *testing.T) {
	r, err := archive.Open(buildFixture(t))
	require.NoError(t, err)
	defer r.Close()

	assert.Len(t, collect(t, r), 3)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestOpenEntryContent(t *testing.T) {
	r, err := archive.Open(buildFixture(t))
	require.NoError(t, err)
	defer r.Close()

	entry, ok := r.Lookup("jshortcut-0_4/lib/jshortcut.jar")
	require.True(t, ok)

	rc, err := r.Open(entry)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(data))
}

func TestOpenEntryErrors(t *testing.T) {
	r, err := archive.Open(buildFixture(t))
	require.NoError(t, err)
	defer r.Close()

	t.Run("directory entry", func(t *testing.T) {
		dir, ok := r.Lookup("jshortcut-0_4/")
		require.True(t, ok)
		_, err := r.Open(dir)
		assert.True(t, errors.IsErrorCode(err, errors.ErrEntryRead))
	})

	t.Run("absent entry", func(t *testing.T) {
		_, err := r.Open(archive.Entry{Path: "missing.txt"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrEntryRead))
	})
}

func TestOpenFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := archive.Open(filepath.Join(t.TempDir(), "nope.zip"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveOpen))
	})

	t.Run("not an archive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.zip")
		require.NoError(t, os.WriteFile(path, []byte("this is not a zip"), 0644))
		_, err := archive.Open(path)
		assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveOpen))
	})
}

func TestArchiveWithExecutablePrefix(t *testing.T) {
	path := testutil.NewZipBuilder().
		Prefix([]byte("#!/bin/sh\nexit 0\n")).
		File("payload.txt", "payload", modTime).
		Write(t, t.TempDir(), "installer")

	r, err := archive.Open(path)
	require.NoError(t, err)
	defer r.Close()

	entry, ok := r.Lookup("payload.txt")
	require.True(t, ok)
	rc, err := r.Open(entry)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCloseAfterPartialReadLeavesOtherHandlesUsable(t *testing.T) {
	path := buildFixture(t)

	first, err := archive.Open(path)
	require.NoError(t, err)
	second, err := archive.Open(path)
	require.NoError(t, err)
	defer second.Close()

	entry, _ := first.Lookup("jshortcut-0_4/README.txt")
	rc, err := first.Open(entry)
	require.NoError(t, err)
	buf := make([]byte, 2)
	_, err = rc.Read(buf)
	require.NoError(t, err)
	require.NoError(t, first.Close())
	require.NoError(t, first.Close())

	_, err = first.Next()
	assert.Error(t, err)

	entry2, ok := second.Lookup("jshortcut-0_4/README.txt")
	require.True(t, ok)
	rc2, err := second.Open(entry2)
	require.NoError(t, err)
	defer rc2.Close()
	data, err := io.ReadAll(rc2)
	require.NoError(t, err)
	assert.Equal(t, "read me", string(data))
}

func TestDOSOnlyTimestampIsLocal(t *testing.T) {
	testutil.SetLocalZone(t, time.FixedZone("UTC-4", -4*60*60))

	wall := time.Date(2004, 5, 6, 7, 8, 8, 0, time.UTC)
	path := testutil.NewZipBuilder().
		DOSFile("jshortcut-0_4/README.txt", "read me", wall).
		Write(t, t.TempDir(), "jshortcut-0_4.jar")

	r, err := archive.Open(path)
	require.NoError(t, err)
	defer r.Close()

	entry, err := r.Next()
	require.NoError(t, err)
	want := time.Date(2004, 5, 6, 7, 8, 8, 0, time.Local)
	assert.True(t, entry.ModTime.Equal(want), "got %v, want %v", entry.ModTime, want)
	assert.Equal(t, time.Local, entry.ModTime.Location())
}

func TestExtendedTimestampIsKept(t *testing.T) {
	testutil.SetLocalZone(t, time.FixedZone("UTC-4", -4*60*60))

	r, err := archive.Open(buildFixture(t))
	require.NoError(t, err)
	defer r.Close()

	entry, ok := r.Lookup("jshortcut-0_4/README.txt")
	require.True(t, ok)
	assert.True(t, entry.ModTime.Equal(modTime), "got %v", entry.ModTime)
}
