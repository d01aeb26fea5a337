package archive

import (
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/klauspost/compress/zip"
)

// Entry is one file or directory record in the archive.
type Entry struct {
	// Path is archive-relative and '/'-separated.
	Path    string
	IsDir   bool
	Size    uint64
	ModTime time.Time
	// Mode carries the permission bits recorded in the archive, if any.
	Mode fs.FileMode
}

// Reader is an open archive handle.
type Reader struct {
	path   string
	file   *os.File
	zr     *zip.Reader
	byName map[string]*zip.File
	cursor int
}

// Open opens the archive at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveOpen, "cannot open archive %s", path).
			WithDetail("path", path)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, errors.ErrArchiveOpen, "cannot stat archive %s", path).
			WithDetail("path", path)
	}

	// Unsafe entry names are rejected per entry at extraction time.
	zr, err := zip.NewReader(f, info.Size())
	if err != nil && err != zip.ErrInsecurePath {
		_ = f.Close()
		return nil, errors.Wrapf(err, errors.ErrArchiveOpen, "%s is not a readable archive", path).
			WithDetail("path", path)
	}

	r := &Reader{
		path:   path,
		file:   f,
		zr:     zr,
		byName: make(map[string]*zip.File, len(zr.File)),
	}
	for _, zf := range zr.File {
		if _, dup := r.byName[zf.Name]; !dup {
			r.byName[zf.Name] = zf
		}
	}
	return r, nil
}

// Path returns the path the archive was opened from.
func (r *Reader) Path() string {
	return r.path
}

// Len returns the number of records in the archive, directories included.
func (r *Reader) Len() int {
	return len(r.zr.File)
}

// Next returns the next entry, or io.EOF once every entry has been returned.
// The listing is single-pass: a handle does not rewind.
func (r *Reader) Next() (Entry, error) {
	if r.zr == nil {
		return Entry{}, errors.New(errors.ErrArchiveOpen, "archive is closed")
	}
	if r.cursor >= len(r.zr.File) {
		return Entry{}, io.EOF
	}
	zf := r.zr.File[r.cursor]
	r.cursor++
	return toEntry(zf), nil
}

// Lookup finds an entry by its archive path.
func (r *Reader) Lookup(name string) (Entry, bool) {
	zf, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return toEntry(zf), true
}

// Open returns the content stream of a file entry. Directory entries and
// entries that are not in the archive fail with ErrEntryRead.
func (r *Reader) Open(entry Entry) (io.ReadCloser, error) {
	if r.zr == nil {
		return nil, errors.New(errors.ErrArchiveOpen, "archive is closed")
	}
	if entry.IsDir {
		return nil, errors.Newf(errors.ErrEntryRead, "%s is a directory", entry.Path).
			WithDetail("entry", entry.Path)
	}
	zf, ok := r.byName[entry.Path]
	if !ok {
		return nil, errors.Newf(errors.ErrEntryRead, "%s is not in the archive", entry.Path).
			WithDetail("entry", entry.Path)
	}
	rc, err := zf.Open()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEntryRead, "cannot read %s", entry.Path).
			WithDetail("entry", entry.Path)
	}
	return rc, nil
}

// Close releases the handle. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.zr = nil
	r.byName = nil
	return err
}

func toEntry(zf *zip.File) Entry {
	return Entry{
		Path:    zf.Name,
		IsDir:   zf.FileInfo().IsDir() || strings.HasSuffix(zf.Name, "/"),
		Size:    zf.UncompressedSize64,
		ModTime: modTime(zf),
		Mode:    zf.Mode(),
	}
}

// modTime returns the entry time. Without an extended timestamp the zip
// reader reports the MS-DOS wall clock as UTC; that clock is local time.
func modTime(zf *zip.File) time.Time {
	m := zf.Modified
	dos := zf.ModifiedDate != 0 || zf.ModifiedTime != 0 //nolint:staticcheck // distinguishes DOS-only times
	if m.Location() != time.UTC || !dos {
		return m
	}
	return time.Date(m.Year(), m.Month(), m.Day(), m.Hour(), m.Minute(), m.Second(), 0, time.Local)
}
