package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
)

// ZipEntry is one record written by ZipBuilder.
type ZipEntry struct {
	Name    string
	Content string
	ModTime time.Time
	// DOSOnly writes only the MS-DOS date and time fields, the way jar
	// and java.util.zip do.
	DOSOnly bool
}

// ZipBuilder assembles an archive fixture.
type ZipBuilder struct {
	entries []ZipEntry
	prefix  []byte
}

// NewZipBuilder returns an empty builder.
func NewZipBuilder() *ZipBuilder {
	return &ZipBuilder{}
}

// File adds a file entry.
func (b *ZipBuilder) File(name, content string, modTime time.Time) *ZipBuilder {
	b.entries = append(b.entries, ZipEntry{Name: name, Content: content, ModTime: modTime})
	return b
}

// DOSFile adds a file entry without an extended timestamp. The wall clock
// of modTime is recorded and its location is dropped.
func (b *ZipBuilder) DOSFile(name, content string, modTime time.Time) *ZipBuilder {
	b.entries = append(b.entries, ZipEntry{Name: name, Content: content, ModTime: modTime, DOSOnly: true})
	return b
}

// Dir adds a directory entry. A trailing slash is added when missing.
func (b *ZipBuilder) Dir(name string) *ZipBuilder {
	if name == "" || name[len(name)-1] != '/' {
		name += "/"
	}
	b.entries = append(b.entries, ZipEntry{Name: name, ModTime: DefaultModTime})
	return b
}

// Prefix sets bytes written before the archive, the way an executable
// stub precedes the payload of a self-extracting installer.
func (b *ZipBuilder) Prefix(data []byte) *ZipBuilder {
	b.prefix = data
	return b
}

// Write writes the archive to dir/name and returns its path.
func (b *ZipBuilder) Write(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer f.Close()

	if len(b.prefix) > 0 {
		if _, err := f.Write(b.prefix); err != nil {
			t.Fatalf("write prefix: %v", err)
		}
	}

	zw := zip.NewWriter(f)
	if len(b.prefix) > 0 {
		zw.SetOffset(int64(len(b.prefix)))
	}
	for _, e := range b.entries {
		header := &zip.FileHeader{
			Name:   e.Name,
			Method: zip.Deflate,
		}
		if e.DOSOnly {
			header.ModifiedDate, header.ModifiedTime = dosDateTime(e.ModTime) //nolint:staticcheck // DOS fields only
		} else {
			header.Modified = e.ModTime
		}
		if e.Name[len(e.Name)-1] == '/' {
			header.Method = zip.Store
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatalf("create entry %s: %v", e.Name, err)
		}
		if e.Content != "" {
			if _, err := w.Write([]byte(e.Content)); err != nil {
				t.Fatalf("write entry %s: %v", e.Name, err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return path
}

// DefaultModTime is a fixed timestamp used by fixtures that do not care.
var DefaultModTime = time.Date(2003, 1, 2, 3, 4, 6, 0, time.UTC)

// dosDateTime encodes the wall clock of t in MS-DOS format.
func dosDateTime(t time.Time) (date, clock uint16) {
	date = uint16(t.Day() + int(t.Month())<<5 + (t.Year()-1980)<<9)
	clock = uint16(t.Second()/2 + t.Minute()<<5 + t.Hour()<<11)
	return date, clock
}

// SetLocalZone replaces time.Local for the duration of the test.
func SetLocalZone(t *testing.T, loc *time.Location) {
	t.Helper()
	saved := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = saved })
}
