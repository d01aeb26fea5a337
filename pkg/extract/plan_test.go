package extract

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/selfunzip/pkg/archive"
	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/filesystem"
	"github.com/arthur-debert/selfunzip/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcludes(t *testing.T) {
	x := DefaultExcludes()

	tests := []struct {
		name     string
		entry    archive.Entry
		eligible bool
	}{
		{"regular file", archive.Entry{Path: "README.txt"}, true},
		{"directory", archive.Entry{Path: "lib/", IsDir: true}, false},
		{"manifest", archive.Entry{Path: "META-INF/MANIFEST.MF"}, false},
		{"manifest any case", archive.Entry{Path: "meta-inf/manifest.mf"}, false},
		{"bootstrap class", archive.Entry{Path: "net/jimmc/jshortcut/JShellLink.class"}, false},
		{"bootstrap class other case", archive.Entry{Path: "net/jimmc/jshortcut/jshelllink.class"}, true},
		{"other meta-inf file", archive.Entry{Path: "META-INF/LICENSE"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, x.eligible(tt.entry))
		})
	}
}

func TestDestination(t *testing.T) {
	fs := filesystem.NewMemory()
	const rootName = "jshortcut-2_1_0"

	tests := []struct {
		name  string
		entry string
		want  string
	}{
		{"plain", "README.txt", "README.txt"},
		{"nested", "lib/app.jar", "lib/app.jar"},
		{"root prefix stripped", "jshortcut-2_1_0/lib/app.jar", "lib/app.jar"},
		{"other prefix kept", "jshortcut-2_0_0/lib/app.jar", "jshortcut-2_0_0/lib/app.jar"},
		{"backslashes", `doc\index.html`, "doc/index.html"},
		{"dot segments", "./doc/./index.html", "doc/index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := destination(fs, root, rootName, tt.entry)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(tt.want)), got)
		})
	}
}

func TestDestinationRejectsUnsafeEntries(t *testing.T) {
	fs := filesystem.NewMemory()

	for _, entry := range []string{
		"../evil.txt",
		"lib/../../evil.txt",
		"/etc/passwd",
		`\windows\evil.dll`,
		"C:/evil.txt",
		"jshortcut-2_1_0/",
		"",
	} {
		t.Run(entry, func(t *testing.T) {
			_, err := destination(fs, root, "jshortcut-2_1_0", entry)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrEntryUnsafePath))
		})
	}
}

func TestSummaryMessage(t *testing.T) {
	base := Summary{ArchivePath: "/dl/jshortcut-2_1_0.zip", InstallRoot: root, Title: "JShortcut 2.1.0"}

	tests := []struct {
		name   string
		mutate func(*Summary)
		want   string
		kind   types.MessageKind
	}{
		{
			name:   "single file",
			mutate: func(s *Summary) { s.Extracted, s.TotalEligible = 1, 1 },
			want:   "Extracted 1 file from the\n/dl/jshortcut-2_1_0.zip\narchive into the\n" + root + "\ndirectory.",
			kind:   types.MessageInfo,
		},
		{
			name:   "skipped",
			mutate: func(s *Summary) { s.Extracted, s.Skipped, s.TotalEligible = 3, 2, 5 },
			want:   "Extracted 3 files and skipped 2 files from the\n/dl/jshortcut-2_1_0.zip\narchive into the\n" + root + "\ndirectory.",
			kind:   types.MessageInfo,
		},
		{
			name: "stopped",
			mutate: func(s *Summary) {
				s.Extracted, s.Skipped, s.TotalEligible, s.Stopped = 2, 1, 10, true
			},
			want: "Stopped, extraction incomplete.\n \nExtracted 2 files and skipped 1 file out of 10 from the\n" +
				"/dl/jshortcut-2_1_0.zip\narchive into the\n" + root + "\ndirectory.",
			kind: types.MessageWarning,
		},
		{
			name: "failed",
			mutate: func(s *Summary) {
				s.TotalEligible, s.Stopped, s.Err = 1, true, stderrors.New("disk full")
			},
			want: "Stopped, extraction incomplete.\n \nExtracted 0 files out of 1 from the\n" +
				"/dl/jshortcut-2_1_0.zip\narchive into the\n" + root + "\ndirectory.\n \nError: disk full",
			kind: types.MessageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			assert.Equal(t, tt.want, s.Message())
			assert.Equal(t, tt.kind, s.Kind())
			assert.Equal(t, "Installed JShortcut 2.1.0", s.MessageTitle())
		})
	}
}
