package extract

import (
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/arthur-debert/selfunzip/pkg/archive"
	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/types"
)

// DefaultManifest is the archive metadata entry that is never extracted.
const DefaultManifest = "META-INF/MANIFEST.MF"

// Excludes lists the entries that belong to the installer rather than the
// installed program.
type Excludes struct {
	// Manifest is compared case-insensitively.
	Manifest string
	// Bootstrap entries are compared exactly.
	Bootstrap []string
}

// DefaultExcludes returns the manifest plus the installer's own classes.
func DefaultExcludes() Excludes {
	return Excludes{
		Manifest: DefaultManifest,
		Bootstrap: []string{
			"net/jimmc/selfunzip/ZipSelfExtractor.class",
			"net/jimmc/jshortcut/JShellLink.class",
		},
	}
}

// Match reports whether name is excluded.
func (x Excludes) Match(name string) bool {
	if x.Manifest != "" && strings.EqualFold(name, x.Manifest) {
		return true
	}
	for _, b := range x.Bootstrap {
		if name == b {
			return true
		}
	}
	return false
}

// ExtractionPlan is the decision for one entry.
type ExtractionPlan struct {
	Entry           archive.Entry
	DestinationPath string
	Skip            bool
}

// eligible reports whether an entry is counted and extracted.
func (x Excludes) eligible(e archive.Entry) bool {
	return !e.IsDir && !x.Match(e.Path)
}

// destination maps an entry path beneath root. Entries that carry the root
// directory name as their first component are not nested twice. Absolute
// paths and paths with ".." components are rejected.
func destination(fs types.FS, root, rootName, entryPath string) (string, error) {
	name := strings.ReplaceAll(entryPath, `\`, "/")
	if unsafeEntryName(name) {
		return "", errors.Newf(errors.ErrEntryUnsafePath, "entry %q escapes the install directory", entryPath).
			WithDetail("entry", entryPath)
	}

	name = path.Clean(name)
	if first, rest, ok := strings.Cut(name, "/"); ok && first == rootName {
		name = rest
	}
	if name == "." || name == "" || name == rootName {
		return "", errors.Newf(errors.ErrEntryUnsafePath, "entry %q has no file name", entryPath).
			WithDetail("entry", entryPath)
	}

	dest, err := securejoin.SecureJoinVFS(root, filepath.FromSlash(name), fs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrEntryUnsafePath, "cannot place entry %q", entryPath).
			WithDetail("entry", entryPath)
	}
	return dest, nil
}

func unsafeEntryName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") {
		return true
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return true
		}
	}
	// Drive letters and other volume prefixes.
	first, _, _ := strings.Cut(name, "/")
	return strings.Contains(first, ":")
}
