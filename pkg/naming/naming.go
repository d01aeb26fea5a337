// Package naming derives the program name and version from the file name
// of an installer archive, e.g. "jshortcut-2_1_0.zip".
package naming

import (
	"path/filepath"
	"strings"
)

// DefaultPlaceholder is returned as the version when a file name carries no
// recognizable separator.
const DefaultPlaceholder = "X_X_X"

// archiveExtensions are the suffixes stripped before parsing.
var archiveExtensions = []string{".zip", ".jar", ".exe"}

// Derivation is what a Parser learns from one archive file name.
type Derivation struct {
	// ProgramToken is the raw text before the separator.
	ProgramToken string
	// ProgramName is ProgramToken normalized for display.
	ProgramName string
	// VersionDisplay has underscores replaced with dots.
	VersionDisplay string
	// VersionSuffix is safe to embed in a directory name.
	VersionSuffix string
}

// Title is the "<program> <version>" text used in prompt titles.
func (d Derivation) Title() string {
	return d.ProgramName + " " + d.VersionDisplay
}

// RootDirName is the version-qualified directory created inside the chosen
// install directory.
func (d Derivation) RootDirName() string {
	return d.ProgramToken + "-" + d.VersionSuffix
}

// Parser derives names. The zero value is usable and has no aliases.
type Parser struct {
	// Aliases maps lower-case program tokens to a canonical display name.
	Aliases     map[string]string
	Placeholder string
}

// NewParser returns a parser mapping each alias, case-insensitively, to
// displayName.
func NewParser(displayName string, aliases []string, placeholder string) *Parser {
	p := &Parser{
		Aliases:     make(map[string]string, len(aliases)),
		Placeholder: placeholder,
	}
	for _, a := range aliases {
		p.Aliases[strings.ToLower(a)] = displayName
	}
	return p
}

// Default returns the parser used when no configuration is supplied.
func Default() *Parser {
	return NewParser("JShortcut", []string{"jshortcut", "js"}, DefaultPlaceholder)
}

func (p *Parser) placeholder() string {
	if p.Placeholder == "" {
		return DefaultPlaceholder
	}
	return p.Placeholder
}

// Derive computes every derivation for archiveFileName. A directory part,
// if present, is ignored.
func (p *Parser) Derive(archiveFileName string) Derivation {
	name := filepath.Base(archiveFileName)
	program, display := p.DeriveDisplayVersion(name)
	token, _, found := split(stripExtension(name))
	if !found {
		token = stripExtension(name)
	}
	return Derivation{
		ProgramToken:   token,
		ProgramName:    program,
		VersionDisplay: display,
		VersionSuffix:  p.DeriveVersionSuffix(name),
	}
}

// DeriveVersionSuffix returns the version part of the name verbatim, with
// underscores kept. Without a separator it returns the placeholder.
func (p *Parser) DeriveVersionSuffix(archiveFileName string) string {
	_, rest, found := split(stripExtension(archiveFileName))
	if !found {
		return p.placeholder()
	}
	rest = stripExtension(rest)
	return strings.NewReplacer("/", "_", "\\", "_").Replace(rest)
}

// DeriveDisplayVersion returns the display program name and the dotted
// version. Without a separator the whole name is the program and the
// version is the placeholder.
func (p *Parser) DeriveDisplayVersion(archiveFileName string) (programName, versionDisplay string) {
	name := stripExtension(archiveFileName)
	token, rest, found := split(name)
	if !found {
		return p.normalize(name), p.placeholder()
	}
	return p.normalize(token), strings.ReplaceAll(rest, "_", ".")
}

func (p *Parser) normalize(token string) string {
	if canonical, ok := p.Aliases[strings.ToLower(token)]; ok {
		return canonical
	}
	return token
}

// split cuts at the first '-', or failing that the first '_'.
func split(name string) (before, after string, found bool) {
	if i := strings.IndexByte(name, '-'); i >= 0 {
		return name[:i], name[i+1:], true
	}
	if i := strings.IndexByte(name, '_'); i >= 0 {
		return name[:i], name[i+1:], true
	}
	return name, "", false
}

func stripExtension(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) && len(name) > len(ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
