package extract

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/selfunzip/pkg/types"
)

// Summary is the outcome of one extraction.
type Summary struct {
	ArchivePath string
	// InstallRoot is empty when no directory was resolved.
	InstallRoot string
	// Title is the program title, e.g. "JShortcut 2.1.0".
	Title string

	Extracted     int
	Skipped       int
	TotalEligible int

	// Stopped is set when the run ended before every eligible entry was
	// handled: cancellation, an aborted conflict or a write failure.
	Stopped bool
	Err     error
}

// Cancelled reports whether the operator cancelled at directory selection.
func (s Summary) Cancelled() bool {
	return s.Stopped && s.InstallRoot == "" && s.Err == nil
}

// MessageTitle is the title of the summary message.
func (s Summary) MessageTitle() string {
	return "Installed " + s.Title
}

// Kind is the severity the summary is shown with.
func (s Summary) Kind() types.MessageKind {
	switch {
	case s.Err != nil:
		return types.MessageError
	case s.Stopped:
		return types.MessageWarning
	default:
		return types.MessageInfo
	}
}

// Message is the operator-facing text of the summary.
func (s Summary) Message() string {
	var b strings.Builder
	if s.Stopped {
		b.WriteString("Stopped, extraction incomplete.\n \n")
	}
	fmt.Fprintf(&b, "Extracted %d %s", s.Extracted, plural(s.Extracted))
	if s.Skipped > 0 {
		fmt.Fprintf(&b, " and skipped %d %s", s.Skipped, plural(s.Skipped))
	}
	if s.Extracted+s.Skipped < s.TotalEligible {
		fmt.Fprintf(&b, " out of %d", s.TotalEligible)
	}
	fmt.Fprintf(&b, " from the\n%s\narchive into the\n%s\ndirectory.", s.ArchivePath, s.InstallRoot)
	if s.Err != nil {
		fmt.Fprintf(&b, "\n \nError: %v", s.Err)
	}
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
