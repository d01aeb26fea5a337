package prompt

import (
	"io"
	"os"

	"github.com/arthur-debert/selfunzip/pkg/types"
)

// New returns the prompter for format. FormatAuto is resolved against
// stdout.
func New(format Format, in io.Reader, out io.Writer) types.Prompter {
	switch format.Resolve(os.Stdout) {
	case FormatTerminal:
		return NewTerminalPrompter(out)
	default:
		return NewConsolePrompter(in, out, false)
	}
}
