// Package conflict decides what happens when an archive entry would
// overwrite a file that already exists.
package conflict

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/logging"
	"github.com/arthur-debert/selfunzip/pkg/types"
	"github.com/dustin/go-humanize"
)

// Decision is the outcome for one destination path.
type Decision int

const (
	Overwrite Decision = iota
	OverwriteAll
	Skip
	Abort
)

func (d Decision) String() string {
	switch d {
	case Overwrite:
		return "overwrite"
	case OverwriteAll:
		return "overwrite-all"
	case Skip:
		return "skip"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

// Writes reports whether the decision means the file is written.
func (d Decision) Writes() bool {
	return d == Overwrite || d == OverwriteAll
}

// DefaultTimeFormat is used when no format is configured.
const DefaultTimeFormat = "2006-01-02 15:04:05"

// Resolver holds the state of one extraction run. Create a new one per run.
type Resolver struct {
	prompter     types.Prompter
	fs           types.FS
	timeFormat   string
	overwriteAll bool
}

// NewResolver returns a resolver with the sticky overwrite-all flag cleared.
func NewResolver(prompter types.Prompter, fs types.FS, timeFormat string) *Resolver {
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	return &Resolver{prompter: prompter, fs: fs, timeFormat: timeFormat}
}

// OverwriteAll reports whether the operator chose "Yes To All" in this run.
func (r *Resolver) OverwriteAll() bool {
	return r.overwriteAll
}

// Decide returns the decision for destination. It prompts only when the
// destination exists and overwrite-all has not been chosen.
func (r *Resolver) Decide(destination string, incoming types.FileInfo) (Decision, error) {
	if r.overwriteAll {
		return Overwrite, nil
	}

	info, err := r.fs.Stat(destination)
	if err != nil {
		// Not a real conflict.
		return Overwrite, nil
	}

	existing := types.FileInfo{Size: uint64(info.Size()), ModTime: info.ModTime()}
	prompt := types.ConflictPrompt{
		FileName:    filepath.Base(destination),
		Destination: destination,
		Existing:    existing,
		Incoming:    incoming,
	}
	prompt.Message = r.message(prompt)

	choice, err := r.prompter.ResolveConflict("Warning", prompt)
	if err != nil {
		return Abort, errors.Wrap(err, errors.ErrPrompt, "conflict prompt failed").
			WithDetail("destination", destination)
	}

	logger := logging.GetLogger("conflict.resolver")
	logger.Debug().
		Str("destination", destination).
		Str("choice", choice.String()).
		Msg("Conflict resolved")

	switch choice {
	case types.ConflictYes:
		return Overwrite, nil
	case types.ConflictYesToAll:
		r.overwriteAll = true
		return OverwriteAll, nil
	case types.ConflictNo:
		return Skip, nil
	default:
		return Abort, nil
	}
}

func (r *Resolver) message(p types.ConflictPrompt) string {
	return fmt.Sprintf("File name conflict: There is already a file with that name on the disk!\n"+
		"\nFile name: %s"+
		"\nDestination: %s"+
		"\nExisting file: %s,  %s"+
		"\nFile in archive: %s,  %s"+
		"\n\nWould you like to overwrite the file?",
		p.FileName,
		p.Destination,
		p.Existing.ModTime.Format(r.timeFormat), formatSize(p.Existing.Size),
		p.Incoming.ModTime.Format(r.timeFormat), formatSize(p.Incoming.Size))
}

func formatSize(n uint64) string {
	return fmt.Sprintf("%s (%s bytes)", humanize.Bytes(n), humanize.Comma(int64(n)))
}
