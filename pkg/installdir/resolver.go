// Package installdir decides where an archive is installed. It proposes a
// platform default, lets the operator accept it, pick another directory or
// cancel, and creates the default when it is missing.
package installdir

import (
	"fmt"
	"runtime"

	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/logging"
	"github.com/arthur-debert/selfunzip/pkg/naming"
	"github.com/arthur-debert/selfunzip/pkg/paths"
	"github.com/arthur-debert/selfunzip/pkg/types"
)

// InstallDirectory is the resolved directory. It is never mutated after
// resolution.
type InstallDirectory struct {
	Path                 string
	ExistedBeforeInstall bool
}

// Resolver resolves install directories.
type Resolver struct {
	Locator  paths.Locator
	Prompter types.Prompter
	FS       types.FS
	// GOOS defaults to runtime.GOOS.
	GOOS string
}

// New returns a resolver for the running platform.
func New(locator paths.Locator, prompter types.Prompter, fs types.FS) *Resolver {
	return &Resolver{Locator: locator, Prompter: prompter, FS: fs, GOOS: runtime.GOOS}
}

// Resolve asks the operator for an install directory. A nil directory with a
// nil error means the operator cancelled.
func (r *Resolver) Resolve(d naming.Derivation) (*InstallDirectory, error) {
	logger := logging.GetLogger("installdir.resolver")

	goos := r.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	defaultDir, err := paths.DefaultInstallDir(r.Locator, goos)
	if err != nil {
		return nil, err
	}

	exists := r.isDir(defaultDir)
	title := "Installing " + d.Title()

	choice, err := r.Prompter.ConfirmInstall(title, confirmMessage(d, defaultDir, exists))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPrompt, "install directory prompt failed")
	}
	logger.Debug().
		Str("default", defaultDir).
		Bool("exists", exists).
		Str("choice", choice.String()).
		Msg("Install directory prompt answered")

	switch choice {
	case types.InstallCancel:
		return nil, nil
	case types.InstallAccept:
		if exists {
			return &InstallDirectory{Path: defaultDir, ExistedBeforeInstall: true}, nil
		}
		if err := r.FS.MkdirAll(defaultDir, 0755); err != nil {
			dirErr := errors.Wrapf(err, errors.ErrDirCreate, "unable to create directory %s", defaultDir).
				WithDetail("path", defaultDir)
			logger.Warn().Err(dirErr).Msg("Falling back to directory selection")
			if showErr := r.Prompter.ShowMessage("Error Creating Directory",
				"Unable to create directory\n"+defaultDir, types.MessageError); showErr != nil {
				return nil, errors.Wrap(showErr, errors.ErrPrompt, "cannot report directory error")
			}
			break
		}
		logger.Info().Str("path", defaultDir).Msg("Created install directory")
		return &InstallDirectory{Path: defaultDir, ExistedBeforeInstall: false}, nil
	}

	return r.pick(d, defaultDir)
}

// pick opens the directory picker until the operator selects an existing
// directory or makes no selection.
func (r *Resolver) pick(d naming.Derivation, startDir string) (*InstallDirectory, error) {
	title := "Select destination directory for extracting " + d.Title()
	for {
		dir, ok, err := r.Prompter.PickDirectory(title, startDir)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrPrompt, "directory picker failed")
		}
		if !ok || dir == "" {
			return nil, nil
		}
		dir = paths.ExpandHome(dir)
		if r.isDir(dir) {
			return &InstallDirectory{Path: dir, ExistedBeforeInstall: true}, nil
		}
		if err := r.Prompter.ShowMessage("Invalid Directory",
			dir+"\nis not an existing directory.", types.MessageError); err != nil {
			return nil, errors.Wrap(err, errors.ErrPrompt, "cannot report invalid directory")
		}
		startDir = dir
	}
}

func (r *Resolver) isDir(path string) bool {
	info, err := r.FS.Stat(path)
	return err == nil && info.IsDir()
}

func confirmMessage(d naming.Derivation, defaultDir string, exists bool) string {
	msg := fmt.Sprintf("This installer will create the directory\n"+
		"   %s\n"+
		"within the install directory you select.\n"+
		" \n"+
		"The recommended install directory is\n"+
		"   %s\n", d.RootDirName(), defaultDir)
	if exists {
		return msg + " \nWould you like to install into that directory now?"
	}
	return msg + "which does not exist.\n \n" +
		"Would you like to create that directory and install into it now?"
}
