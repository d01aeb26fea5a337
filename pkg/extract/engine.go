package extract

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/selfunzip/pkg/archive"
	"github.com/arthur-debert/selfunzip/pkg/conflict"
	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/filesystem"
	"github.com/arthur-debert/selfunzip/pkg/installdir"
	"github.com/arthur-debert/selfunzip/pkg/logging"
	"github.com/arthur-debert/selfunzip/pkg/naming"
	"github.com/arthur-debert/selfunzip/pkg/native"
	"github.com/arthur-debert/selfunzip/pkg/paths"
	"github.com/arthur-debert/selfunzip/pkg/types"
)

// Bootstrapper prepares the native payload. *native.Bootstrapper
// implements it.
type Bootstrapper interface {
	Setup(d naming.Derivation, r *archive.Reader) (*native.Payload, error)
}

// DirectoryResolver picks the install directory. A nil directory with a nil
// error means the operator cancelled. *installdir.Resolver implements it.
type DirectoryResolver interface {
	Resolve(d naming.Derivation) (*installdir.InstallDirectory, error)
}

// Options configures an Engine. Only Prompter is required.
type Options struct {
	FS       types.FS
	Prompter types.Prompter
	Progress types.ProgressReporter
	Parser   *naming.Parser
	Locator  paths.Locator
	Resolver DirectoryResolver
	Excludes *Excludes

	// Bootstrap runs on the platforms listed in NativePlatforms, matched
	// case-insensitively. A nil Bootstrap skips the native step.
	Bootstrap       Bootstrapper
	NativePlatforms []string

	TimeFormat string
	// GOOS defaults to runtime.GOOS.
	GOOS string
}

// Engine performs extractions. An Engine is used for one run at a time.
type Engine struct {
	opts Options
}

// New fills unset options with their defaults.
func New(opts Options) *Engine {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Progress == nil {
		opts.Progress = nopProgress{}
	}
	if opts.Parser == nil {
		opts.Parser = naming.Default()
	}
	if opts.Locator == nil {
		opts.Locator = paths.NewSystemLocator()
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Resolver == nil {
		resolver := installdir.New(opts.Locator, opts.Prompter, opts.FS)
		resolver.GOOS = opts.GOOS
		opts.Resolver = resolver
	}
	if opts.Excludes == nil {
		x := DefaultExcludes()
		opts.Excludes = &x
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = conflict.DefaultTimeFormat
	}
	return &Engine{opts: opts}
}

func (e *Engine) needsNative() bool {
	if e.opts.Bootstrap == nil {
		return false
	}
	for _, p := range e.opts.NativePlatforms {
		if strings.EqualFold(p, e.opts.GOOS) {
			return true
		}
	}
	return false
}

// Extract installs the archive at archivePath and returns the outcome. The
// summary is shown to the operator unless the directory choice was
// cancelled.
func (e *Engine) Extract(ctx context.Context, archivePath string) Summary {
	logger := logging.GetLogger("extract.engine")
	done := logging.LogOperationStart(logger, "extract")
	defer done()

	d := e.opts.Parser.Derive(archivePath)
	summary := Summary{ArchivePath: archivePath, Title: d.Title()}

	r, err := archive.Open(archivePath)
	if err != nil {
		summary.Err = err
		e.fail("Error Opening Archive", err)
		return summary
	}

	var payload *native.Payload
	cleanup := func() {
		if err := r.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close archive")
		}
		if err := payload.Release(); err != nil {
			logger.Warn().Err(err).Str("path", payload.Path).Msg("Failed to delete native payload")
		}
	}

	if e.needsNative() {
		payload, err = e.opts.Bootstrap.Setup(d, r)
		if err != nil {
			if !errors.IsErrorCode(err, errors.ErrNativeUnavailable) {
				cleanup()
				summary.Err = err
				e.fail("Error Preparing Native Library", err)
				return summary
			}
			logger.Warn().Err(err).Msg("Native library unavailable, continuing without it")
		}
	}

	dir, err := e.opts.Resolver.Resolve(d)
	if err != nil {
		cleanup()
		summary.Err = err
		e.fail("Error Selecting Directory", err)
		return summary
	}
	if dir == nil {
		logger.Info().Msg("Installation cancelled at directory selection")
		cleanup()
		summary.Stopped = true
		return summary
	}

	summary.InstallRoot = filepath.Join(dir.Path, d.RootDirName())
	logger.Info().
		Str("archive", archivePath).
		Str("root", summary.InstallRoot).
		Bool("dirExisted", dir.ExistedBeforeInstall).
		Msg("Extracting")

	e.run(ctx, r, d, &summary)

	cleanup()
	e.report(summary)
	return summary
}

// run copies the eligible entries and fills in the counts.
func (e *Engine) run(ctx context.Context, r *archive.Reader, d naming.Derivation, summary *Summary) {
	logger := logging.GetLogger("extract.engine")
	o := e.opts

	entries, err := e.eligibleEntries(r)
	if err != nil {
		summary.Err = err
		summary.Stopped = true
		return
	}
	summary.TotalEligible = len(entries)

	o.Progress.SetTotal(len(entries))
	defer o.Progress.Close()

	conflicts := conflict.NewResolver(o.Prompter, o.FS, o.TimeFormat)
	rootName := d.RootDirName()

	for i, entry := range entries {
		o.Progress.Advance(i, entry.Path)
		if o.Progress.IsCancelled() || ctx.Err() != nil {
			logger.Info().Int("index", i).Msg("Extraction cancelled")
			summary.Stopped = true
			return
		}

		plan := ExtractionPlan{Entry: entry}
		plan.DestinationPath, err = destination(o.FS, summary.InstallRoot, rootName, entry.Path)
		if err != nil {
			logger.Warn().Err(err).Str("entry", entry.Path).Msg("Skipping unsafe entry")
			summary.Skipped++
			continue
		}

		decision, err := conflicts.Decide(plan.DestinationPath, types.FileInfo{Size: entry.Size, ModTime: entry.ModTime})
		if err != nil {
			summary.Err = err
			summary.Stopped = true
			return
		}
		if decision == conflict.Abort {
			summary.Stopped = true
			return
		}
		plan.Skip = !decision.Writes()
		if plan.Skip {
			summary.Skipped++
			continue
		}

		if err := e.write(r, plan); err != nil {
			logger.Error().Err(err).Str("entry", entry.Path).Msg("Extraction failed")
			summary.Err = err
			summary.Stopped = true
			return
		}
		summary.Extracted++
	}
	logger.Debug().Bool("overwriteAll", conflicts.OverwriteAll()).Msg("Entries processed")
}

func (e *Engine) eligibleEntries(r *archive.Reader) ([]archive.Entry, error) {
	entries := make([]archive.Entry, 0, r.Len())
	for {
		entry, err := r.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		if e.opts.Excludes.eligible(entry) {
			entries = append(entries, entry)
		}
	}
}

// write copies one entry. A failed copy leaves no partial file behind.
func (e *Engine) write(r *archive.Reader, plan ExtractionPlan) error {
	logger := logging.GetLogger("extract.engine")
	fsys := e.opts.FS
	dest := plan.DestinationPath

	if err := fsys.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(dest)).
			WithDetail("path", filepath.Dir(dest))
	}

	src, err := r.Open(plan.Entry)
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := fsys.Create(dest, filePerm(plan.Entry))
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dest).
			WithDetail("path", dest)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = fsys.Remove(dest)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest).
			WithDetail("path", dest).
			WithDetail("entry", plan.Entry.Path)
	}
	if err := out.Close(); err != nil {
		_ = fsys.Remove(dest)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest).
			WithDetail("path", dest)
	}

	if err := fsys.Chtimes(dest, plan.Entry.ModTime, plan.Entry.ModTime); err != nil {
		logger.Warn().Err(err).Str("path", dest).Msg("Cannot set modification time")
	}
	return nil
}

func filePerm(entry archive.Entry) fs.FileMode {
	perm := entry.Mode.Perm()
	if perm == 0 {
		return 0644
	}
	return perm
}

// fail reports a fatal error to the operator.
func (e *Engine) fail(title string, err error) {
	logger := logging.GetLogger("extract.engine")
	logger.Error().Err(err).Msg(title)
	if showErr := e.opts.Prompter.ShowMessage(title, err.Error(), types.MessageError); showErr != nil {
		logger.Warn().Err(showErr).Msg("Cannot show error")
	}
}

// report shows the final summary.
func (e *Engine) report(s Summary) {
	logger := logging.GetLogger("extract.engine")
	logger.Info().
		Int("extracted", s.Extracted).
		Int("skipped", s.Skipped).
		Int("total", s.TotalEligible).
		Bool("stopped", s.Stopped).
		Msg("Extraction finished")
	if err := e.opts.Prompter.ShowMessage(s.MessageTitle(), s.Message(), s.Kind()); err != nil {
		logger.Warn().Err(err).Msg("Cannot show summary")
	}
}

type nopProgress struct{}

func (nopProgress) SetTotal(int)        {}
func (nopProgress) Advance(int, string) {}
func (nopProgress) IsCancelled() bool   { return false }
func (nopProgress) Close()              {}
