package selfunzip

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/selfunzip/pkg/config"
	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/extract"
	"github.com/arthur-debert/selfunzip/pkg/filesystem"
	"github.com/arthur-debert/selfunzip/pkg/logging"
	"github.com/arthur-debert/selfunzip/pkg/naming"
	"github.com/arthur-debert/selfunzip/pkg/native"
	"github.com/arthur-debert/selfunzip/pkg/paths"
	"github.com/arthur-debert/selfunzip/pkg/ui/progress"
	"github.com/arthur-debert/selfunzip/pkg/ui/prompt"
)

// runInstall extracts the archive. The outcome is reported to the operator
// by the engine, so only setup failures are returned.
func runInstall(cmd *cobra.Command, opts *rootOptions) error {
	logger := logging.GetLogger("cmd.install")

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return errors.Wrap(err, errors.GetErrorCode(err), MsgErrLoadConfig)
	}

	archivePath, err := locateArchive(opts.archive)
	if err != nil {
		return err
	}

	formatName := cfg.UI.Format
	if opts.format != "" {
		formatName = opts.format
	}
	format, err := prompt.ParseFormat(formatName)
	if err != nil {
		return err
	}
	format = format.Resolve(os.Stdout)

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fs := filesystem.NewOS()
	reporter := progress.New(ctx, out, format == prompt.FormatTerminal)

	engine := extract.New(extract.Options{
		FS:       fs,
		Prompter: progress.Guard(prompt.New(format, cmd.InOrStdin(), out), reporter),
		Progress: reporter,
		Parser:   naming.NewParser(cfg.Naming.DisplayName, cfg.Naming.Aliases, cfg.Naming.Placeholder),
		Locator:  paths.NewSystemLocator(),
		Excludes: &extract.Excludes{
			Manifest:  cfg.Archive.Manifest,
			Bootstrap: cfg.Archive.BootstrapEntries,
		},
		Bootstrap: native.NewBootstrapper(native.Options{
			Library:  cfg.Native.Library,
			EnvVar:   cfg.Native.EnvVar,
			FS:       fs,
			Registry: native.ExitCleanup,
		}),
		NativePlatforms: cfg.Native.Platforms,
		TimeFormat:      cfg.UI.TimeFormat,
		GOOS:            runtime.GOOS,
	})

	summary := engine.Extract(ctx, archivePath)
	logger.Info().
		Str("archive", archivePath).
		Int("extracted", summary.Extracted).
		Int("skipped", summary.Skipped).
		Bool("stopped", summary.Stopped).
		AnErr("error", summary.Err).
		Msg("Installer finished")
	return nil
}

// locateArchive returns override, or the running executable which carries
// the archive.
func locateArchive(override string) (string, error) {
	if override != "" {
		return paths.ExpandHome(override), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrArchiveOpen, MsgErrLocateArchive)
	}
	return exe, nil
}
