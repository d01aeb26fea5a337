// Package selfunzip wires the installer command line.
package selfunzip

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/selfunzip/cmd/selfunzip/commands/genconfig"
	"github.com/arthur-debert/selfunzip/internal/version"
	"github.com/arthur-debert/selfunzip/pkg/config"
	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/logging"
)

type rootOptions struct {
	verbosity  int
	configPath string
	archive    string
	format     string
}

// NewRootCmd creates the root command. Running it without a subcommand
// performs the installation.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "selfunzip",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	rootCmd.Flags().StringVar(&opts.format, "format", "", MsgFlagFormat)
	rootCmd.Flags().StringVar(&opts.archive, "archive", "", MsgFlagArchive)
	_ = rootCmd.Flags().MarkHidden("archive")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(genconfig.NewCommand(func() (*config.Config, error) {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return nil, errors.Wrap(err, errors.GetErrorCode(err), MsgErrLoadConfig)
		}
		return cfg, nil
	}))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "man",
		Short: MsgManShort,
		Long:  MsgManLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "SELFUNZIP",
				Section: "1",
				Source:  "selfunzip " + version.Version,
				Manual:  "selfunzip manual",
			}
			if dir != "" {
				return doc.GenManTree(cmd.Root(), header, dir)
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)
	return cmd
}
