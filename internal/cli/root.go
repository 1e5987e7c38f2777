// Package cli wires the operator-upgradepath commands.
package cli

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bayleafwalker/operator-upgradepath/internal/config"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// env carries what every command needs. Tests swap the filesystem and
// writers.
type env struct {
	v      *viper.Viper
	fs     afero.Fs
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand builds the command tree writing reports to out and logs to
// errOut.
func NewRootCommand(fsys afero.Fs, out, errOut io.Writer) *cobra.Command {
	e := &env{v: config.New(), fs: fsys, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "operator-upgradepath",
		Short: "Suggest upgrade paths for OLM operators from extracted catalogs",
		Long: "operator-upgradepath reads declarative config catalogs extracted to a working dir, " +
			"computes the newest bundles reachable from an installed version for each channel " +
			"and writes an ImageSetConfiguration restricted to those bundles.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.String(config.KeyLogLevel, string(config.LevelInfo), "log level: info, debug or trace")
	pf.String(config.KeyWorkingDir, config.DefaultWorkingDir(), "directory holding extracted catalogs")
	bindFlags(e.v, pf, config.KeyLogLevel, config.KeyWorkingDir)

	root.AddCommand(
		newUpgradePathCommand(e),
		newListCommand(e),
		newVersionCommand(e),
	)
	return root
}
