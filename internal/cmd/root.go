// Package cmd wires the filetree command line.
package cmd

import (
	"github.com/brettbedarf/filetree/adapters"
	"github.com/brettbedarf/filetree/config"
	"github.com/brettbedarf/filetree/internal/util"
	"github.com/brettbedarf/filetree/internal/version"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose    int
	configPath string

	cfg     *config.Config
	sources *adapters.Registry
}

// NewRootCmd creates and returns the root cobra command for the filetree CLI.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "filetree",
		Short: "filetree - build in-memory file trees from manifests",
		Long: `filetree builds in-memory hierarchical file trees from manifests of
operations (mkdir, create, rmdir, rm, replace, stat).

Use subcommands to perform different operations:
  - apply: Run manifests and print each resulting tree
  - mount: Run a manifest and expose the result read-only over FUSE`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	rootCmd.PersistentFlags().IntVarP(&opts.verbose, "verbose", "v", config.InfoVerbose,
		"Log verbosity level between 1 (error) and 5 (trace)")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to a YAML or JSON config file")

	rootCmd.AddCommand(NewApplyCmd(opts))
	rootCmd.AddCommand(NewMountCmd(opts))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// init loads the config, applies the verbosity flag and starts logging.
// An explicit -v wins over the config file.
func (o *globalOptions) init(cmd *cobra.Command) error {
	override := &config.ConfigOverride{}
	if o.configPath != "" {
		loaded, err := config.LoadConfigOverrideFile(o.configPath)
		if err != nil {
			return err
		}
		override = loaded
	}
	if cmd.Flags().Changed("verbose") || override.LogLvl == nil {
		override.LogLvl = util.Pointer(o.verbose)
	}

	cfg := config.NewConfig(override)
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("cli")
	logger.Debug().Int("verbose", o.verbose).Str("config", o.configPath).Msg("CLI initialized")

	o.sources = adapters.NewRegistry()
	adapters.RegisterBuiltins(o.sources)
	return nil
}
