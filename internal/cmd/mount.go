package cmd

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/brettbedarf/filetree/internal/util"
	"github.com/brettbedarf/filetree/requests"
	"github.com/brettbedarf/filetree/server"
	"github.com/spf13/cobra"
)

// NewMountCmd creates the mount subcommand, which serves a manifest's
// resulting tree read-only until interrupted.
func NewMountCmd(opts *globalOptions) *cobra.Command {
	var umount bool

	cmd := &cobra.Command{
		Use:   "mount MANIFEST MOUNTPOINT",
		Short: "Mount the tree built by a manifest",
		Long: `Apply MANIFEST to a new tree and mount a read-only snapshot of the
result at MOUNTPOINT. The mount stays up until SIGINT, SIGTERM or SIGQUIT.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(cmd.Context(), opts, args[0], args[1], umount)
		},
	}

	cmd.Flags().BoolVarP(&umount, "umount", "u", false,
		"Unmount the fs first if needed before mounting again. Useful for debuggers that don't exit properly.")

	return cmd
}

func runMount(ctx context.Context, opts *globalOptions, manifest, mnt string, umount bool) error {
	logger := util.GetLogger("mount")

	if umount {
		// we ignore error here if not already mounted
		exec.Command("fusermount", "-u", mnt).Run() // nolint:errcheck
	}

	reqs, err := requests.UnmarshalFile(manifest, opts.sources)
	if err != nil {
		return err
	}
	ft, err := server.New(opts.cfg)
	if err != nil {
		return err
	}
	report := ft.Apply(ctx, reqs)
	if n := report.Failed(); n > 0 {
		logger.Warn().Int("failed", n).Msg("Some requests failed; mounting what was built")
	}

	if err := ft.Serve(mnt); err != nil {
		logger.Error().Err(err).Str("mountpoint", mnt).Msg("Failed to mount filesystem")
		return err
	}

	// Setup signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(signalChan)

	unmounted := ft.Done()
	select {
	case sig := <-signalChan:
		logger.Info().Str("signal", sig.String()).Msg("Received signal, unmounting filesystem")
	case <-ctx.Done():
		logger.Info().Msg("Context done, unmounting filesystem")
	case <-unmounted:
		logger.Info().Msg("Filesystem unmounted externally")
		return ft.Destroy()
	}

	if err := ft.Unmount(); err != nil {
		logger.Error().Err(err).Msg("Failed to unmount filesystem")
		return err
	}
	logger.Info().Msg("Filesystem unmounted successfully")
	return ft.Destroy()
}
