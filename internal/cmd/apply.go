package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/brettbedarf/filetree"
	"github.com/brettbedarf/filetree/registry"
	"github.com/brettbedarf/filetree/requests"
	"github.com/brettbedarf/filetree/server"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewApplyCmd creates the apply subcommand, which runs each manifest
// against its own fresh tree.
func NewApplyCmd(opts *globalOptions) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "apply [--check] MANIFEST...",
		Short: "Run manifests and print the resulting trees",
		Long: `Run every operation of each manifest in order against a new tree and
print one line per operation followed by the tree listing.

Manifests are applied concurrently, each to its own tree, and reported in
the order given. With --check the invariant checker runs around every
mutation. The command fails if any operation fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, opts, args, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Verify tree invariants around every mutation")

	return cmd
}

func runApply(cmd *cobra.Command, opts *globalOptions, manifests []string, check bool) error {
	cfg := *opts.cfg
	if check {
		cfg.CheckInvariants = true
	}

	reg := registry.New(&cfg)
	reports := make([]*server.Report, len(manifests))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range manifests {
		g.Go(func() error {
			reqs, err := requests.UnmarshalFile(path, opts.sources)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			id, err := reg.Create(path)
			if err != nil {
				return err
			}
			report, err := applyRegistered(ctx, reg, id, reqs, cfg.CheckInvariants)
			if err != nil {
				return err
			}
			reports[i] = report
			return reg.Remove(id)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	out := cmd.OutOrStdout()
	for i, report := range reports {
		if len(manifests) > 1 {
			fmt.Fprintf(out, "== %s\n", manifests[i])
		}
		fmt.Fprint(out, report.String())
		failed += report.Failed()
	}
	if failed > 0 {
		return fmt.Errorf("%d request(s) failed", failed)
	}
	return nil
}

// applyRegistered runs reqs against the registered tree id while holding its
// lock.
func applyRegistered(ctx context.Context, reg *registry.Registry, id uuid.UUID, reqs []*filetree.Request, check bool) (*server.Report, error) {
	tctx, err := reg.Acquire(id)
	if err != nil {
		return nil, err
	}
	defer tctx.Close()
	return server.ApplyTree(ctx, tctx.Tree(), reqs, check), nil
}
