package server

import (
	"context"
	"errors"

	"github.com/brettbedarf/filetree"
	"github.com/brettbedarf/filetree/config"
	"github.com/brettbedarf/filetree/filesystem"
	"github.com/brettbedarf/filetree/internal/fusefs"
	"github.com/brettbedarf/filetree/internal/util"
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

var ErrAlreadyMounted = errors.New("tree already mounted")

// FileTree contains a tree plus the runtime around it: applying requests
// and exposing a snapshot over FUSE.
type FileTree struct {
	*filesystem.Tree
	cfg    *config.Config
	server *fuse.Server
}

// New creates an initialized FileTree given your config.
func New(cfg *config.Config) (*FileTree, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	t, err := filetree.New(cfg)
	if err != nil {
		return nil, err
	}
	return &FileTree{Tree: t, cfg: cfg}, nil
}

// Apply runs reqs in order against the tree. See [Apply].
func (ft *FileTree) Apply(ctx context.Context, reqs []*filetree.Request) *Report {
	return ApplyTree(ctx, ft.Tree, reqs, ft.cfg.CheckInvariants)
}

// ApplyTree runs reqs against t like [Apply] and stamps the report with the
// resulting tree's fingerprint.
func ApplyTree(ctx context.Context, t *filesystem.Tree, reqs []*filetree.Request, check bool) *Report {
	report := Apply(ctx, t, reqs, check)
	report.Fingerprint = t.Fingerprint().String()
	return report
}

// Serve mounts a read-only snapshot of the tree at mountPoint and returns
// once the kernel has the mount. Changes made afterwards are not visible
// until the tree is remounted.
func (ft *FileTree) Serve(mountPoint string) error {
	logger := util.GetLogger("FileTree.Serve")
	if ft.server != nil {
		return ErrAlreadyMounted
	}

	snap := fusefs.Collect(ft.Tree)
	root := fusefs.NewRoot(snap, ft.cfg.FileMode, ft.cfg.DirMode)
	opts := ft.cfg.MountOptions
	flogger := util.NewLogLogger("FuseServer", ft.cfg.LogLvl)
	srv, err := fs.Mount(mountPoint, root, &fs.Options{
		MountOptions: fuse.MountOptions{
			Name:   opts.Name,
			FsName: opts.FsName,
			Debug:  opts.Debug || ft.cfg.LogLvl == util.TraceLevel,
			Logger: flogger,
		},
		Logger: flogger,
	})
	if err != nil {
		return err
	}
	ft.server = srv
	logger.Info().Str("mountpoint", mountPoint).Int("nodes", len(snap.Entries)).Msg("Tree mounted")
	return nil
}

// Done returns a channel closed once the current mount goes away. It is
// closed immediately when nothing is mounted.
func (ft *FileTree) Done() <-chan struct{} {
	done := make(chan struct{})
	srv := ft.server
	go func() {
		if srv != nil {
			srv.Wait()
		}
		close(done)
	}()
	return done
}

// Unmount cleanly unmounts the filesystem.
func (ft *FileTree) Unmount() error {
	if ft.server == nil {
		return nil
	}
	err := ft.server.Unmount()
	ft.server = nil
	return err
}
