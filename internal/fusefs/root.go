package fusefs

import (
	"context"
	"syscall"

	"github.com/brettbedarf/filetree/internal/util"
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Root is the mount's top directory. The tree's root node appears as its
// only child.
type Root struct {
	dirNode
	snap     *Snapshot
	fileMode uint32
}

var _ = (fs.NodeOnAdder)((*Root)(nil))

// NewRoot builds the FUSE root for snap using the given permission bits.
func NewRoot(snap *Snapshot, fileMode, dirMode uint32) *Root {
	return &Root{
		dirNode:  dirNode{mode: dirMode},
		snap:     snap,
		fileMode: fileMode,
	}
}

// OnAdd materializes the whole snapshot as persistent inodes once the root
// is attached.
func (r *Root) OnAdd(ctx context.Context) {
	logger := util.GetLogger("FuseRoot")
	dirs := map[string]*fs.Inode{"": &r.Inode}

	for _, e := range r.snap.Entries {
		parent, ok := dirs[e.Parent]
		if !ok {
			logger.Error().Str("path", e.Path).Msg("Snapshot entry precedes its parent")
			continue
		}
		var child *fs.Inode
		if e.IsFile {
			child = parent.NewPersistentInode(ctx, &fs.MemRegularFile{
				Data: e.Data,
				Attr: fuse.Attr{Mode: r.fileMode},
			}, fs.StableAttr{Mode: syscall.S_IFREG})
		} else {
			child = parent.NewPersistentInode(ctx, &dirNode{mode: r.dirNode.mode}, fs.StableAttr{Mode: syscall.S_IFDIR})
			dirs[e.Path] = child
		}
		parent.AddChild(e.Name, child, true)
	}
	logger.Debug().Int("entries", len(r.snap.Entries)).Msg("Snapshot mounted")
}

// dirNode is a read-only directory whose children are all added up front.
type dirNode struct {
	fs.Inode
	mode uint32
}

var _ = (fs.NodeGetattrer)((*dirNode)(nil))

func (d *dirNode) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = syscall.S_IFDIR | d.mode
	return 0
}
