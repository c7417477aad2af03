// Package fusefs exposes a point-in-time copy of a tree as a read-only FUSE
// filesystem.
package fusefs

import (
	"slices"

	"github.com/brettbedarf/filetree/filesystem"
)

// Entry is one node of a snapshot. Parent is "" for the tree root.
type Entry struct {
	Path   string
	Parent string
	Name   string
	IsFile bool
	Data   []byte
}

// Snapshot lists a tree's nodes in pre-order so every directory precedes
// its children. File contents are copied; later mutations of the tree do
// not show through the mount.
type Snapshot struct {
	Entries []Entry
}

// Collect copies t into a new snapshot. An uninitialized or empty tree
// yields an empty snapshot.
func Collect(t *filesystem.Tree) *Snapshot {
	snap := &Snapshot{}
	t.Walk(func(n *filesystem.Node) bool {
		e := Entry{
			Path:   n.Path().String(),
			Name:   n.Path().Base(),
			IsFile: n.IsFile(),
		}
		if p := n.Parent(); p != nil {
			e.Parent = p.Path().String()
		}
		if e.IsFile {
			e.Data = slices.Clone(n.Contents())
		}
		snap.Entries = append(snap.Entries, e)
		return true
	})
	return snap
}
