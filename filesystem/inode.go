package filesystem

import (
	"github.com/google/btree"
)

// childDegree is the B-tree degree of a directory's child collection.
const childDegree = 8

// nodeData is the payload of a Node: exactly one of *dirData or *fileData.
type nodeData interface {
	isNodeData()
}

// dirData holds a directory's children ordered by path. Keys are unique.
type dirData struct {
	children *btree.BTreeG[*Node]
}

// fileData holds a file's contents. Contents may be nil for a valid file.
type fileData struct {
	contents []byte
}

func (*dirData) isNodeData()  {}
func (*fileData) isNodeData() {}

func newDirData() *dirData {
	return &dirData{children: btree.NewG[*Node](childDegree, lessByPath)}
}

func newFileData(contents []byte) *fileData {
	return &fileData{contents: contents}
}

func lessByPath(a, b *Node) bool {
	return a.path.Compare(b.path) < 0
}

// lookup finds the child with path equal to key's path.
func (d *dirData) lookup(key *Node) (*Node, bool) {
	return d.children.Get(key)
}

// insert adds child at its sorted position. It reports false, leaving the
// collection untouched, if a child with the same path exists.
func (d *dirData) insert(child *Node) bool {
	if d.children.Has(child) {
		return false
	}
	d.children.ReplaceOrInsert(child)
	return true
}

func (d *dirData) remove(child *Node) bool {
	_, ok := d.children.Delete(child)
	return ok
}

// list returns the children in ascending path order.
func (d *dirData) list() []*Node {
	out := make([]*Node, 0, d.children.Len())
	d.children.Ascend(func(n *Node) bool {
		out = append(out, n)
		return true
	})
	return out
}
