package filesystem

import (
	"fmt"

	"github.com/brettbedarf/filetree/fspath"
)

// Node is a single vertex of a Tree: a directory owning an ordered child
// collection, or a file owning its contents.
//
// The parent field is a non-owning back reference; ownership runs from a
// directory to its children.
type Node struct {
	path   fspath.Path
	parent *Node
	data   nodeData
}

// newNode creates a node at path under parent and links it into the
// parent's children at its sorted position. A nil parent creates a root.
func newNode(path fspath.Path, parent *Node, data nodeData) (*Node, error) {
	if path.IsZero() {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}
	_, isFile := data.(*fileData)

	if parent == nil {
		// roots are created one level at a time and are always directories
		if path.Depth() != 1 {
			return nil, fmt.Errorf("%w: root %s must have depth 1", ErrNotFound, path)
		}
		if isFile {
			return nil, fmt.Errorf("%w: root %s cannot be a file", ErrConflictingPath, path)
		}
		return &Node{path: path, data: data}, nil
	}

	parentDepth := parent.path.Depth()
	if path.SharedPrefixDepth(parent.path) < parentDepth {
		return nil, fmt.Errorf("%w: %s is not under %s", ErrConflictingPath, path, parent.path)
	}
	if path.Depth() != parentDepth+1 {
		return nil, fmt.Errorf("%w: %s is not a direct child of %s", ErrNotFound, path, parent.path)
	}
	dir, ok := parent.data.(*dirData)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, parent.path)
	}

	n := &Node{path: path, parent: parent, data: data}
	if !dir.insert(n) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPresent, path)
	}
	return n, nil
}

// Path returns the node's absolute path.
func (n *Node) Path() fspath.Path {
	return n.path
}

// Parent returns the owning directory, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) IsFile() bool {
	_, ok := n.data.(*fileData)
	return ok
}

func (n *Node) IsDir() bool {
	_, ok := n.data.(*dirData)
	return ok
}

// Children returns the node's children in ascending path order. Files have
// none.
func (n *Node) Children() []*Node {
	if d, ok := n.data.(*dirData); ok {
		return d.list()
	}
	return nil
}

func (n *Node) NumChildren() int {
	if d, ok := n.data.(*dirData); ok {
		return d.children.Len()
	}
	return 0
}

// Child returns the child whose path equals path.
func (n *Node) Child(path fspath.Path) (child *Node, ok bool) {
	d, isDir := n.data.(*dirData)
	if !isDir {
		return nil, false
	}
	return d.lookup(&Node{path: path})
}

// Contents returns a file's contents, or nil for a directory.
func (n *Node) Contents() []byte {
	if f, ok := n.data.(*fileData); ok {
		return f.contents
	}
	return nil
}

// Length returns the size of a file's contents, or 0 for a directory.
func (n *Node) Length() int {
	return len(n.Contents())
}

// replaceContents swaps in contents and hands the previous contents back.
// ok is false for directories.
func (n *Node) replaceContents(contents []byte) (old []byte, ok bool) {
	f, isFile := n.data.(*fileData)
	if !isFile {
		return nil, false
	}
	old, f.contents = f.contents, contents
	return old, true
}

// unlink detaches n from its parent's children.
func (n *Node) unlink() {
	if n.parent == nil {
		return
	}
	if d, ok := n.parent.data.(*dirData); ok {
		d.remove(n)
	}
	n.parent = nil
}

// free unlinks n and destroys it together with all its descendants, deepest
// first. It returns the number of nodes destroyed.
func (n *Node) free() int {
	n.unlink()

	// worklist pre-order, then release in reverse so children go before parents
	order := []*Node{}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, cur)
		if d, ok := cur.data.(*dirData); ok {
			d.children.Ascend(func(c *Node) bool {
				stack = append(stack, c)
				return true
			})
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		order[i].release()
	}
	return len(order)
}

func (n *Node) release() {
	switch d := n.data.(type) {
	case *dirData:
		d.children.Clear(false)
	case *fileData:
		d.contents = nil
	}
	n.parent = nil
	n.data = nil
}

func (n *Node) String() string {
	return n.path.String()
}
