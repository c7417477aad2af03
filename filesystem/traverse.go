package filesystem

import (
	"fmt"

	"github.com/brettbedarf/filetree/fspath"
)

// traverse walks from the root as far as possible along target's prefixes
// and returns the deepest node reached, which may be a strict ancestor of
// target. It returns nil with no error for an empty tree.
func (t *Tree) traverse(target fspath.Path) (*Node, error) {
	if t.root == nil {
		return nil, nil
	}

	prefix, err := target.Prefix(1)
	if err != nil {
		return nil, err
	}
	if !t.root.path.Equal(prefix) {
		return nil, fmt.Errorf("%w: %s is not under root %s", ErrConflictingPath, target, t.root.path)
	}

	cur := t.root
	for depth := 2; depth <= target.Depth(); depth++ {
		prefix, err := target.Prefix(depth)
		if err != nil {
			return nil, err
		}
		child, ok := cur.Child(prefix)
		if !ok {
			break
		}
		cur = child
	}
	return cur, nil
}

// findNode resolves pathStr to the node with exactly that path.
func (t *Tree) findNode(pathStr string) (*Node, error) {
	if !t.initialized {
		return nil, ErrNotInitialized
	}
	p, err := fspath.New(pathStr)
	if err != nil {
		return nil, err
	}
	n, err := t.traverse(p)
	if err != nil {
		return nil, err
	}
	if n == nil || !n.path.Equal(p) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	return n, nil
}
