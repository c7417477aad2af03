// Package checker re-derives the structural invariants of a file tree from
// scratch. It never mutates the tree and does not trust any bookkeeping of the
// engine beyond the (initialized, root, count) triple it is handed.
package checker

import (
	"errors"
	"fmt"

	"github.com/brettbedarf/filetree/fspath"
)

// ErrInvariant is wrapped by every violation reported by Check.
var ErrInvariant = errors.New("tree invariant violated")

// Node is the read-only view the checker needs of a tree vertex. N is the
// concrete node type itself, so Parent and Children stay strongly typed.
type Node[N any] interface {
	comparable
	Path() fspath.Path
	Parent() N
	IsFile() bool
	Children() []N
}

// Check verifies the tree described by (initialized, root, count) and returns
// the first violation found, or nil.
func Check[N Node[N]](initialized bool, root N, count int) error {
	var none N
	hasRoot := root != none

	if !initialized {
		if count != 0 {
			return violation("not initialized, but count is %d", count)
		}
		if hasRoot {
			return violation("not initialized, but root %q is set", root.Path())
		}
		return nil
	}

	if !hasRoot && count != 0 {
		return violation("has no root, but count is %d", count)
	}
	if hasRoot && count == 0 {
		return violation("has root %q, but count is 0", root.Path())
	}
	if !hasRoot {
		return nil
	}

	if p := root.Parent(); p != none {
		return violation("root %q has parent %q", root.Path(), p.Path())
	}

	visited, err := walk(root)
	if err != nil {
		return err
	}
	if visited != count {
		return violation("count not tracked correctly: visited %d nodes, count is %d", visited, count)
	}
	return nil
}

// CheckNode validates a single node against its parent link.
func CheckNode[N Node[N]](n N) error {
	var none N
	if n == none {
		return violation("a node is a nil pointer")
	}
	parent := n.Parent()
	if parent == none {
		return nil
	}
	np, pp := n.Path(), parent.Path()
	if np.SharedPrefixDepth(pp) != pp.Depth() || np.Depth() != pp.Depth()+1 {
		return violation("parent-child nodes don't have parent-child paths: (%s) (%s)", pp, np)
	}
	if parent.IsFile() {
		return violation("parent %q of %q is a file", pp, np)
	}
	return nil
}

// walk performs a pre-order traversal, failing fast, and returns the number of
// nodes visited.
func walk[N Node[N]](n N) (int, error) {
	if err := CheckNode(n); err != nil {
		return 0, err
	}
	children := n.Children()
	if n.IsFile() && len(children) != 0 {
		return 0, violation("file %q has %d children", n.Path(), len(children))
	}
	if err := checkSiblings(n, children); err != nil {
		return 0, err
	}

	visited := 1
	var none N
	for _, child := range children {
		if child == none {
			return 0, violation("directory %q has a nil child", n.Path())
		}
		if child.Parent() != n {
			return 0, violation("child %q does not point back to parent %q", child.Path(), n.Path())
		}
		c, err := walk(child)
		if err != nil {
			return 0, err
		}
		visited += c
	}
	return visited, nil
}

// checkSiblings requires pairwise distinct, strictly increasing child paths.
func checkSiblings[N Node[N]](n N, children []N) error {
	if len(children) < 2 {
		return nil
	}
	var none N
	for i := 0; i < len(children); i++ {
		for j := i + 1; j < len(children); j++ {
			if children[i] == none || children[j] == none {
				continue // reported by the walk
			}
			a, b := children[i].Path(), children[j].Path()
			switch c := a.Compare(b); {
			case c == 0:
				return violation("two children of %q have the same path %q", n.Path(), a)
			case c > 0:
				return violation("children of %q are not in lexicographic order: %q before %q", n.Path(), a, b)
			}
		}
	}
	return nil
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
