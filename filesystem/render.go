package filesystem

import "strings"

// Walk visits every node in pre-order, siblings in ascending path order,
// until fn returns false.
func (t *Tree) Walk(fn func(n *Node) bool) {
	if !t.initialized || t.root == nil {
		return
	}
	stack := []*Node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Paths lists every node's path in the order String renders them.
func (t *Tree) Paths() []string {
	paths := make([]string, 0, t.count)
	t.Walk(func(n *Node) bool {
		paths = append(paths, n.path.String())
		return true
	})
	return paths
}

// String renders the whole tree, one path per line in pre-order with each
// node emitted exactly once. An uninitialized tree renders as "".
func (t *Tree) String() string {
	var sb strings.Builder
	t.Walk(func(n *Node) bool {
		sb.WriteString(n.path.String())
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
