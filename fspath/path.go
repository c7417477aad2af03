// Package fspath implements the normalized absolute paths that address nodes
// in a file tree. A path is a non-empty sequence of non-empty components
// joined by "/", e.g. "root/dir/file". Leading or trailing separators and
// empty components are rejected.
package fspath

import (
	"errors"
	"fmt"
	"strings"
)

// Separator delimits path components.
const Separator = "/"

var (
	// ErrMalformedPath is returned when a string is not a well-formed path.
	ErrMalformedPath = errors.New("malformed path")
	// ErrDepthOutOfRange is returned when a prefix depth is outside [1, Depth()].
	ErrDepthOutOfRange = errors.New("prefix depth out of range")
)

// Path is an immutable, parsed path. The zero value is the empty path and is
// never returned by New.
type Path struct {
	name  string
	comps []string
}

// New parses s into a Path.
func New(s string) (Path, error) {
	if s == "" {
		return Path{}, fmt.Errorf("%w: empty path", ErrMalformedPath)
	}
	comps := strings.Split(s, Separator)
	for i, c := range comps {
		if c == "" {
			return Path{}, fmt.Errorf("%w: %q has an empty component at index %d", ErrMalformedPath, s, i)
		}
	}
	return Path{name: s, comps: comps}, nil
}

// MustNew is like New but panics on a malformed path. Intended for tests and
// literals.
func MustNew(s string) Path {
	p, err := New(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the path in its slash-joined form.
func (p Path) String() string {
	return p.name
}

// Len returns the length of the rendered path in bytes.
func (p Path) Len() int {
	return len(p.name)
}

// IsZero reports whether p is the empty path.
func (p Path) IsZero() bool {
	return len(p.comps) == 0
}

// Depth returns the number of components.
func (p Path) Depth() int {
	return len(p.comps)
}

// Component returns the component at level i, counting from 0 at the root.
// ok is false if i is out of range.
func (p Path) Component(i int) (comp string, ok bool) {
	if i < 0 || i >= len(p.comps) {
		return "", false
	}
	return p.comps[i], true
}

// Base returns the last component, or "" for the zero path.
func (p Path) Base() string {
	base, _ := p.Component(p.Depth() - 1)
	return base
}

// Prefix returns the path formed by the first n components.
func (p Path) Prefix(n int) (Path, error) {
	if n < 1 || n > len(p.comps) {
		return Path{}, fmt.Errorf("%w: %d not in [1, %d] for %q", ErrDepthOutOfRange, n, len(p.comps), p.name)
	}
	if n == len(p.comps) {
		return p, nil
	}
	comps := p.comps[:n:n]
	return Path{name: strings.Join(comps, Separator), comps: comps}, nil
}

// SharedPrefixDepth returns the length of the longest common leading
// component sequence of p and other.
func (p Path) SharedPrefixDepth(other Path) int {
	n := min(len(p.comps), len(other.comps))
	for i := 0; i < n; i++ {
		if p.comps[i] != other.comps[i] {
			return i
		}
	}
	return n
}

// Compare orders paths lexicographically over their component sequences.
// It returns -1, 0 or +1.
func (p Path) Compare(other Path) int {
	n := min(len(p.comps), len(other.comps))
	for i := 0; i < n; i++ {
		if c := strings.Compare(p.comps[i], other.comps[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p.comps) < len(other.comps):
		return -1
	case len(p.comps) > len(other.comps):
		return 1
	}
	return 0
}

// CompareString compares the rendered path with a raw string.
func (p Path) CompareString(s string) int {
	return strings.Compare(p.name, s)
}

// Equal reports whether p and other name the same path.
func (p Path) Equal(other Path) bool {
	return p.Compare(other) == 0
}
