package filetree

import "github.com/brettbedarf/filetree/filesystem"

// TreeOperator defines the tree operations that request runners need.
// [*filesystem.Tree] is the canonical implementation.
type TreeOperator interface {
	InsertDir(path string) error
	InsertFile(path string, contents []byte) error
	RemoveDir(path string) error
	RemoveFile(path string) error
	Stat(path string) (filesystem.StatInfo, error)
	ReplaceContents(path string, contents []byte) (old []byte, ok bool)
	Count() int
	Check() error
	String() string
}

var _ TreeOperator = (*filesystem.Tree)(nil)
