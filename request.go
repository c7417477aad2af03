package filetree

import (
	"errors"
	"fmt"
)

// OpType names the tree operation a [Request] performs.
type OpType string

const (
	MkdirOp   OpType = "mkdir"   // insert a directory and any missing ancestors
	CreateOp  OpType = "create"  // insert a file and any missing ancestors
	RmdirOp   OpType = "rmdir"   // remove a directory subtree
	RmOp      OpType = "rm"      // remove a file
	ReplaceOp OpType = "replace" // swap a file's contents
	StatOp    OpType = "stat"    // report type and size
)

var ErrUnknownOp = errors.New("unknown operation")

// Request is one operation against a tree. Sources are only consulted by
// CreateOp and ReplaceOp; a create with no sources makes an empty file.
type Request struct {
	Op      OpType
	Path    string
	Sources []FileSource
}

// Validate checks the request is well formed before it is run. Path syntax
// is left to the tree.
func (r *Request) Validate() error {
	switch r.Op {
	case MkdirOp, CreateOp, RmdirOp, RmOp, StatOp:
	case ReplaceOp:
		if len(r.Sources) == 0 {
			return fmt.Errorf("%w: replace of %s needs at least one source", ErrNoSources, r.Path)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, r.Op)
	}
	return nil
}

// IsMutation reports whether running the request may change the tree.
func (r *Request) IsMutation() bool {
	return r.Op != StatOp
}

func (r *Request) String() string {
	return fmt.Sprintf("%s %s", r.Op, r.Path)
}
