package filesystem

import (
	"errors"

	"github.com/brettbedarf/filetree/fspath"
)

// Errors returned by tree operations. Returned errors wrap one of these with
// the offending path; test with errors.Is.
var (
	ErrNotInitialized     = errors.New("tree not initialized")
	ErrAlreadyInitialized = errors.New("tree already initialized")
	ErrMalformedPath      = fspath.ErrMalformedPath
	// ErrConflictingPath means the path is not under the tree's root, or a
	// file was requested at root level.
	ErrConflictingPath   = errors.New("conflicting path")
	ErrNotFound          = errors.New("no such path")
	ErrAlreadyPresent    = errors.New("already in tree")
	ErrNotADirectory     = errors.New("not a directory")
	ErrNotAFile          = errors.New("not a file")
	ErrResourceExhausted = errors.New("resource exhausted")
)
