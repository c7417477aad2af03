package filesystem

import (
	"fmt"

	"github.com/brettbedarf/filetree/fspath"
)

// InsertDir adds a directory at path, creating any missing ancestor
// directories like `mkdir -p`. Unlike mkdir -p, an existing path is an error.
func (t *Tree) InsertDir(path string) error {
	return t.insert("InsertDir", path, nil, false)
}

// InsertFile adds a file holding contents at path, creating any missing
// ancestor directories. The tree takes ownership of contents. The root is
// always a directory, so a path of depth 1 fails with ErrConflictingPath.
func (t *Tree) InsertFile(path string, contents []byte) error {
	return t.insert("InsertFile", path, contents, true)
}

// insert materializes every missing level of path below the deepest existing
// ancestor. Either the whole chain is linked in or, on any failure, nothing
// is.
func (t *Tree) insert(op string, pathStr string, contents []byte, isFile bool) error {
	logger := t.logger(op)
	t.assertValid(op)
	defer t.assertValid(op)

	if !t.initialized {
		return ErrNotInitialized
	}
	target, err := fspath.New(pathStr)
	if err != nil {
		logger.Debug().Err(err).Str("path", pathStr).Msg("Rejected malformed path")
		return err
	}

	anchor, err := t.traverse(target)
	if err != nil {
		logger.Debug().Err(err).Str("path", pathStr).Msg("Failed to locate insertion point")
		return err
	}

	level := 1
	// an existing file anywhere on the way, the target included, is never a
	// valid parent, so it wins over the already-present case
	switch {
	case anchor != nil && anchor.IsFile():
		return fmt.Errorf("%w: %s", ErrNotADirectory, anchor.path)
	case anchor == nil && t.root != nil:
		return fmt.Errorf("%w: %s is not under root %s", ErrConflictingPath, target, t.root.path)
	case anchor != nil && anchor.path.Equal(target):
		return fmt.Errorf("%w: %s", ErrAlreadyPresent, target)
	case anchor != nil:
		level = anchor.path.Depth() + 1
	}

	var first *Node
	created := 0
	parent := anchor
	for ; level <= target.Depth(); level++ {
		n, err := t.createLevel(target, level, parent, created, contents, isFile)
		if err != nil {
			if first != nil {
				first.free()
			}
			logger.Debug().Err(err).Str("path", pathStr).Int("rolledBack", created).Msg("Insertion aborted")
			return err
		}
		if first == nil {
			first = n
		}
		parent = n
		created++
	}

	if t.root == nil {
		t.root = first
	}
	t.count += created
	logger.Debug().Str("path", pathStr).Int("created", created).Msg("Inserted node(s)")
	return nil
}

// createLevel creates the node for target's prefix at depth level. Levels
// above the target are directories; the target level takes the requested
// type. pending is the number of nodes already created by this insertion.
func (t *Tree) createLevel(target fspath.Path, level int, parent *Node, pending int, contents []byte, isFile bool) (*Node, error) {
	prefix, err := target.Prefix(level)
	if err != nil {
		return nil, err
	}
	if limit := t.cfg.MaxNodes; limit > 0 && t.count+pending >= limit {
		return nil, fmt.Errorf("%w: node limit %d reached creating %s", ErrResourceExhausted, limit, prefix)
	}

	var data nodeData = newDirData()
	if isFile && level == target.Depth() {
		data = newFileData(contents)
	}
	return newNode(prefix, parent, data)
}
