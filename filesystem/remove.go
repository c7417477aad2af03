package filesystem

import "fmt"

// RemoveDir removes the directory at path together with everything below it.
func (t *Tree) RemoveDir(path string) error {
	return t.remove("RemoveDir", path, false)
}

// RemoveFile removes the file at path.
func (t *Tree) RemoveFile(path string) error {
	return t.remove("RemoveFile", path, true)
}

func (t *Tree) remove(op string, pathStr string, isFile bool) error {
	logger := t.logger(op)
	t.assertValid(op)
	defer t.assertValid(op)

	n, err := t.findNode(pathStr)
	if err != nil {
		logger.Debug().Err(err).Str("path", pathStr).Msg("Failed to resolve path")
		return err
	}
	switch {
	case isFile && !n.IsFile():
		return fmt.Errorf("%w: %s", ErrNotAFile, n.path)
	case !isFile && n.IsFile():
		return fmt.Errorf("%w: %s", ErrNotADirectory, n.path)
	}

	wasRoot := n == t.root
	freed := n.free()
	t.count -= freed
	if wasRoot {
		t.root = nil
	}
	logger.Debug().Str("path", pathStr).Int("freed", freed).Msg("Removed subtree")
	return nil
}
