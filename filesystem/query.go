package filesystem

// StatInfo describes a node found by Stat. Size is only meaningful for files.
type StatInfo struct {
	IsFile bool
	Size   int
}

// ContainsDir reports whether path names a directory. Any lookup failure
// reports false.
func (t *Tree) ContainsDir(path string) bool {
	n, err := t.findNode(path)
	return err == nil && n.IsDir()
}

// ContainsFile reports whether path names a file. Any lookup failure reports
// false.
func (t *Tree) ContainsFile(path string) bool {
	n, err := t.findNode(path)
	return err == nil && n.IsFile()
}

// Stat reports whether path is a file and, if so, its size. Lookup errors are
// returned unchanged along with a zero StatInfo.
func (t *Tree) Stat(path string) (StatInfo, error) {
	n, err := t.findNode(path)
	if err != nil {
		return StatInfo{}, err
	}
	if n.IsFile() {
		return StatInfo{IsFile: true, Size: n.Length()}, nil
	}
	return StatInfo{}, nil
}

// GetContents returns the contents of the file at path. ok is false if the
// path cannot be resolved or names a directory; a file may have nil contents
// with ok true.
func (t *Tree) GetContents(path string) (contents []byte, ok bool) {
	n, err := t.findNode(path)
	if err != nil || !n.IsFile() {
		return nil, false
	}
	return n.Contents(), true
}

// ReplaceContents swaps in new contents for the file at path and returns the
// previous contents, which the caller now owns. ok is false if the path
// cannot be resolved or names a directory.
func (t *Tree) ReplaceContents(path string, contents []byte) (old []byte, ok bool) {
	logger := t.logger("ReplaceContents")
	t.assertValid("ReplaceContents")
	defer t.assertValid("ReplaceContents")

	n, err := t.findNode(path)
	if err != nil {
		return nil, false
	}
	old, ok = n.replaceContents(contents)
	if ok {
		logger.Debug().Str("path", path).Int("oldSize", len(old)).Int("newSize", len(contents)).Msg("Replaced contents")
	}
	return old, ok
}
