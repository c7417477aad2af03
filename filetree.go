package filetree

import (
	"github.com/brettbedarf/filetree/config"
	"github.com/brettbedarf/filetree/filesystem"
)

// New creates an initialized, empty tree given your config.
func New(cfg *config.Config) (*filesystem.Tree, error) {
	t := filesystem.NewTree(cfg)
	if err := t.Init(); err != nil {
		return nil, err
	}
	return t, nil
}
