package adapters

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/brettbedarf/filetree"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

var ErrSourceTooLarge = errors.New("source file exceeds size limit")

// LocalFileSource reads contents from a file on the host. A positive
// MaxSize rejects larger files before they are read.
type LocalFileSource struct {
	Path    string `yaml:"path"`
	MaxSize uint64 `yaml:"max_size,omitempty"`
}

func decodeFile(node *yaml.Node) (filetree.AdapterProvider, error) {
	var src LocalFileSource
	if err := node.Decode(&src); err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	if src.Path == "" {
		return nil, errors.New("file source: path is required")
	}
	return &src, nil
}

func (s *LocalFileSource) Adapter() filetree.ContentAdapter {
	return &localFileAdapter{src: s}
}

type localFileAdapter struct {
	src *LocalFileSource
}

func (a *localFileAdapter) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.src.MaxSize > 0 {
		info, err := os.Stat(a.src.Path)
		if err != nil {
			return nil, err
		}
		if size := uint64(info.Size()); size > a.src.MaxSize {
			return nil, fmt.Errorf("%w: %s is %s, limit %s", ErrSourceTooLarge,
				a.src.Path, humanize.IBytes(size), humanize.IBytes(a.src.MaxSize))
		}
	}
	return os.ReadFile(a.src.Path)
}

func (a *localFileAdapter) Describe() string {
	return "file " + a.src.Path
}
