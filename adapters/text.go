package adapters

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/brettbedarf/filetree"
	"gopkg.in/yaml.v3"
)

// TextSource holds inline file contents.
type TextSource struct {
	Text string `yaml:"text"`
}

func decodeText(node *yaml.Node) (filetree.AdapterProvider, error) {
	var src TextSource
	if err := node.Decode(&src); err != nil {
		return nil, fmt.Errorf("text source: %w", err)
	}
	return &src, nil
}

func (s *TextSource) Adapter() filetree.ContentAdapter {
	return &bytesAdapter{data: []byte(s.Text), desc: "text"}
}

// Base64Source holds inline binary contents, standard encoding with padding.
type Base64Source struct {
	Data string `yaml:"data"`

	decoded []byte
}

func decodeBase64(node *yaml.Node) (filetree.AdapterProvider, error) {
	var src Base64Source
	if err := node.Decode(&src); err != nil {
		return nil, fmt.Errorf("base64 source: %w", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(src.Data)
	if err != nil {
		return nil, fmt.Errorf("base64 source: %w", err)
	}
	src.decoded = decoded
	return &src, nil
}

func (s *Base64Source) Adapter() filetree.ContentAdapter {
	return &bytesAdapter{data: s.decoded, desc: "base64"}
}

// bytesAdapter serves contents already held in memory. Every Read returns a
// fresh copy since the tree takes ownership of what it is given.
type bytesAdapter struct {
	data []byte
	desc string
}

func (a *bytesAdapter) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.data == nil {
		return nil, nil
	}
	out := make([]byte, len(a.data))
	copy(out, a.data)
	return out, nil
}

func (a *bytesAdapter) Describe() string {
	return a.desc
}
