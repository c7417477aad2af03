package requests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/brettbedarf/filetree"
	"github.com/brettbedarf/filetree/adapters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *adapters.Registry {
	r := adapters.NewRegistry()
	adapters.RegisterBuiltins(r)
	return r
}

func TestUnmarshal_YAML(t *testing.T) {
	t.Parallel()

	manifest := `
- op: mkdir
  path: a/b
- op: create
  path: a/b/c
  sources:
    - type: text
      text: fallback
      priority: 9
    - type: base64
      data: aGVsbG8=
- op: stat
  path: a/b/c
`
	reqs, err := Unmarshal([]byte(manifest), newTestRegistry())
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	assert.Equal(t, filetree.MkdirOp, reqs[0].Op)
	assert.Equal(t, "a/b", reqs[0].Path)
	assert.Empty(t, reqs[0].Sources)

	create := reqs[1]
	assert.Equal(t, filetree.CreateOp, create.Op)
	require.Len(t, create.Sources, 2)
	assert.Equal(t, 9, create.Sources[0].Priority)
	assert.Equal(t, 1, create.Sources[1].Priority, "priority defaults to the source index")

	data, err := filetree.ResolveContents(context.Background(), create.Sources)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	assert.Equal(t, filetree.StatOp, reqs[2].Op)
}

func TestUnmarshal_JSON(t *testing.T) {
	t.Parallel()

	manifest := `[{"op": "mkdir", "path": "r"}, {"op": "create", "path": "r/f", "sources": [{"type": "text", "text": "x"}]}]`
	reqs, err := Unmarshal([]byte(manifest), newTestRegistry())
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "r/f", reqs[1].Path)
}

func TestUnmarshal_Empty(t *testing.T) {
	t.Parallel()

	reqs, err := Unmarshal(nil, newTestRegistry())
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestUnmarshal_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest string
		wantErr  error
	}{
		{"not a list", `op: mkdir`, nil},
		{"unknown op", `[{op: chmod, path: a}]`, filetree.ErrUnknownOp},
		{"unknown source", `[{op: create, path: a/f, sources: [{type: ftp}]}]`, adapters.ErrUnknownType},
		{"untyped source", `[{op: create, path: a/f, sources: [{text: x}]}]`, adapters.ErrMissingType},
		{"replace without source", `[{op: replace, path: a/f}]`, filetree.ErrNoSources},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.manifest), newTestRegistry())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUnmarshalFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- {op: mkdir, path: a}\n"), 0o600))

	reqs, err := UnmarshalFile(path, newTestRegistry())
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	_, err = UnmarshalFile(filepath.Join(t.TempDir(), "missing.yaml"), newTestRegistry())
	assert.True(t, os.IsNotExist(err))
}
