// Package registry keeps several named trees alive side by side and
// serializes access to each of them.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/brettbedarf/filetree/config"
	"github.com/brettbedarf/filetree/filesystem"
	"github.com/brettbedarf/filetree/internal/util"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
)

var ErrUnknownTree = errors.New("no such tree")

// handle guards one tree. removed is set under mu once the tree has been
// destroyed so late acquirers back off.
type handle struct {
	mu      sync.Mutex
	name    string
	tree    *filesystem.Tree
	removed bool
}

// Info describes a registered tree.
type Info struct {
	ID   uuid.UUID
	Name string
}

// Registry maps tree IDs to live trees. It is safe for concurrent use; each
// tree is only ever touched by the holder of its [TreeContext].
type Registry struct {
	cfg   *config.Config
	trees *xsync.Map[uuid.UUID, *handle]
}

// New returns an empty registry whose trees share cfg. A nil cfg uses the
// defaults.
func New(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Registry{cfg: cfg, trees: xsync.NewMap[uuid.UUID, *handle]()}
}

// Create initializes a new empty tree and returns its ID.
func (r *Registry) Create(name string) (uuid.UUID, error) {
	t := filesystem.NewTree(r.cfg)
	if err := t.Init(); err != nil {
		return uuid.Nil, err
	}
	r.trees.Store(t.ID(), &handle{name: name, tree: t})
	logger := util.GetLogger("Registry")
	logger.Debug().Str("tree", t.ID().String()).Str("name", name).Msg("Tree created")
	return t.ID(), nil
}

// Acquire locks the tree with the given ID and returns a context for it.
// The caller must Close the context to release the tree.
func (r *Registry) Acquire(id uuid.UUID) (*TreeContext, error) {
	h, ok := r.trees.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTree, id)
	}
	h.mu.Lock()
	if h.removed {
		h.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownTree, id)
	}
	ctx := &TreeContext{tree: h.tree, name: h.name}
	ctx.AddClose(h.mu.Unlock)
	return ctx, nil
}

// Remove destroys the tree and forgets it. It waits for any current holder
// to Close first.
func (r *Registry) Remove(id uuid.UUID) error {
	h, ok := r.trees.LoadAndDelete(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTree, id)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removed = true
	return h.tree.Destroy()
}

// List returns every registered tree ordered by name, then ID.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, r.trees.Size())
	r.trees.Range(func(id uuid.UUID, h *handle) bool {
		infos = append(infos, Info{ID: id, Name: h.name})
		return true
	})
	slices.SortFunc(infos, func(a, b Info) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return infos
}

// Len returns the number of registered trees.
func (r *Registry) Len() int {
	return r.trees.Size()
}
