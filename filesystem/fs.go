package filesystem

import (
	"github.com/brettbedarf/filetree/checker"
	"github.com/brettbedarf/filetree/config"
	"github.com/brettbedarf/filetree/internal/util"
	"github.com/google/uuid"
)

// Tree is an in-memory hierarchy of directories and files addressed by
// [fspath.Path]. A Tree is not safe for concurrent use; callers serialize
// access (see the registry package).
//
// The lifecycle mirrors a classic init/operate/destroy contract: a new Tree
// is uninitialized until Init, and Destroy frees every node and returns it to
// the uninitialized state.
type Tree struct {
	id          uuid.UUID
	cfg         *config.Config
	initialized bool
	root        *Node // nil exactly when the tree is empty
	count       int   // live nodes
}

// NewTree returns an uninitialized tree. A nil cfg uses the defaults.
func NewTree(cfg *config.Config) *Tree {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Tree{id: uuid.New(), cfg: cfg}
}

// ID identifies the tree in logs and registries.
func (t *Tree) ID() uuid.UUID {
	return t.id
}

// Init moves the tree into the initialized, empty state.
func (t *Tree) Init() error {
	logger := t.logger("Init")
	t.assertValid("Init")

	if t.initialized {
		logger.Debug().Msg("Tree already initialized")
		return ErrAlreadyInitialized
	}
	t.initialized = true
	t.root = nil
	t.count = 0

	t.assertValid("Init")
	logger.Trace().Msg("Tree initialized")
	return nil
}

// Destroy frees every node and returns the tree to the uninitialized state.
func (t *Tree) Destroy() error {
	logger := t.logger("Destroy")
	t.assertValid("Destroy")

	if !t.initialized {
		return ErrNotInitialized
	}
	freed := 0
	if t.root != nil {
		freed = t.root.free()
		t.count -= freed
		t.root = nil
	}
	t.initialized = false

	t.assertValid("Destroy")
	logger.Debug().Int("freed", freed).Msg("Tree destroyed")
	return nil
}

func (t *Tree) IsInitialized() bool {
	return t.initialized
}

// Root returns the root node, or nil if the tree is empty.
func (t *Tree) Root() *Node {
	return t.root
}

// Count returns the number of live nodes.
func (t *Tree) Count() int {
	return t.count
}

// Check runs the invariant checker against the tree's current state.
func (t *Tree) Check() error {
	return checker.Check(t.initialized, t.root, t.count)
}

// assertValid panics on an invariant violation when CheckInvariants is on.
func (t *Tree) assertValid(op string) {
	if !t.cfg.CheckInvariants {
		return
	}
	if err := t.Check(); err != nil {
		logger := t.logger(op)
		logger.Error().Err(err).Msg("Tree invariant check failed")
		panic(err)
	}
}

func (t *Tree) logger(op string) util.Logger {
	return util.GetLogger("Tree."+op).With().Str("tree", t.id.String()).Logger()
}
