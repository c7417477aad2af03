package filesystem

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/brettbedarf/filetree/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.CheckInvariants = true
	return cfg
}

// newTestTree returns an initialized tree that checks its invariants around
// every mutation.
func newTestTree(t *testing.T) *Tree {
	t.Helper()
	tree := NewTree(createTestConfig())
	require.NoError(t, tree.Init())
	return tree
}

// countNodes counts the nodes below and including n without trusting any
// bookkeeping.
func countNodes(n *Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children() {
		total += countNodes(c)
	}
	return total
}

func TestTree_Lifecycle(t *testing.T) {
	t.Parallel()

	tree := NewTree(createTestConfig())
	assert.False(t, tree.IsInitialized())
	assert.NoError(t, tree.Check())

	assert.ErrorIs(t, tree.Destroy(), ErrNotInitialized)
	require.NoError(t, tree.Init())
	assert.ErrorIs(t, tree.Init(), ErrAlreadyInitialized)

	require.NoError(t, tree.InsertFile("a/b/c", []byte("x")))
	assert.Equal(t, 3, tree.Count())

	require.NoError(t, tree.Destroy())
	assert.False(t, tree.IsInitialized())
	assert.Nil(t, tree.Root())
	assert.Equal(t, 0, tree.Count())
	assert.NoError(t, tree.Check())

	// a destroyed tree can be initialized again
	require.NoError(t, tree.Init())
	assert.Equal(t, "", tree.String())
}

func TestNewTree_NilConfig(t *testing.T) {
	t.Parallel()

	tree := NewTree(nil)
	require.NoError(t, tree.Init())
	require.NoError(t, tree.InsertDir("a"))
	assert.NotEqual(t, tree.ID(), NewTree(nil).ID())
}

func TestTree_NotInitialized(t *testing.T) {
	t.Parallel()

	tree := NewTree(createTestConfig())

	assert.ErrorIs(t, tree.InsertDir("a"), ErrNotInitialized)
	assert.ErrorIs(t, tree.InsertFile("a/b", nil), ErrNotInitialized)
	assert.ErrorIs(t, tree.RemoveDir("a"), ErrNotInitialized)
	assert.ErrorIs(t, tree.RemoveFile("a/b"), ErrNotInitialized)
	_, err := tree.Stat("a")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.False(t, tree.ContainsDir("a"))
	assert.False(t, tree.ContainsFile("a/b"))
	_, ok := tree.GetContents("a/b")
	assert.False(t, ok)
	_, ok = tree.ReplaceContents("a/b", nil)
	assert.False(t, ok)
	assert.Equal(t, "", tree.String())
	assert.Empty(t, tree.Paths())
}

// init empty tree, insert a, a/b, file a/b/c, stat it, remove a, listing empty
func TestTree_ScenarioInsertStatRemove(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)

	require.NoError(t, tree.InsertDir("a"))
	require.NoError(t, tree.InsertDir("a/b"))
	require.NoError(t, tree.InsertFile("a/b/c", []byte("hello")))
	assert.Equal(t, 3, tree.Count())

	info, err := tree.Stat("a/b/c")
	require.NoError(t, err)
	assert.Equal(t, StatInfo{IsFile: true, Size: 5}, info)

	require.NoError(t, tree.RemoveDir("a"))
	assert.Equal(t, 0, tree.Count())
	assert.Nil(t, tree.Root())
	assert.Equal(t, "", tree.String())
}

func TestTree_ScenarioFileAtRoot(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)

	err := tree.InsertFile("root", []byte("data"))
	assert.ErrorIs(t, err, ErrConflictingPath)
	assert.Equal(t, 0, tree.Count())
	assert.Nil(t, tree.Root())
}

func TestTree_ScenarioImplicitAncestors(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)

	require.NoError(t, tree.InsertDir("x/y"))
	assert.Equal(t, 2, tree.Count())
	assert.True(t, tree.ContainsDir("x"))
	assert.True(t, tree.ContainsDir("x/y"))
	assert.Equal(t, "x\nx/y\n", tree.String())
}

func TestTree_InsertDir(t *testing.T) {
	t.Parallel()

	t.Run("AlreadyPresent", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertDir("a/b"))
		before := tree.Fingerprint()

		err := tree.InsertDir("a/b")
		assert.ErrorIs(t, err, ErrAlreadyPresent)
		assert.Equal(t, 2, tree.Count())
		assert.Equal(t, before, tree.Fingerprint())

		assert.ErrorIs(t, tree.InsertDir("a"), ErrAlreadyPresent)
	})

	t.Run("ConflictingRoot", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertDir("a"))
		assert.ErrorIs(t, tree.InsertDir("b"), ErrConflictingPath)
		assert.ErrorIs(t, tree.InsertDir("b/c"), ErrConflictingPath)
		assert.Equal(t, 1, tree.Count())
	})

	t.Run("OverExistingFile", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertFile("a/f", []byte("x")))
		before := tree.Fingerprint()

		assert.ErrorIs(t, tree.InsertDir("a/f"), ErrNotADirectory)
		assert.Equal(t, 2, tree.Count())
		assert.Equal(t, before, tree.Fingerprint())
		assert.True(t, tree.ContainsFile("a/f"))
	})

	t.Run("UnderFile", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertFile("a/f", nil))
		assert.ErrorIs(t, tree.InsertDir("a/f/g"), ErrNotADirectory)
		assert.ErrorIs(t, tree.InsertDir("a/f/g/h"), ErrNotADirectory)
		assert.Equal(t, 2, tree.Count())
	})

	t.Run("MalformedPath", func(t *testing.T) {
		tree := newTestTree(t)
		for _, p := range []string{"", "/a", "a/", "a//b"} {
			assert.ErrorIs(t, tree.InsertDir(p), ErrMalformedPath, "path %q", p)
		}
		assert.Equal(t, 0, tree.Count())
	})

	t.Run("ExtendsExistingChain", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertDir("a/b"))
		require.NoError(t, tree.InsertDir("a/b/c/d"))
		assert.Equal(t, 4, tree.Count())
		assert.Equal(t, []string{"a", "a/b", "a/b/c", "a/b/c/d"}, tree.Paths())
	})
}

func TestTree_InsertFile(t *testing.T) {
	t.Parallel()

	t.Run("CreatesAncestors", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertFile("a/b/c", []byte("hello")))
		assert.Equal(t, 3, tree.Count())
		assert.True(t, tree.ContainsDir("a/b"))
		assert.True(t, tree.ContainsFile("a/b/c"))
		assert.False(t, tree.ContainsDir("a/b/c"))
		assert.False(t, tree.ContainsFile("a/b"))
	})

	t.Run("OverExistingFile", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertFile("a/f", []byte("1")))
		before := tree.Fingerprint()

		assert.ErrorIs(t, tree.InsertFile("a/f", []byte("2")), ErrNotADirectory)
		assert.ErrorIs(t, tree.InsertFile("a/f", nil), ErrNotADirectory)
		assert.Equal(t, 2, tree.Count())
		assert.Equal(t, before, tree.Fingerprint())
		got, ok := tree.GetContents("a/f")
		require.True(t, ok)
		assert.Equal(t, []byte("1"), got)
	})

	t.Run("OverExistingDir", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertDir("a/d"))
		assert.ErrorIs(t, tree.InsertFile("a/d", []byte("x")), ErrAlreadyPresent)
		assert.True(t, tree.ContainsDir("a/d"))
	})

	t.Run("UnderFile", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertFile("a/f", nil))
		assert.ErrorIs(t, tree.InsertFile("a/f/g", nil), ErrNotADirectory)
	})

	t.Run("NilContents", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertFile("a/empty", nil))
		got, ok := tree.GetContents("a/empty")
		assert.True(t, ok)
		assert.Nil(t, got)
		info, err := tree.Stat("a/empty")
		require.NoError(t, err)
		assert.Equal(t, StatInfo{IsFile: true, Size: 0}, info)
	})
}

func TestTree_RollbackOnResourceExhaustion(t *testing.T) {
	t.Parallel()

	cfg := createTestConfig()
	cfg.MaxNodes = 4
	tree := NewTree(cfg)
	require.NoError(t, tree.Init())
	require.NoError(t, tree.InsertDir("a/b"))

	before := tree.Fingerprint()
	rootBefore := tree.Root()

	// needs 3 new nodes, only 2 fit: the first two are created then torn down
	err := tree.InsertFile("a/b/c/d/e", []byte("x"))
	require.ErrorIs(t, err, ErrResourceExhausted)

	assert.Equal(t, 2, tree.Count())
	assert.Same(t, rootBefore, tree.Root())
	assert.Equal(t, before, tree.Fingerprint())
	assert.False(t, tree.ContainsDir("a/b/c"))
	assert.NoError(t, tree.Check())

	// exactly at the limit still succeeds
	require.NoError(t, tree.InsertFile("a/b/c/d", nil))
	assert.Equal(t, 4, tree.Count())
	assert.ErrorIs(t, tree.InsertDir("a/z"), ErrResourceExhausted)
}

func TestTree_RollbackFromEmpty(t *testing.T) {
	t.Parallel()

	cfg := createTestConfig()
	cfg.MaxNodes = 2
	tree := NewTree(cfg)
	require.NoError(t, tree.Init())

	err := tree.InsertDir("a/b/c")
	require.ErrorIs(t, err, ErrResourceExhausted)
	assert.Nil(t, tree.Root())
	assert.Equal(t, 0, tree.Count())
	assert.NoError(t, tree.Check())
}

func TestTree_Remove(t *testing.T) {
	t.Parallel()

	t.Run("WrongType", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertFile("a/f", nil))
		assert.ErrorIs(t, tree.RemoveDir("a/f"), ErrNotADirectory)
		assert.ErrorIs(t, tree.RemoveFile("a"), ErrNotAFile)
		assert.Equal(t, 2, tree.Count())
	})

	t.Run("NotFound", func(t *testing.T) {
		tree := newTestTree(t)
		assert.ErrorIs(t, tree.RemoveDir("a"), ErrNotFound)
		require.NoError(t, tree.InsertDir("a/b"))
		assert.ErrorIs(t, tree.RemoveDir("a/c"), ErrNotFound)
		assert.ErrorIs(t, tree.RemoveFile("a/b/c"), ErrNotFound)
		assert.ErrorIs(t, tree.RemoveDir("z"), ErrConflictingPath)
		assert.ErrorIs(t, tree.RemoveDir("a//b"), ErrMalformedPath)
	})

	t.Run("CountConservation", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertFile("r/a/1", []byte("1")))
		require.NoError(t, tree.InsertFile("r/a/2", []byte("2")))
		require.NoError(t, tree.InsertFile("r/a/b/3", []byte("3")))
		require.NoError(t, tree.InsertFile("r/c/4", []byte("4")))

		sub, err := tree.findNode("r/a")
		require.NoError(t, err)
		subtree := countNodes(sub)
		before := tree.Count()

		require.NoError(t, tree.RemoveDir("r/a"))
		assert.Equal(t, before-subtree, tree.Count())
		assert.Equal(t, countNodes(tree.Root()), tree.Count())
		assert.Equal(t, []string{"r", "r/c", "r/c/4"}, tree.Paths())
	})

	t.Run("File", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertFile("a/f", nil))
		require.NoError(t, tree.RemoveFile("a/f"))
		assert.Equal(t, 1, tree.Count())
		assert.False(t, tree.ContainsFile("a/f"))
		assert.True(t, tree.ContainsDir("a"))
	})

	t.Run("RootThenNewRoot", func(t *testing.T) {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertDir("a/b"))
		require.NoError(t, tree.RemoveDir("a"))
		require.NoError(t, tree.InsertDir("z"))
		assert.Equal(t, "z", tree.Root().Path().String())
	})
}

func TestTree_Contents(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	require.NoError(t, tree.InsertFile("a/f", []byte("C")))

	got, ok := tree.GetContents("a/f")
	require.True(t, ok)
	assert.Equal(t, []byte("C"), got)

	old, ok := tree.ReplaceContents("a/f", []byte("new contents"))
	require.True(t, ok)
	assert.Equal(t, []byte("C"), old)

	info, err := tree.Stat("a/f")
	require.NoError(t, err)
	assert.Equal(t, 12, info.Size)

	_, ok = tree.GetContents("a")
	assert.False(t, ok)
	_, ok = tree.ReplaceContents("a", []byte("x"))
	assert.False(t, ok)
	_, ok = tree.GetContents("a/missing")
	assert.False(t, ok)
	_, ok = tree.ReplaceContents("bad//path", []byte("x"))
	assert.False(t, ok)
}

func TestTree_Stat(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	require.NoError(t, tree.InsertFile("a/f", []byte("abc")))

	info, err := tree.Stat("a")
	require.NoError(t, err)
	assert.Equal(t, StatInfo{IsFile: false}, info)

	_, err = tree.Stat("a/nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = tree.Stat("b")
	assert.ErrorIs(t, err, ErrConflictingPath)
	_, err = tree.Stat("")
	assert.ErrorIs(t, err, ErrMalformedPath)
}

func TestTree_String(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	for _, p := range []string{"r/b/2", "r/a", "r/b/1", "r/c"} {
		require.NoError(t, tree.InsertFile(p, nil))
	}
	require.NoError(t, tree.InsertDir("r/b/d/e"))

	expected := "r\nr/a\nr/b\nr/b/1\nr/b/2\nr/b/d\nr/b/d/e\nr/c\n"
	assert.Equal(t, expected, tree.String())
	assert.Len(t, tree.Paths(), tree.Count())
}

func TestTree_Walk_Stops(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	require.NoError(t, tree.InsertDir("a/b/c"))

	visited := 0
	tree.Walk(func(n *Node) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

func TestTree_Fingerprint(t *testing.T) {
	t.Parallel()

	build := func(contents string) *Tree {
		tree := newTestTree(t)
		require.NoError(t, tree.InsertFile("a/f", []byte(contents)))
		require.NoError(t, tree.InsertDir("a/d"))
		return tree
	}

	assert.Equal(t, build("x").Fingerprint(), build("x").Fingerprint())
	assert.NotEqual(t, build("x").Fingerprint(), build("y").Fingerprint())

	empty := NewTree(nil)
	uninit := empty.Fingerprint()
	require.NoError(t, empty.Init())
	assert.NotEqual(t, uninit, empty.Fingerprint())
	assert.Len(t, empty.Fingerprint().String(), 64)
}

func TestTree_CheckInvariantsPanics(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	require.NoError(t, tree.InsertDir("a"))
	tree.count++ // corrupt the bookkeeping

	assert.Panics(t, func() { _ = tree.InsertDir("a/b") })
}

func TestTree_CheckDisabledDoesNotPanic(t *testing.T) {
	t.Parallel()

	tree := NewTree(config.NewDefaultConfig())
	require.NoError(t, tree.Init())
	require.NoError(t, tree.InsertDir("a"))
	tree.count++

	assert.NotPanics(t, func() { _ = tree.InsertDir("a/b") })
	assert.Error(t, tree.Check())
}

// Random insert/remove sequences must keep every invariant; the tree panics
// on the first violation since CheckInvariants is on.
func TestTree_RandomOperationsPreserveInvariants(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	names := []string{"a", "b", "c", "d"}
	randomPath := func() string {
		depth := 1 + rng.Intn(4)
		p := "r"
		for i := 1; i < depth; i++ {
			p += "/" + names[rng.Intn(len(names))]
		}
		return p
	}

	tree := newTestTree(t)
	for i := 0; i < 2000; i++ {
		p := randomPath()
		before := tree.Fingerprint()
		countBefore := tree.Count()

		var err error
		switch rng.Intn(4) {
		case 0:
			err = tree.InsertDir(p)
		case 1:
			err = tree.InsertFile(p, []byte(fmt.Sprintf("%d", i)))
		case 2:
			err = tree.RemoveDir(p)
		case 3:
			err = tree.RemoveFile(p)
		}

		require.NoError(t, tree.Check(), "op %d on %s", i, p)
		assert.Equal(t, countNodes(tree.Root()), tree.Count())
		if err != nil {
			assert.Equal(t, before, tree.Fingerprint(), "failed op %d on %s changed the tree", i, p)
			assert.Equal(t, countBefore, tree.Count())
		}
	}
}
