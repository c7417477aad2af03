package registry

import "github.com/brettbedarf/filetree/filesystem"

// TreeContext wraps a locked tree (plus any other acquired resources).
// Calling TreeContext.Close() unwinds all unlocking/cleanup callbacks in
// reverse order.
//
// NOTE: TreeContext itself is **not** thread-safe meaning references
// to it should not be shared between goroutines
type TreeContext struct {
	tree     *filesystem.Tree
	name     string
	closeFns []func()
}

// Tree returns the locked tree. It must not be used after Close.
func (ctx *TreeContext) Tree() *filesystem.Tree {
	return ctx.tree
}

func (ctx *TreeContext) Name() string {
	return ctx.name
}

// AddClose pushes a cleanup callback (e.g., unlock) onto the end of the stack.
func (ctx *TreeContext) AddClose(fn func()) {
	ctx.closeFns = append(ctx.closeFns, fn)
}

// Close unwinds all cleanup callbacks in reverse order.
// Safe to call even if ctx is nil or already closed, so you can
// `defer ctx.Close()` unconditionally.
//
// Example:
//
//	ctx, err := reg.Acquire(id)
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
func (ctx *TreeContext) Close() {
	if ctx == nil {
		return
	}
	for i := len(ctx.closeFns) - 1; i >= 0; i-- {
		ctx.closeFns[i]()
	}
	ctx.closeFns = nil
	ctx.tree = nil
}
