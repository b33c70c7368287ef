package task

import "sync/atomic"

// Cancel is a cooperative cancellation flag shared by every step of one
// run. It is polled at stepping points; work already handed to an
// executor is never forcibly aborted. Once set, a flag is never cleared.
//
// A Cancel may be chained to a parent so that parallel combinators can
// cancel their own participants while still honoring the caller's flag.
type Cancel struct {
	parent *Cancel
	set    atomic.Bool
}

// NewCancel returns a fresh, unset flag.
func NewCancel() *Cancel { return &Cancel{} }

// Cancel sets the flag. Setting an already-set flag is a no-op.
func (c *Cancel) Cancel() {
	if c != nil {
		c.set.Store(true)
	}
}

// Cancelled reports whether this flag, or any parent in its chain, is set.
// A nil *Cancel is never cancelled, so uninterruptible runs can pass nil.
func (c *Cancel) Cancelled() bool {
	for ; c != nil; c = c.parent {
		if c.set.Load() {
			return true
		}
	}
	return false
}

// child returns a flag that is set independently but also reports
// cancelled whenever c is.
func (c *Cancel) child() *Cancel { return &Cancel{parent: c} }
