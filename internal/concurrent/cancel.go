// Package concurrent implements the structured-concurrency runtime behind
// Aria's `with Async.scope |s| ... end`: scopes, cancellation tokens,
// join handles, a bounded worker pool, and a timer wheel for timeouts.
package concurrent

import (
	"sync/atomic"

	"github.com/cancelei/aria-lang-sub001/internal/aerr"
)

// CancelToken is a cooperative cancellation flag. Tasks check it at their
// own checkpoints; nothing here force-unwinds a running task.
//
// Go's sync/atomic operations are sequentially consistent, a strictly
// stronger guarantee than the acquire/release pairing the original crate
// relies on, so Cancel's write is always visible to any later IsCancelled.
type CancelToken struct {
	cancelled *atomic.Bool
}

// NewCancelToken returns a token that is not cancelled.
func NewCancelToken() CancelToken {
	return CancelToken{cancelled: new(atomic.Bool)}
}

// IsCancelled reports whether cancellation has been requested.
func (t CancelToken) IsCancelled() bool {
	return t.cancelled.Load()
}

// Cancel requests cancellation. Idempotent.
func (t CancelToken) Cancel() {
	t.cancelled.Store(true)
}

// Check is the idiomatic cancellation checkpoint: an error if cancelled,
// nil otherwise.
func (t CancelToken) Check() error {
	if t.IsCancelled() {
		return aerr.New(aerr.PhaseRuntime, aerr.KindCancelled).Build()
	}
	return nil
}
