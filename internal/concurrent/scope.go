package concurrent

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cancelei/aria-lang-sub001/internal/aerr"
)

// taskState is the part of a spawned task's bookkeeping that doesn't depend
// on the task's result type, so a Scope can hold one slice of these across
// tasks of different T (Go generics can't parameterize a struct field by a
// type that varies per slice element).
type taskState struct {
	id       TaskID
	running  atomic.Bool
	finished atomic.Bool
}

// TaskInfo is a snapshot-time view of one task, per ScopeSnapshot.
type TaskInfo struct {
	ID       TaskID
	Running  bool
	Finished bool
}

// scopedTaskInner holds one task's result slot and completion signal.
// Grounded on scope.rs's ScopedTaskInner<T>: a Mutex<Option<Result<T,
// TaskError>>> plus a Condvar, translated to sync.Mutex/sync.Cond.
type scopedTaskInner[T any] struct {
	state *taskState

	mu    sync.Mutex
	cond  *sync.Cond
	value T
	err   error
	set   bool
}

func newScopedTaskInner[T any]() *scopedTaskInner[T] {
	inner := &scopedTaskInner[T]{state: &taskState{id: newTaskID()}}
	inner.cond = sync.NewCond(&inner.mu)
	return inner
}

func (inner *scopedTaskInner[T]) complete(value T, err error) {
	inner.mu.Lock()
	inner.value, inner.err, inner.set = value, err, true
	inner.mu.Unlock()
	inner.state.finished.Store(true)
	inner.cond.Broadcast()
}

func (inner *scopedTaskInner[T]) wait() (T, error) {
	inner.mu.Lock()
	defer inner.mu.Unlock()
	for !inner.set {
		inner.cond.Wait()
	}
	return inner.value, inner.err
}

// ScopedJoinHandle is a cheaply-copyable handle to a task spawned within a
// Scope (the inner state lives behind a pointer, so copies share it, the
// same sharing scope.rs gets from Arc<ScopedTaskInner<T>>).
type ScopedJoinHandle[T any] struct {
	inner *scopedTaskInner[T]
}

// ID returns the task's identifier.
func (h ScopedJoinHandle[T]) ID() TaskID { return h.inner.state.id }

// IsFinished reports whether the task has completed.
func (h ScopedJoinHandle[T]) IsFinished() bool { return h.inner.state.finished.Load() }

// Join blocks until the task completes and returns its result or error.
func (h ScopedJoinHandle[T]) Join() (T, error) { return h.inner.wait() }

// TryJoin returns the task's result without blocking; ok is false if the
// task has not finished yet.
func (h ScopedJoinHandle[T]) TryJoin() (value T, err error, ok bool) {
	if !h.IsFinished() {
		return value, nil, false
	}
	value, err = h.inner.wait()
	return value, err, true
}

// Scope is a structured-concurrency scope: every task spawned within it is
// awaited before the scope-returning constructor (WithScope and friends)
// returns, mirroring `with Async.scope |s| ... end`.
type Scope struct {
	cancelToken CancelToken

	activeCount atomic.Int64

	completeMu   sync.Mutex
	completeCond *sync.Cond
	allCompleted bool

	firstErrMu sync.Mutex
	firstErr   error

	tasksMu sync.Mutex
	tasks   []*taskState

	cancelOnError bool
	dedicated     bool // spawn via raw goroutine, bypassing the shared pool
}

func newScope(cancelOnError, dedicated bool) *Scope {
	s := &Scope{cancelToken: NewCancelToken(), cancelOnError: cancelOnError, dedicated: dedicated}
	s.completeCond = sync.NewCond(&s.completeMu)
	return s
}

// NewScope returns a scope that uses the shared GlobalPool and cancels
// sibling tasks on the first non-cancellation error.
func NewScope() *Scope { return newScope(true, false) }

// NewThreadedScope returns a scope that spawns a dedicated goroutine per
// task instead of going through the pool, for tasks that may block for a
// long time and shouldn't hold a pool slot.
func NewThreadedScope() *Scope { return newScope(true, true) }

// NewSupervisedScope returns a scope where a task's error is isolated to
// its own handle; siblings are never cancelled because of it. The scope's
// cancel token still flips on an explicit Cancel() or a timeout.
func NewSupervisedScope() *Scope { return newScope(false, false) }

// CancelToken returns this scope's cancel token.
func (s *Scope) CancelToken() CancelToken { return s.cancelToken }

// Cancel requests cancellation of every task in the scope.
func (s *Scope) Cancel() { s.cancelToken.Cancel() }

// ActiveCount returns the number of tasks not yet completed.
func (s *Scope) ActiveCount() int { return int(s.activeCount.Load()) }

// IsComplete reports whether every spawned task has completed.
func (s *Scope) IsComplete() bool { return s.ActiveCount() == 0 }

// FirstError returns the first non-cancellation error raised by any task,
// if any.
func (s *Scope) FirstError() error {
	s.firstErrMu.Lock()
	defer s.firstErrMu.Unlock()
	return s.firstErr
}

// Snapshot returns the scope's current state for introspection (the CLI's
// inspect view and property-based tests read this rather than poking at
// private fields).
func (s *Scope) Snapshot() ScopeSnapshot {
	s.tasksMu.Lock()
	infos := make([]TaskInfo, len(s.tasks))
	for i, t := range s.tasks {
		infos[i] = TaskInfo{ID: t.id, Running: t.running.Load(), Finished: t.finished.Load()}
	}
	s.tasksMu.Unlock()

	return ScopeSnapshot{
		ActiveCount: s.ActiveCount(),
		FirstError:  s.FirstError(),
		Cancelled:   s.cancelToken.IsCancelled(),
		Tasks:       infos,
	}
}

func isCancelledErr(err error) bool {
	e, ok := err.(*aerr.Error)
	return ok && e.Kind == aerr.KindCancelled
}

func runTaskBody[T any](token CancelToken, f func() T) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = aerr.New(aerr.PhaseRuntime, aerr.KindPanicked).Detail("%v", r).Build()
		}
	}()
	if token.IsCancelled() {
		err = aerr.New(aerr.PhaseRuntime, aerr.KindCancelled).Build()
		return value, err
	}
	return f(), nil
}

// Spawn submits a task to the scope and returns its join handle. Go has no
// generic methods, so this is a package-level function parameterized over
// the task's result type rather than a method on *Scope.
func Spawn[T any](s *Scope, f func() T) ScopedJoinHandle[T] {
	return spawnInternal(s, func(CancelToken) T { return f() })
}

// SpawnWithCancel is Spawn but the task body receives a clone of the
// scope's cancel token, for cooperative cancellation checks mid-task.
func SpawnWithCancel[T any](s *Scope, f func(CancelToken) T) ScopedJoinHandle[T] {
	return spawnInternal(s, f)
}

func spawnInternal[T any](s *Scope, f func(CancelToken) T) ScopedJoinHandle[T] {
	s.activeCount.Add(1)

	inner := newScopedTaskInner[T]()
	s.tasksMu.Lock()
	s.tasks = append(s.tasks, inner.state)
	s.tasksMu.Unlock()

	token := s.cancelToken

	run := func() {
		inner.state.running.Store(true)
		value, err := runTaskBody(token, f)

		if err != nil && s.cancelOnError && !isCancelledErr(err) {
			s.firstErrMu.Lock()
			if s.firstErr == nil {
				s.firstErr = err
				token.Cancel()
			}
			s.firstErrMu.Unlock()
		}

		inner.complete(value, err)

		remaining := s.activeCount.Add(-1)
		if remaining == 0 {
			s.completeMu.Lock()
			s.allCompleted = true
			s.completeMu.Unlock()
			s.completeCond.Broadcast()
		}
	}

	if s.dedicated {
		go run()
	} else {
		GlobalPool().Spawn(run)
	}

	return ScopedJoinHandle[T]{inner: inner}
}

// JoinAll blocks until every task spawned in the scope has completed.
func (s *Scope) JoinAll() {
	s.completeMu.Lock()
	for !s.allCompleted && s.activeCount.Load() > 0 {
		s.completeCond.Wait()
	}
	s.completeMu.Unlock()
}

// WithScope runs f with a fresh scope, waits for every spawned task, and
// returns f's result. Implements `with Async.scope |s| ... end`.
func WithScope[T any](f func(*Scope) T) T {
	s := NewScope()
	result := f(s)
	s.JoinAll()
	return result
}

// WithScopeResult is WithScope but propagates the first task error instead
// of discarding it.
func WithScopeResult[T any](f func(*Scope) T) (T, error) {
	s := NewScope()
	result := f(s)
	s.JoinAll()
	if err := s.FirstError(); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// WithSupervisedScope runs f with a supervised scope: a task's error never
// cancels its siblings. Implements `with Async.supervisor |s| ... end`.
func WithSupervisedScope[T any](f func(*Scope) T) T {
	s := NewSupervisedScope()
	result := f(s)
	s.JoinAll()
	return result
}

// WithTimeoutScope runs f with a scope that is cancelled if it does not
// complete within timeout. On timeout the result is a Timeout error; the
// body's own return value is discarded in that case (use
// WithTimeoutScopePartial to keep it). Implements
// `with Async.timeout(duration) |s| ... end`.
func WithTimeoutScope[T any](timeout time.Duration, f func(*Scope) T) (T, error) {
	result, timedOut := WithTimeoutScopePartial(timeout, f)
	if timedOut {
		var zero T
		return zero, aerr.New(aerr.PhaseRuntime, aerr.KindTimeout).
			Detail("exceeded %s", timeout).Build()
	}
	return result, nil
}

// WithTimeoutScopePartial is WithTimeoutScope but always returns the body's
// result alongside whether the deadline was hit, so a caller can keep
// partial work accumulated before the timeout.
func WithTimeoutScopePartial[T any](timeout time.Duration, f func(*Scope) T) (T, bool) {
	s := NewScope()
	token := s.CancelToken()

	var timedOut atomic.Bool
	timer := time.AfterFunc(timeout, func() {
		timedOut.Store(true)
		token.Cancel()
	})

	result := f(s)
	s.JoinAll()
	timer.Stop()

	return result, timedOut.Load()
}
