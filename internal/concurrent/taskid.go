package concurrent

import "sync/atomic"

// TaskID identifies a spawned task for debugging/introspection purposes.
type TaskID uint64

var nextTaskID atomic.Uint64

func newTaskID() TaskID {
	return TaskID(nextTaskID.Add(1))
}
