package concurrent

// ScopeSnapshot is a point-in-time view of a Scope's state: active task
// count, the first error seen (if any), whether the cancel token has
// fired, and per-task running/finished flags. Grounded on scope_debug.rs's
// DebugScope/ScopeTree, simplified to the fields the CLI's inspect view and
// property-based tests actually need rather than the original's full
// Mermaid/DOT/text-tree rendering.
type ScopeSnapshot struct {
	ActiveCount int
	FirstError  error
	Cancelled   bool
	Tasks       []TaskInfo
}
