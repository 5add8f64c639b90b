// Package aerr provides the structured error type used throughout the
// compiler core, from lowering through code generation and the runtime.
package aerr

import (
	"fmt"
	"strings"
)

// Phase indicates which stage of the pipeline raised the error.
type Phase string

const (
	PhaseLower    Phase = "lower"
	PhaseOptimize Phase = "optimize"
	PhasePattern  Phase = "pattern"
	PhaseCodegen  Phase = "codegen"
	PhaseWasmgen  Phase = "wasmgen"
	PhaseRuntime  Phase = "runtime"
)

// Kind categorizes the error within its phase.
type Kind string

const (
	// Naming / lowering.
	KindUndefinedVariable Kind = "undefined_variable"
	KindUndefinedFunction Kind = "undefined_function"
	KindUndefinedType     Kind = "undefined_type"
	KindUndefinedField    Kind = "undefined_field"
	KindTypeMismatch      Kind = "type_mismatch"
	KindInvalidPattern    Kind = "invalid_pattern"
	KindInternal          Kind = "internal"

	// Pattern matching.
	KindNonExhaustive      Kind = "non_exhaustive"
	KindUnreachablePattern Kind = "unreachable_pattern"

	// Codegen / wasmgen.
	KindUnsupportedFeature Kind = "unsupported_feature"
	KindUnsupportedTarget  Kind = "unsupported_target"
	KindEncodeFailure      Kind = "encode_failure"

	// Runtime task errors.
	KindCancelled Kind = "cancelled"
	KindPanicked  Kind = "panicked"
	KindTimeout   Kind = "timeout"
)

// Error is the structured error type returned by every core subsystem.
type Error struct {
	Phase  Phase
	Kind   Kind
	Code   string // e.g. "E0001", see spec.md §6.4
	Detail string
	Path   []string // dotted breadcrumb: function/block/local
	Cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteByte(' ')
	}
	b.WriteString(string(e.Kind))
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches errors by phase and kind, ignoring detail/path/cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder constructs an *Error via chained setters.
type Builder struct {
	err Error
}

// New starts a builder for the given phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

func (b *Builder) Code(code string) *Builder {
	b.err.Code = code
	return b
}

func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

func (b *Builder) Detail(format string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(format, args...)
	} else {
		b.err.Detail = format
	}
	return b
}

func (b *Builder) Build() *Error {
	return &b.err
}
