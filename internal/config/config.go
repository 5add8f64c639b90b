// Package config holds the functional-option configuration shared by the
// optimizer, the inliner, the WASM emitter, and the concurrency runtime.
package config

import "time"

// Options bundles the tunables the core pipeline consults. The zero value
// is not a usable configuration (a zero TickInterval or WheelSize cannot
// drive a timer wheel); use New() to get an Options with the production
// defaults.
type Options struct {
	MaxInlineSize     int // heuristic inline size threshold (spec.md §4.4)
	MaxInlineDepth    int
	AggressiveIterCap int // bound on Aggressive pass fixed-point iteration

	TickInterval time.Duration // timer wheel tick (spec.md §4.7)
	WheelSize    int           // timer wheel slot count

	WorkerPoolSize int // 0 means GOMAXPROCS
}

// Option mutates an Options in place.
type Option func(*Options)

// New builds an Options with production defaults, then applies overrides.
func New(opts ...Option) *Options {
	o := &Options{
		MaxInlineSize:     25,
		MaxInlineDepth:    8,
		AggressiveIterCap: 16,
		TickInterval:      time.Millisecond,
		WheelSize:         1024,
		WorkerPoolSize:    0,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithMaxInlineSize(n int) Option {
	return func(o *Options) { o.MaxInlineSize = n }
}

func WithMaxInlineDepth(n int) Option {
	return func(o *Options) { o.MaxInlineDepth = n }
}

func WithAggressiveIterCap(n int) Option {
	return func(o *Options) { o.AggressiveIterCap = n }
}

func WithTickInterval(d time.Duration) Option {
	return func(o *Options) { o.TickInterval = d }
}

func WithWheelSize(n int) Option {
	return func(o *Options) { o.WheelSize = n }
}

func WithWorkerPoolSize(n int) Option {
	return func(o *Options) { o.WorkerPoolSize = n }
}
