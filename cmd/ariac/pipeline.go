package main

import (
	"fmt"
	"strings"

	"github.com/cancelei/aria-lang-sub001/internal/config"
	"github.com/cancelei/aria-lang-sub001/internal/examples"
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/mir/lower"
	"github.com/cancelei/aria-lang-sub001/internal/mir/optimize"
)

// selectProgram resolves a -program flag value against internal/examples'
// catalog, producing a usage-friendly error that lists the valid names.
func selectProgram(name string) (*mir.Program, error) {
	ctor, ok := examples.Catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown program %q (available: %s)", name, strings.Join(examples.Names(), ", "))
	}
	return lower.Program(ctor())
}

// parseOptLevel maps the -opt flag's text value to an optimize.Level.
func parseOptLevel(s string) (optimize.Level, error) {
	switch s {
	case "none":
		return optimize.LevelNone, nil
	case "basic":
		return optimize.LevelBasic, nil
	case "aggressive":
		return optimize.LevelAggressive, nil
	default:
		return 0, fmt.Errorf("unknown -opt level %q (want none, basic, or aggressive)", s)
	}
}

// buildProgram lowers the named example program and runs the optimizer at
// the requested level, the two steps every subcommand but "run -wasm" needs.
func buildProgram(programName, optLevel string) (*mir.Program, error) {
	level, err := parseOptLevel(optLevel)
	if err != nil {
		return nil, err
	}
	p, err := selectProgram(programName)
	if err != nil {
		return nil, err
	}
	return optimize.Run(p, level, config.New()), nil
}
