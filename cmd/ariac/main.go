// Command ariac is the Aria compiler core's driver: it lowers a built-in
// typed-AST program to MIR, optimizes it, and either prints the MIR,
// emits a WebAssembly module, runs it, or browses it interactively.
//
// There is no Aria source parser in this repo's scope (spec.md's
// non-goals treat the typed AST as an already-resolved input contract),
// so every subcommand selects a program from internal/examples by name
// rather than reading source text from disk.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "build":
		err = runBuild(args)
	case "mir-dump":
		err = runMirDump(args)
	case "run":
		err = runRun(args)
	case "inspect":
		err = runInspect(args)
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "ariac: unknown subcommand %q\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ariac: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: ariac <command> [flags]

commands:
  build      lower+optimize a built-in program and write a .wasm module
  mir-dump   lower+optimize a built-in program and print its MIR text form
  run        build a program (or load a .wasm file) and execute a function
  inspect    browse a lowered program's functions and blocks interactively

run 'ariac <command> -h' for command-specific flags.`)
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
