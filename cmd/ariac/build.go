package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cancelei/aria-lang-sub001/internal/capability"
	"github.com/cancelei/aria-lang-sub001/internal/examples"
	"github.com/cancelei/aria-lang-sub001/internal/wasmgen"
	"go.uber.org/zap"
)

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	program := fs.String("program", "identity", "built-in program to compile (available: "+strings.Join(examples.Names(), ", ")+")")
	opt := fs.String("opt", "basic", "optimization level: none, basic, or aggressive")
	out := fs.String("o", "", "output .wasm path (default: <program>.wasm)")
	wit := fs.String("wit", "", "also write a .wit world description to this path")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Parse(args)

	logger := newLogger(*verbose)
	defer logger.Sync()

	p, err := buildProgram(*program, *opt)
	if err != nil {
		return err
	}

	m, err := wasmgen.BuildModule(p)
	if err != nil {
		return fmt.Errorf("codegen: %w", err)
	}
	bin := m.Encode()
	logger.Debug("emitted module", zap.String("program", *program), zap.Int("bytes", len(bin)))

	path := *out
	if path == "" {
		path = *program + ".wasm"
	}
	if err := os.WriteFile(path, bin, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(os.Stdout, "wrote %s (%d bytes)\n", path, len(bin))

	if *wit != "" {
		imports := capability.ResolveProgram(p)
		text := wasmgen.RenderWIT(*program, p, imports)
		if err := os.WriteFile(*wit, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", *wit, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", *wit)
	}
	return nil
}
