package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cancelei/aria-lang-sub001/internal/examples"
	"github.com/cancelei/aria-lang-sub001/internal/wasmgen"
	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
)

func runRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	program := fs.String("program", "identity", "built-in program to compile and run (available: "+strings.Join(examples.Names(), ", ")+")")
	opt := fs.String("opt", "basic", "optimization level: none, basic, or aggressive")
	wasmPath := fs.String("wasm", "", "load a prebuilt .wasm module instead of compiling -program")
	fn := fs.String("func", "", "exported function to call (default: -program's name, kebab-cased)")
	argList := fs.String("args", "", "comma-separated i64 arguments, e.g. -args 3,4")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Parse(args)

	logger := newLogger(*verbose)
	defer logger.Sync()

	var bin []byte
	funcName := *fn
	if *wasmPath != "" {
		data, err := os.ReadFile(*wasmPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", *wasmPath, err)
		}
		bin = data
		if funcName == "" {
			return fmt.Errorf("-func is required when loading a module with -wasm")
		}
	} else {
		p, err := buildProgram(*program, *opt)
		if err != nil {
			return err
		}
		m, err := wasmgen.BuildModule(p)
		if err != nil {
			return fmt.Errorf("codegen: %w", err)
		}
		bin = m.Encode()
		if funcName == "" {
			funcName = kebabify(*program)
		}
	}

	callArgs, err := parseI64List(*argList)
	if err != nil {
		return err
	}

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, bin)
	if err != nil {
		return fmt.Errorf("wazero compile: %w", err)
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		return fmt.Errorf("wazero instantiate: %w", err)
	}
	defer mod.Close(ctx)

	exported := mod.ExportedFunction(funcName)
	if exported == nil {
		return fmt.Errorf("exported function %q not found", funcName)
	}

	logger.Debug("calling", zap.String("func", funcName), zap.Int("argc", len(callArgs)))
	results, err := exported.Call(ctx, callArgs...)
	if err != nil {
		return fmt.Errorf("call: %w", err)
	}
	for _, r := range results {
		fmt.Fprintln(os.Stdout, int64(r))
	}
	return nil
}

func parseI64List(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid -args value %q: %w", part, err)
		}
		out = append(out, uint64(n))
	}
	return out, nil
}

// kebabify mirrors wasmgen's export-name convention (kebabCase(fn.Name)) for
// lowercase snake_case names such as the built-in programs', where replacing
// underscores with hyphens is the whole conversion; upper-case letters are
// left as they are. This lets -func be omitted for the built-in examples.
func kebabify(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
