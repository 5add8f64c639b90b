package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/cancelei/aria-lang-sub001/internal/examples"
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"go.uber.org/zap"
)

func runMirDump(args []string) error {
	fs := flag.NewFlagSet("mir-dump", flag.ExitOnError)
	program := fs.String("program", "identity", "built-in program to lower (available: "+strings.Join(examples.Names(), ", ")+")")
	opt := fs.String("opt", "basic", "optimization level: none, basic, or aggressive")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Parse(args)

	logger := newLogger(*verbose)
	defer logger.Sync()

	p, err := buildProgram(*program, *opt)
	if err != nil {
		return err
	}
	logger.Debug("lowered and optimized", zap.String("program", *program), zap.Int("functions", len(p.Functions)))

	fmt.Print(mir.PrettyPrint(p))
	return nil
}
