// Command analyze runs the static analyzer over a single MiniC source file
// (spec.md §6.1). Grounded on cmd/argot/main.go's manual flag.FlagSet
// dispatch style, simplified to a single command since this tool has no
// sub-commands to route between.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/YatharthShah2006/minic-static-analyzer/config"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
	"github.com/YatharthShah2006/minic-static-analyzer/internal/formatutil"
	"github.com/YatharthShah2006/minic-static-analyzer/pipeline"
	"github.com/YatharthShah2006/minic-static-analyzer/render"
)

const usage = `analyze: MiniC static analyzer
Usage:
  analyze [options] <path>
Options:
  -config <file>       path to a YAML configuration file
  -format text|json    diagnostic output format (default text)
  -render-cfg <dir>     render each function's control-flow graph as DOT/PNG into dir
  -v                    verbose logging of pipeline phases`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path")
	format := fs.String("format", "", "output format: text or json")
	renderDir := fs.String("render-cfg", "", "directory to render CFGs into")
	verbose := fs.Bool("v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}
	path := fs.Arg(0)

	if *configPath != "" {
		config.SetGlobalConfig(*configPath)
	} else if def := filepath.Join(filepath.Dir(path), ".minicanalyze.yaml"); fileExists(def) {
		config.SetGlobalConfig(def)
	}
	cfgOpts, err := config.LoadGlobal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 2
	}
	if *format != "" {
		cfgOpts.Format = *format
	}
	if *renderDir == "" {
		*renderDir = cfgOpts.RenderCFGDir
	}
	if *verbose {
		cfgOpts.LogLevel = int(config.DebugLevel)
	}
	logger := config.NewLogGroup(cfgOpts)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not read %s: %s\n", path, err)
		return 2
	}

	result := pipeline.Run(path, string(source), cfgOpts, logger)

	if *renderDir != "" {
		for _, g := range result.CFGs {
			if err := render.ToFiles(g, *renderDir); err != nil {
				logger.Warnf("could not render cfg: %s", err)
			}
		}
	}

	if err := report(result, cfgOpts.Format); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 2
	}

	if result.HasErrors() {
		return 1
	}
	return 0
}

func report(result *pipeline.Result, format string) error {
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Diagnostics)
	}
	for _, d := range result.Diagnostics {
		color := formatutil.Yellow
		if d.Severity == diag.Error {
			color = formatutil.Red
		}
		fmt.Println(color(d.String()))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
