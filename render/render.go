// Package render writes a function's control-flow graph as Graphviz DOT
// text and, when a renderer is available, a PNG alongside it
// (SPEC_FULL.md §6.1's -render-cfg flag).
package render

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-graphviz"

	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/internal/graphutil"
)

// WriteDOT writes g's Graphviz DOT representation to w: a literal
// "digraph X { ... }\n" built by hand rather than through a graph-builder
// API, since a CFG's edge set is small and static per function.
//
// Loop headers (the strongly-connected components internal/graphutil finds
// over the same CFG that drives spec.md §4.1's while-loop back-edges) are
// drawn with a double border, so a rendered graph makes the fixed-point
// solver's loops visible at a glance.
func WriteDOT(g *cfg.CFG, w *bufio.Writer) error {
	headers := loopHeaders(g)

	name := g.Func.Name
	if _, err := fmt.Fprintf(w, "digraph %s {\n", dotID(name)); err != nil {
		return fmt.Errorf("error while writing dot header: %w", err)
	}
	for _, b := range g.Blocks {
		label := blockLabel(b)
		style := ""
		if headers[b.ID] {
			style = " peripheries=2"
		}
		if _, err := fmt.Fprintf(w, "  %s [shape=box label=%q%s];\n", dotID(b.Label), label, style); err != nil {
			return fmt.Errorf("error while writing node: %w", err)
		}
	}
	for _, b := range g.Blocks {
		switch t := b.Term.(type) {
		case *cfg.FallThroughTerm:
			if _, err := fmt.Fprintf(w, "  %s -> %s;\n", dotID(b.Label), dotID(t.Next.Label)); err != nil {
				return fmt.Errorf("error while writing edge: %w", err)
			}
		case *cfg.ConditionalTerm:
			if _, err := fmt.Fprintf(w, "  %s -> %s [label=\"True\"];\n", dotID(b.Label), dotID(t.True.Label)); err != nil {
				return fmt.Errorf("error while writing edge: %w", err)
			}
			if _, err := fmt.Fprintf(w, "  %s -> %s [label=\"False\"];\n", dotID(b.Label), dotID(t.False.Label)); err != nil {
				return fmt.Errorf("error while writing edge: %w", err)
			}
		case *cfg.ReturnTerm:
			if _, err := fmt.Fprintf(w, "  %s -> %s;\n", dotID(b.Label), dotID(t.Exit.Label)); err != nil {
				return fmt.Errorf("error while writing edge: %w", err)
			}
		}
	}
	if _, err := fmt.Fprint(w, "}\n"); err != nil {
		return fmt.Errorf("error while writing dot footer: %w", err)
	}
	return nil
}

// loopHeaders returns the block ID of every loop header in g, found by
// partitioning g into strongly-connected components: a MiniC CFG has no
// gotos, so the only possible cycle is a while-loop's {header, body...}
// component (internal/graphutil.LoopComponents' doc comment).
func loopHeaders(g *cfg.CFG) map[int]bool {
	headers := map[int]bool{}
	view := cfg.AsGraph(g)
	for _, comp := range graphutil.LoopComponents(view) {
		headers[graphutil.LoopHeader(view, comp)] = true
	}
	return headers
}

func dotID(s string) string {
	return fmt.Sprintf("%q", s)
}

func blockLabel(b *cfg.Block) string {
	label := b.Label
	for _, u := range b.Units {
		label += fmt.Sprintf("\n%T", u)
	}
	return label
}

// ToFiles writes both a .dot and (best-effort) a .png for g's function
// into dir, named after the function. A PNG rendering failure is reported
// but doesn't prevent the DOT file from being written: the DOT text alone
// still satisfies -render-cfg's contract.
func ToFiles(g *cfg.CFG, dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("could not create render directory %s: %w", dir, err)
	}

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := WriteDOT(g, w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("error while flushing dot buffer: %w", err)
	}

	dotPath := filepath.Join(dir, g.Func.Name+".dot")
	if err := os.WriteFile(dotPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", dotPath, err)
	}

	return renderPNG(buf.Bytes(), filepath.Join(dir, g.Func.Name+".png"))
}

// renderPNG calls goccy/go-graphviz's in-process Graphviz port.
// Its failure (a malformed DOT string, or a build without cgo-backed font
// rendering) is a soft error: the caller still has the DOT file to feed to
// an external `dot` binary.
func renderPNG(dot []byte, pngPath string) error {
	gv := graphviz.New()
	defer gv.Close()

	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return fmt.Errorf("could not parse generated dot: %w", err)
	}
	defer graph.Close()

	if err := gv.RenderFilename(graph, graphviz.PNG, pngPath); err != nil {
		return fmt.Errorf("could not render png: %w", err)
	}
	return nil
}
