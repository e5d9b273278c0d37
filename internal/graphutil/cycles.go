// Package graphutil provides small graph algorithms shared by the cfg and
// analyses packages: strongly-connected-component partitioning and loop
// recognition over a control-flow graph, adapted from callgraph-cycle
// utilities to run over a MiniC CFG instead of a Go callgraph.
package graphutil

import (
	"sort"

	"github.com/yourbasic/graph"
)

// Iterator is the subset of yourbasic/graph's Iterator interface that
// LoopComponents needs; cfg.Graph satisfies it directly. Declaring it here
// rather than importing the cfg package keeps graphutil's dependency
// surface to just the graph libraries.
type Iterator interface {
	Order() int
	Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool)
}

// LoopComponents partitions it into strongly-connected components using
// github.com/yourbasic/graph.StrongComponents, the same primitive an
// elementary-circuit search builds on, and returns every component of
// order >= 2.
//
// In a MiniC CFG the only source of a back-edge is a while-loop
// (cfg/builder.go's buildWhile), and MiniC has no gotos, so control flow is
// always reducible: a component can never straddle two independent loops
// the way an arbitrary callgraph's recursion cycles can straddle several
// unrelated call chains. That means the SCC partition alone identifies each
// loop's {header, body...} block set: there is nothing left to enumerate by
// running a full circuit search (Johnson's algorithm) on top of it, so this
// package stops one step short of an elementary-cycle enumerator and
// returns components rather than circuits.
func LoopComponents(it Iterator) [][]int {
	comps := graph.StrongComponents(it)
	var loops [][]int
	for _, c := range comps {
		if len(c) >= 2 {
			sorted := append([]int(nil), c...)
			sort.Ints(sorted)
			loops = append(loops, sorted)
		}
	}
	return loops
}

// LoopHeader returns component's entry block: the node reached by an edge
// originating outside the component. A well-formed while-loop CFG has
// exactly one such node by construction; if that invariant is somehow
// violated the smallest such block ID wins (and a component no outside
// edge enters yields component[0]), so callers get a deterministic answer
// rather than a panic.
func LoopHeader(it Iterator, component []int) int {
	inComponent := make(map[int]bool, len(component))
	for _, v := range component {
		inComponent[v] = true
	}

	headers := map[int]bool{}
	for i := 0; i < it.Order(); i++ {
		if inComponent[i] {
			continue
		}
		it.Visit(i, func(w int, _ int64) bool {
			if inComponent[w] {
				headers[w] = true
			}
			return false
		})
	}

	best := -1
	for v := range headers {
		if best == -1 || v < best {
			best = v
		}
	}
	if best == -1 {
		return component[0]
	}
	return best
}
