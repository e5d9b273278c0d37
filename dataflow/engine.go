// Package dataflow implements the generic monotone fixed-point solver the
// analyses package instantiates for definite assignment, live variables,
// and the zero/non-zero abstract interpretation (SPEC_FULL.md §4.2).
// Reachability does not use it; it is a depth-first search over cfg.Graph.
//
// The block-worklist shape (a FIFO queue of blocks plus an onWorklist set
// that keeps a block from being queued twice) adapts
// intra_procedural_monotone_analysis.go's per-SSA-instruction
// taint-mark propagation to MiniC's coarser per-basic-block
// lattice-value propagation.
package dataflow

import "github.com/YatharthShah2006/minic-static-analyzer/cfg"

// Direction selects which edges a Solve run propagates facts along.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Lattice is the algebraic contract a fact type F must satisfy: an
// associative, commutative, idempotent Join, a Bottom element, and value
// equality so the solver can detect a fixed point (SPEC_FULL.md §4.2).
type Lattice[F any] interface {
	Bottom() F
	Join(a, b F) F
	Equal(a, b F) bool
}

// Transfer computes a block's OUT (forward) or IN (backward) fact from its
// boundary-side fact and its own units.
type Transfer[F any] func(b *cfg.Block, in F) F

// Result holds the IN/OUT fact computed for every block once Solve
// reaches a fixed point.
type Result[F any] struct {
	In  map[int]F
	Out map[int]F
}

// Boundary supplies the seed value at the analysis's start node (entry for
// Forward, exit for Backward) and, for path-sensitive analyses, the
// per-successor-edge refinement of a block's OUT fact. EdgeValue may be
// nil; the zero-value default just returns out unchanged, which is
// correct for every analysis except the path-sensitive zero/non-zero pass
// (SPEC_FULL.md §4.8).
type Boundary[F any] struct {
	Seed      F
	EdgeValue func(from *cfg.Block, to *cfg.Block, out F) F
}

// Solve runs the worklist algorithm to a fixed point over g using lat,
// transfer, and dir, seeding the start node with boundary.Seed
// (SPEC_FULL.md §4.2's "Initial values" contract).
//
// Worklist order follows reverse-postorder for Forward and postorder for
// Backward, per SPEC_FULL.md §4.2's determinism requirement; this is
// purely a performance/iteration-count concern; correctness does not
// depend on order because every Lattice here has finite height and a
// monotone Transfer.
func Solve[F any](g *cfg.CFG, dir Direction, lat Lattice[F], transfer Transfer[F], boundary Boundary[F]) Result[F] {
	edgeValue := boundary.EdgeValue
	if edgeValue == nil {
		edgeValue = func(_, _ *cfg.Block, out F) F { return out }
	}

	order := postorder(g, dir)
	if dir == Forward {
		reverse(order)
	}

	start := g.Entry
	if dir == Backward {
		start = g.Exit
	}

	in := make(map[int]F, len(g.Blocks))
	out := make(map[int]F, len(g.Blocks))
	for _, b := range g.Blocks {
		in[b.ID] = lat.Bottom()
		out[b.ID] = lat.Bottom()
	}

	onWorklist := make(map[int]bool, len(g.Blocks))
	worklist := append([]*cfg.Block(nil), order...)
	for _, b := range worklist {
		onWorklist[b.ID] = true
	}

	boundaryFacts := func(b *cfg.Block) F {
		if b.ID == start.ID {
			return boundary.Seed
		}
		return lat.Bottom()
	}

	for len(worklist) > 0 {
		b := worklist[0]
		worklist = worklist[1:]
		onWorklist[b.ID] = false

		var newIn F
		if dir == Forward {
			newIn = joinPredsOut(g, lat, out, edgeValue, b, boundaryFacts)
		} else {
			newIn = joinSuccsOut(g, lat, out, edgeValue, b, boundaryFacts)
		}
		in[b.ID] = newIn

		newOut := transfer(b, newIn)
		if !lat.Equal(newOut, out[b.ID]) {
			out[b.ID] = newOut
			var neighbors []*cfg.Block
			if dir == Forward {
				neighbors = b.Succs()
			} else {
				neighbors = b.Preds()
			}
			for _, n := range neighbors {
				if !onWorklist[n.ID] {
					onWorklist[n.ID] = true
					worklist = append(worklist, n)
				}
			}
		}
	}

	return Result[F]{In: in, Out: out}
}

func joinPredsOut[F any](g *cfg.CFG, lat Lattice[F], out map[int]F, edgeValue func(*cfg.Block, *cfg.Block, F) F, b *cfg.Block, seedOf func(*cfg.Block) F) F {
	if b.ID == g.Entry.ID {
		return seedOf(b)
	}
	acc := lat.Bottom()
	for _, p := range b.Preds() {
		acc = lat.Join(acc, edgeValue(p, b, out[p.ID]))
	}
	return acc
}

func joinSuccsOut[F any](g *cfg.CFG, lat Lattice[F], out map[int]F, edgeValue func(*cfg.Block, *cfg.Block, F) F, b *cfg.Block, seedOf func(*cfg.Block) F) F {
	if b.ID == g.Exit.ID {
		return seedOf(b)
	}
	acc := lat.Bottom()
	for _, s := range b.Succs() {
		acc = lat.Join(acc, edgeValue(b, s, out[s.ID]))
	}
	return acc
}

// postorder returns g's blocks in DFS postorder, starting from entry for
// Forward or exit for Backward and following the corresponding edge
// direction.
func postorder(g *cfg.CFG, dir Direction) []*cfg.Block {
	start := g.Entry
	next := (*cfg.Block).Succs
	if dir == Backward {
		start = g.Exit
		next = (*cfg.Block).Preds
	}

	visited := make(map[int]bool, len(g.Blocks))
	var order []*cfg.Block
	var visit func(b *cfg.Block)
	visit = func(b *cfg.Block) {
		if visited[b.ID] {
			return
		}
		visited[b.ID] = true
		for _, n := range next(b) {
			visit(n)
		}
		order = append(order, b)
	}
	visit(start)

	// Orphan blocks (spec.md §4.1's post-return dead code) are unreachable
	// from either traversal root; append them so every block still gets a
	// worklist entry and a Bottom fact, matching §4.2's "⊥ for all blocks
	// except the start node" initial-value rule.
	for _, b := range g.Blocks {
		if !visited[b.ID] {
			order = append(order, b)
		}
	}
	return order
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
