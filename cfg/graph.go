package cfg

import "gonum.org/v1/gonum/graph"

// Graph adapts a *CFG to gonum's graph.Directed interface: node IDs are the
// Block's dense ID, and From/Nodes/Edge are backed by the Block's own
// Succs()/Preds() rather than a separate adjacency map, since blocks
// already track their edges.
//
// This lets graph/traverse.DepthFirst drive spec.md §4.3's reachability
// pass, and lets internal/graphutil's yourbasic/graph-based cycle finder
// treat the CFG like any other directed graph.
type Graph struct {
	cfg *CFG
}

// AsGraph returns a gonum-compatible view of g.
func AsGraph(g *CFG) Graph { return Graph{cfg: g} }

// Node implements graph.Graph.
func (g Graph) Node(id int64) graph.Node {
	return blockNode{g.cfg.BlockByID(int(id))}
}

// Nodes implements graph.Graph.
func (g Graph) Nodes() graph.Nodes {
	return newBlockIter(g.cfg.Blocks)
}

// From implements graph.Graph: the successors of id.
func (g Graph) From(id int64) graph.Nodes {
	b := g.cfg.BlockByID(int(id))
	if b == nil {
		return newBlockIter(nil)
	}
	return newBlockIter(b.Succs())
}

// To implements graph.Directed: the predecessors of id.
func (g Graph) To(id int64) graph.Nodes {
	b := g.cfg.BlockByID(int(id))
	if b == nil {
		return newBlockIter(nil)
	}
	return newBlockIter(b.Preds())
}

// HasEdgeBetween implements graph.Graph.
func (g Graph) HasEdgeBetween(xid, yid int64) bool {
	return g.hasEdge(xid, yid) || g.hasEdge(yid, xid)
}

func (g Graph) hasEdge(fromID, toID int64) bool {
	b := g.cfg.BlockByID(int(fromID))
	if b == nil {
		return false
	}
	for _, s := range b.Succs() {
		if int64(s.ID) == toID {
			return true
		}
	}
	return false
}

// Edge implements graph.Graph.
func (g Graph) Edge(uid, vid int64) graph.Edge {
	if !g.hasEdge(uid, vid) {
		return nil
	}
	return blockEdge{from: blockNode{g.cfg.BlockByID(int(uid))}, to: blockNode{g.cfg.BlockByID(int(vid))}}
}

// HasEdgeFromTo implements graph.Directed.
func (g Graph) HasEdgeFromTo(uid, vid int64) bool {
	return g.hasEdge(uid, vid)
}

// Order implements yourbasic/graph.Iterator: the number of blocks.
func (g Graph) Order() int {
	return len(g.cfg.Blocks)
}

// Visit implements yourbasic/graph.Iterator, so the same Graph value can
// drive github.com/yourbasic/graph's strongly-connected-components search
// (internal/graphutil).
func (g Graph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	b := g.cfg.BlockByID(v)
	if b == nil {
		return false
	}
	for _, s := range b.Succs() {
		if do(s.ID, 1) {
			return true
		}
	}
	return false
}

type blockNode struct{ b *Block }

func (n blockNode) ID() int64 { return int64(n.b.ID) }

type blockIter struct {
	blocks []*Block
	cur    int
}

func newBlockIter(blocks []*Block) *blockIter {
	return &blockIter{blocks: blocks, cur: -1}
}

func (it *blockIter) Next() bool {
	if it.cur < len(it.blocks)-1 {
		it.cur++
		return true
	}
	return false
}

func (it *blockIter) Len() int {
	if it.cur >= len(it.blocks) {
		return 0
	}
	return len(it.blocks) - it.cur - 1
}

func (it *blockIter) Reset() { it.cur = -1 }

func (it *blockIter) Node() graph.Node {
	return blockNode{it.blocks[it.cur]}
}

type blockEdge struct{ from, to blockNode }

func (e blockEdge) From() graph.Node         { return e.from }
func (e blockEdge) To() graph.Node           { return e.to }
func (e blockEdge) ReversedEdge() graph.Edge { return blockEdge{from: e.to, to: e.from} }
