package cfg

import "github.com/YatharthShah2006/minic-static-analyzer/ast"

// Builder constructs a CFG from a function body via structural recursion
// with a "current block" cursor, following spec.md §4.1's per-statement
// contracts. Grounded on original_source/src/cfg.py's CFGBuilder, adapted
// to label conditional edges (True/False, canonically ordered) and to
// reify a branch's condition evaluation as its own CondUnit, both of which
// the Python original didn't need but spec.md §3/§4.8 require.
type Builder struct {
	cfg    *CFG
	nextID int
}

// Build constructs the CFG for fn.
func Build(fn *ast.FunctionDef) *CFG {
	b := &Builder{}
	return b.build(fn)
}

func (b *Builder) build(fn *ast.FunctionDef) *CFG {
	b.cfg = &CFG{Func: fn}

	entry := b.newBlock("entry")
	exit := b.newBlock("exit")
	b.cfg.Entry = entry
	b.cfg.Exit = exit

	end := b.buildBlock(fn.Body, entry)
	if end != nil {
		// The block where control ends up after the body: a fall-through
		// into exit. When the body ended in `return`, end is the unreachable
		// orphan block the return left behind; otherwise control ran off the
		// end of the body without a `return`, exactly the shape
		// analyses.ReturnPath (spec.md §4.4) looks for.
		end.Term = &FallThroughTerm{Next: exit}
		connect(end, exit)
	}

	return b.cfg
}

func (b *Builder) newBlock(label string) *Block {
	blk := newBlock(b.nextID, label)
	b.nextID++
	b.cfg.Blocks = append(b.cfg.Blocks, blk)
	return blk
}

// buildBlock builds a nested ast.Block's statements into current,
// returning the block where control falls through. After a `return` that
// is the fresh, predecessor-less block buildReturn leaves as the cursor.
func (b *Builder) buildBlock(block *ast.Block, current *Block) *Block {
	for _, stmt := range block.Statements {
		next := b.buildStmt(stmt, current)
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

func (b *Builder) buildStmt(stmt ast.Stmt, current *Block) *Block {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		current.addUnit(&DeclUnit{Decl: s})
		return current

	case *ast.Assign:
		current.addUnit(&AssignUnit{Assign: s})
		return current

	case *ast.PrintStmt:
		current.addUnit(&PrintUnit{Print: s})
		return current

	case *ast.ReturnStmt:
		return b.buildReturn(s, current)

	case *ast.IfStmt:
		return b.buildIf(s, current)

	case *ast.WhileStmt:
		return b.buildWhile(s, current)

	case *ast.Block:
		return b.buildBlock(s, current)

	default:
		panic("cfg: unhandled statement kind in CFG builder")
	}
}

func (b *Builder) buildReturn(s *ast.ReturnStmt, current *Block) *Block {
	current.Term = &ReturnTerm{Value: s.Value, Exit: b.cfg.Exit}
	connect(current, b.cfg.Exit)

	// Any statements textually following this return in the same source
	// block get attached to a fresh orphan block with no predecessor, so
	// they're statically detectable as unreachable via graph reachability
	// (spec.md §4.1's "Return" contract, §4.3).
	return b.newBlock("orphan")
}

func (b *Builder) buildIf(s *ast.IfStmt, current *Block) *Block {
	current.addUnit(&CondUnit{Cond: s.Cond, Pos: s.Pos})

	thenBlock := b.newBlock("if_then")
	joinBlock := b.newBlock("if_join")

	var elseBlock *Block
	if s.Else != nil {
		elseBlock = b.newBlock("if_else")
		current.Term = &ConditionalTerm{Cond: s.Cond, True: thenBlock, False: elseBlock}
		connect(current, thenBlock)
		connect(current, elseBlock)
	} else {
		current.Term = &ConditionalTerm{Cond: s.Cond, True: thenBlock, False: joinBlock}
		connect(current, thenBlock)
		connect(current, joinBlock)
	}

	endThen := b.buildBlock(s.Then, thenBlock)
	if endThen != nil {
		endThen.Term = &FallThroughTerm{Next: joinBlock}
		connect(endThen, joinBlock)
	}

	if s.Else != nil {
		endElse := b.buildBlock(s.Else, elseBlock)
		if endElse != nil {
			endElse.Term = &FallThroughTerm{Next: joinBlock}
			connect(endElse, joinBlock)
		}
	}

	return joinBlock
}

func (b *Builder) buildWhile(s *ast.WhileStmt, current *Block) *Block {
	header := b.newBlock("while_header")
	body := b.newBlock("while_body")
	after := b.newBlock("while_after")

	current.Term = &FallThroughTerm{Next: header}
	connect(current, header)

	header.addUnit(&CondUnit{Cond: s.Cond, Pos: s.Pos})
	header.Term = &ConditionalTerm{Cond: s.Cond, True: body, False: after}
	connect(header, body)
	connect(header, after)

	endBody := b.buildBlock(s.Body, body)
	if endBody != nil {
		// Back-edge to the header — this is what gives the dataflow
		// engine's worklist a loop to iterate to a fixed point over
		// (spec.md §4.1, §4.2).
		endBody.Term = &FallThroughTerm{Next: header}
		connect(endBody, header)
	}

	return after
}
