// Package symbols models MiniC's name bindings: the resolved-symbol layer
// the analysis core treats as an input contract (SPEC_FULL.md §3).
package symbols

import "fmt"

// Type lives here rather than in package ast to avoid an import cycle
// (ast.Param and ast.VarDecl embed a *Symbol, and a Symbol needs to name its
// Type); ast.Type is an alias of it.
type Type string

const (
	Int  Type = "int"
	Bool Type = "bool"
)

// Kind distinguishes a function parameter from a block-scoped local.
type Kind int

const (
	Param Kind = iota
	Local
	Func
)

func (k Kind) String() string {
	switch k {
	case Param:
		return "param"
	case Local:
		return "local"
	case Func:
		return "func"
	default:
		return "unknown"
	}
}

// Symbol is a single resolved name binding. IDs are dense per function
// (starting at 0), which is what lets the dataflow core represent fact
// sets as small maps or bitsets keyed by ID rather than by name.
type Symbol struct {
	ID      int
	Name    string
	Type    Type
	ScopeID int
	Kind    Kind
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s#%d:%s", s.Name, s.ID, s.Type)
}

// Scope is one lexical block scope: a name-to-symbol map with a parent link.
type Scope struct {
	id      int
	parent  *Scope
	symbols map[string]*Symbol
}

// Table binds names to symbols for a single function, handing out dense
// per-function symbol IDs and scope IDs as scopes are pushed.
type Table struct {
	root      *Scope
	current   *Scope
	nextID    int
	nextScope int
	all       []*Symbol
}

// NewTable returns a Table with a single, currently-active root scope.
func NewTable() *Table {
	t := &Table{}
	t.PushScope()
	t.root = t.current
	return t
}

// PushScope opens a new nested scope.
func (t *Table) PushScope() {
	t.current = &Scope{id: t.nextScope, parent: t.current, symbols: map[string]*Symbol{}}
	t.nextScope++
}

// PopScope closes the innermost scope.
func (t *Table) PopScope() {
	if t.current == nil {
		panic("symbols: PopScope with no active scope")
	}
	t.current = t.current.parent
}

// LookupCurrent finds name only in the innermost scope.
func (t *Table) LookupCurrent(name string) *Symbol {
	return t.current.symbols[name]
}

// Lookup finds name in the innermost scope or any enclosing scope.
func (t *Table) Lookup(name string) *Symbol {
	for s := t.current; s != nil; s = s.parent {
		if sym, ok := s.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// Define allocates a fresh dense ID for name in the current scope and
// records it. The caller is responsible for redeclaration checks: Define
// always succeeds, overwriting a same-named binding in the current scope.
func (t *Table) Define(name string, typ Type, kind Kind) *Symbol {
	sym := &Symbol{ID: t.nextID, Name: name, Type: typ, ScopeID: t.current.id, Kind: kind}
	t.nextID++
	t.current.symbols[name] = sym
	t.all = append(t.all, sym)
	return sym
}

// NumSymbols returns the number of symbols defined so far, which is also
// one past the largest ID in use — the size to allocate for a dense
// array-backed fact representation.
func (t *Table) NumSymbols() int {
	return t.nextID
}

// All returns every symbol defined in this table, in definition order.
func (t *Table) All() []*Symbol {
	return t.all
}
