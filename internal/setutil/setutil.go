// Package setutil provides the small generic set operations the dataflow
// lattices build on: definite assignment's intersection-joined symbol-id
// sets (spec.md §4.5) and live-variable analysis's union-joined ones
// (spec.md §4.7). Adapted from internal/funcutil/collections.go's Union,
// Contains, SetToOrderedSlice, and Reverse, trimmed to what a
// single-function, single-threaded dataflow pass actually needs: there's
// no goroutine fan-out workload here to parallelize over.
package setutil

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Set is a set of comparable elements represented as a map, matching the
// map[T]bool shape spec.md §3 calls out as the natural bitset-like
// representation for dense per-function symbol ids.
type Set[T comparable] map[T]bool

// NewSet returns a Set containing exactly the given elements.
func NewSet[T comparable](elems ...T) Set[T] {
	s := make(Set[T], len(elems))
	for _, e := range elems {
		s[e] = true
	}
	return s
}

// Clone returns a shallow copy of s.
func (s Set[T]) Clone() Set[T] {
	c := make(Set[T], len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Union returns the set union of a and b without mutating either: dataflow
// facts are immutable values threaded through the solver by copy.
func Union[T comparable](a, b Set[T]) Set[T] {
	out := a.Clone()
	for k := range b {
		out[k] = true
	}
	return out
}

// Intersect returns the set intersection of a and b.
func Intersect[T comparable](a, b Set[T]) Set[T] {
	out := make(Set[T], len(a))
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

// Equal reports whether a and b contain the same elements.
func Equal[T comparable](a, b Set[T]) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// Add returns a copy of s with x added.
func (s Set[T]) Add(x T) Set[T] {
	out := s.Clone()
	out[x] = true
	return out
}

// Remove returns a copy of s with x removed.
func (s Set[T]) Remove(x T) Set[T] {
	out := s.Clone()
	delete(out, x)
	return out
}

// Contains reports whether x is in s, mirroring funcutil.Contains's slice
// version but specialized to the map representation used throughout this
// package.
func (s Set[T]) Contains(x T) bool { return s[x] }

// Ordered returns s's elements sorted ascending, matching
// funcutil.SetToOrderedSlice's stable-iteration-order contract.
func Ordered[T constraints.Ordered](s Set[T]) []T {
	out := make([]T, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
