// Package mathcore provides the toolkit's basic set and function
// primitives. These are thin, educational data structures; the heavier
// subsystems (proof verification, number theory) live in their own
// packages.
package mathcore

import (
	"fmt"
	"sort"
)

// Set is a finite mathematical set over a comparable element type.
type Set[T comparable] struct {
	elems map[T]struct{}
}

// NewSet builds a set from the given elements, deduplicating them.
func NewSet[T comparable](elems ...T) *Set[T] {
	s := &Set[T]{elems: make(map[T]struct{}, len(elems))}
	for _, e := range elems {
		s.elems[e] = struct{}{}
	}
	return s
}

// Contains reports membership.
func (s *Set[T]) Contains(e T) bool {
	_, ok := s.elems[e]
	return ok
}

// Len returns the cardinality.
func (s *Set[T]) Len() int { return len(s.elems) }

// Elements returns the members in unspecified order.
func (s *Set[T]) Elements() []T {
	out := make([]T, 0, len(s.elems))
	for e := range s.elems {
		out = append(out, e)
	}
	return out
}

// Union returns a new set with the members of both sets.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for e := range s.elems {
		out.elems[e] = struct{}{}
	}
	for e := range other.elems {
		out.elems[e] = struct{}{}
	}
	return out
}

// Intersection returns a new set with the members common to both sets.
func (s *Set[T]) Intersection(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for e := range s.elems {
		if other.Contains(e) {
			out.elems[e] = struct{}{}
		}
	}
	return out
}

// Difference returns a new set with the members of s not in other.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for e := range s.elems {
		if !other.Contains(e) {
			out.elems[e] = struct{}{}
		}
	}
	return out
}

// SortedInts returns an integer set's members in ascending order.
// Convenience for deterministic CLI output and tests.
func SortedInts(s *Set[int64]) []int64 {
	out := s.Elements()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Function is a named mathematical function with an optional domain
// restriction. Applying it outside the domain is an error.
type Function[D, C comparable] struct {
	Name   string
	fn     func(D) C
	domain *Set[D] // nil means unrestricted
}

// NewFunction creates a function with an unrestricted domain.
func NewFunction[D, C comparable](name string, fn func(D) C) *Function[D, C] {
	return &Function[D, C]{Name: name, fn: fn}
}

// WithDomain restricts the function's domain.
func (f *Function[D, C]) WithDomain(domain *Set[D]) *Function[D, C] {
	f.domain = domain
	return f
}

// Apply evaluates the function at x, checking the domain restriction.
func (f *Function[D, C]) Apply(x D) (C, error) {
	var zero C
	if f.domain != nil && !f.domain.Contains(x) {
		return zero, fmt.Errorf("%v is not in the domain of %s", x, f.Name)
	}
	return f.fn(x), nil
}

// Compose returns f ∘ g, the function applying g first and then f. The
// composite inherits g's domain; f's restriction, if any, is not
// re-checked on intermediate values.
func Compose[A, B, C comparable](f *Function[B, C], g *Function[A, B]) *Function[A, C] {
	return &Function[A, C]{
		Name:   fmt.Sprintf("(%s ∘ %s)", f.Name, g.Name),
		domain: g.domain,
		fn:     func(x A) C { return f.fn(g.fn(x)) },
	}
}
