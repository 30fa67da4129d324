// Package cppdef maintains the ordered list of preprocessor definitions
// handed to the Fortran build as compiler flags. A symbol may only ever be
// defined once; redefinition is rejected rather than silently overwritten,
// since duplicate macros cause surprising compiler behavior downstream.
package cppdef

import (
	"fmt"
	"strings"
)

// DuplicateDefineError reports an attempt to define a preprocessor symbol
// a second time.
type DuplicateDefineError struct {
	Symbol string
}

func (e *DuplicateDefineError) Error() string {
	return fmt.Sprintf("CPP definition %q has already been set", strings.ToUpper(e.Symbol))
}

// Set is an append-only collection of definition flags, each either
// "-DSYMBOL" or "-DSYMBOL=VALUE". Entries are never removed or edited.
type Set struct {
	defs []string
}

// New creates a Set seeded with already-formatted definition flags, e.g.
// the host-provided CAM_CPPDEFS entries.
func New(seed ...string) *Set {
	s := &Set{}
	s.defs = append(s.defs, seed...)
	return s
}

// Add records a bare symbol definition.
func (s *Set) Add(symbol string) error {
	return s.add(symbol, "")
}

// AddValue records a symbol definition carrying a value.
func (s *Set) AddValue(symbol string, value any) error {
	return s.add(symbol, fmt.Sprintf("=%v", value))
}

// add appends "-D<symbol><suffix>" after the duplicate check. An existing
// entry collides when its text is exactly "-D<symbol>" or begins with
// "-D<symbol>=": the symbol name followed by end-of-string or '='. So
// "NEW" collides with an existing "NEW=5", but "X" does not collide
// with "XY".
func (s *Set) add(symbol, suffix string) error {
	flag := "-D" + symbol
	for _, def := range s.defs {
		def = strings.TrimSpace(def)
		if def == flag || strings.HasPrefix(def, flag+"=") {
			return &DuplicateDefineError{Symbol: symbol}
		}
	}
	s.defs = append(s.defs, flag+suffix)
	return nil
}

// Flags returns the definitions in insertion order. Order matters for
// build reproducibility, not semantics.
func (s *Set) Flags() []string {
	out := make([]string, len(s.defs))
	copy(out, s.defs)
	return out
}

// Len reports the number of recorded definitions.
func (s *Set) Len() int { return len(s.defs) }
