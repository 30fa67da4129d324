package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Spec constrains the value of a config variable. A nil Spec accepts any
// value of the variant's kind. The set of implementations is closed: each
// variant accepts only the spec kinds that make sense for it, checked once
// at construction.
type Spec interface {
	spec()
}

// IntRange accepts integers in [Min, Max]. A nil Max means unbounded above.
type IntRange struct {
	Min int
	Max *int
}

func (IntRange) spec() {}

// Unbounded is a convenience for an IntRange with no upper limit.
func Unbounded(min int) IntRange { return IntRange{Min: min} }

// Bounded is a convenience for a fully bounded IntRange.
func Bounded(min, max int) IntRange { return IntRange{Min: min, Max: &max} }

// IntSet accepts only the listed integers.
type IntSet []int

func (IntSet) spec() {}

// StringSet accepts only the listed strings.
type StringSet []string

func (StringSet) spec() {}

// Pattern accepts strings whose prefix matches the compiled expression.
// Matching is anchored at the start of the string but not at the end,
// so a pattern matching a leading portion of the value accepts it.
type Pattern struct {
	Re *regexp.Regexp
}

func (Pattern) spec() {}

// matches reports whether s has a prefix matching the pattern.
func (p Pattern) matches(s string) bool {
	loc := p.Re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

// AllowedList accepts only a list exactly equal to its contents. This
// restricts the list value as a whole, not its elements one by one.
type AllowedList []any

func (AllowedList) spec() {}

func checkInt(name string, v int, spec Spec) error {
	switch s := spec.(type) {
	case nil:
		return nil
	case IntRange:
		if v < s.Min {
			return &ValidationError{Name: name, Value: v,
				Reason: fmt.Sprintf("below minimum %d", s.Min)}
		}
		if s.Max != nil && v > *s.Max {
			return &ValidationError{Name: name, Value: v,
				Reason: fmt.Sprintf("above maximum %d", *s.Max)}
		}
		return nil
	case IntSet:
		for _, allowed := range s {
			if v == allowed {
				return nil
			}
		}
		return &ValidationError{Name: name, Value: v,
			Reason: fmt.Sprintf("not in allowed set %v", []int(s))}
	default:
		return &TypeError{Name: name, Got: spec}
	}
}

func checkString(name, v string, spec Spec) error {
	switch s := spec.(type) {
	case nil:
		return nil
	case StringSet:
		for _, allowed := range s {
			if v == allowed {
				return nil
			}
		}
		return &ValidationError{Name: name, Value: v,
			Reason: fmt.Sprintf("not in allowed set %v", []string(s))}
	case Pattern:
		if !s.matches(v) {
			return &ValidationError{Name: name, Value: v,
				Reason: fmt.Sprintf("does not match pattern %q", s.Re.String())}
		}
		return nil
	default:
		return &TypeError{Name: name, Got: spec}
	}
}

func checkList(name string, v []any, elemType string, spec Spec) error {
	switch elemType {
	case "":
		// unconstrained element kind
	case "str":
		for _, elem := range v {
			if _, ok := elem.(string); !ok {
				return &ValidationError{Name: name, Value: elem,
					Reason: "list element is not a string"}
			}
		}
	case "int":
		for _, elem := range v {
			if _, ok := elem.(int); !ok {
				return &ValidationError{Name: name, Value: elem,
					Reason: "list element is not an integer"}
			}
		}
	default:
		return &TypeError{Name: name, Got: elemType}
	}

	switch s := spec.(type) {
	case nil:
		return nil
	case AllowedList:
		if !listsEqual(v, s) {
			return &ValidationError{Name: name, Value: v,
				Reason: fmt.Sprintf("list contents must equal %v", []any(s))}
		}
		return nil
	default:
		return &TypeError{Name: name, Got: spec}
	}
}

func listsEqual(a []any, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FormatValue renders a value the way the registry prints and exports it.
func FormatValue(v any) string {
	switch val := v.(type) {
	case []any:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = fmt.Sprintf("%v", elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
