// Package physics reconciles the user's physics-suite selection against
// the suites the configuration declares. Exactly one suite must be active
// per run; with a single declared suite the selection is optional, with
// several it is mandatory.
package physics

import (
	"fmt"
	"strings"
)

// Unset is the sentinel the namelist layer uses for "no selection given".
const Unset = "UNSET"

// SuiteKey is the namelist variable carrying the selection.
const SuiteKey = "physics_suite"

// AttrKey is the attribute-dictionary key the generator consumes.
const AttrKey = "phys_suite"

// SuiteMismatchError reports an explicit selection that does not equal the
// single declared suite.
type SuiteMismatchError struct {
	Given    string
	Declared string
}

func (e *SuiteMismatchError) Error() string {
	return fmt.Sprintf("physics_suite %q does not match the suite listed in the configuration: %q", e.Given, e.Declared)
}

// SuiteRequiredError reports a missing selection when several suites are
// declared.
type SuiteRequiredError struct {
	Declared string
}

func (e *SuiteRequiredError) Error() string {
	return fmt.Sprintf("no physics_suite selection was given; one is required because more than one suite is listed in the configuration: %q", e.Declared)
}

// SuiteNotFoundError reports a selection absent from the declared list.
type SuiteNotFoundError struct {
	Given    string
	Declared string
}

func (e *SuiteNotFoundError) Error() string {
	return fmt.Sprintf("physics_suite %q does not match any suite listed in the configuration: %q", e.Given, e.Declared)
}

// Resolve determines the active suite. declared is the semicolon-separated
// suite list from the registry; the user's selection is read from
// nlValues[SuiteKey], trimmed, with Unset meaning none given. On success
// the resolved name is written back into nlValues and into attrs; the
// call mutates both dictionaries, it is not a pure query.
func Resolve(declared string, nlValues, attrs map[string]string) (string, error) {
	suites := strings.Split(declared, ";")
	selection := strings.TrimSpace(nlValues[SuiteKey])

	if len(suites) == 1 {
		sole := strings.TrimSpace(suites[0])
		if selection != Unset {
			if selection != sole {
				return "", &SuiteMismatchError{Given: selection, Declared: sole}
			}
		}
		nlValues[SuiteKey] = sole
		attrs[AttrKey] = sole
		return sole, nil
	}

	if selection == Unset {
		return "", &SuiteRequiredError{Declared: declared}
	}
	for _, suite := range suites {
		suite = strings.TrimSpace(suite)
		if selection == suite {
			nlValues[SuiteKey] = suite
			attrs[AttrKey] = suite
			return suite, nil
		}
	}
	return "", &SuiteNotFoundError{Given: selection, Declared: declared}
}
