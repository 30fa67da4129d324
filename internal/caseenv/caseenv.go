// Package caseenv is the host case abstraction: a read-only bag of typed
// case variables (grid name, thread count, component choices and paths)
// supplied by the invoking build environment. Values are held as
// cty.Value so the loader can hand them over without committing to Go
// types, and the accessors convert on demand.
package caseenv

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Keys the configuration build reads. The loader accepts the same names
// case-insensitively.
const (
	KeyAtmGrid       = "ATM_GRID"
	KeyConfigOpts    = "CAM_CONFIG_OPTS"
	KeyAtmNX         = "ATM_NX"
	KeyAtmNY         = "ATM_NY"
	KeyCompOcn       = "COMP_OCN"
	KeyCompAtm       = "COMP_ATM"
	KeyExeRoot       = "EXEROOT"
	KeyCaseRoot      = "CASEROOT"
	KeyAtmRoot       = "COMP_ROOT_DIR_ATM"
	KeyCppDefs       = "CAM_CPPDEFS"
	KeyAtmThreads    = "NTHRDS_ATM"
	KeyRunStartDate  = "RUN_STARTDATE"
	KeyDebug         = "DEBUG"
)

// MissingKeyError reports a case variable the host did not supply.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("case variable %q is not set", e.Key)
}

// Case holds the host-provided variables for one configuration build.
type Case struct {
	vars map[string]cty.Value
}

// FromValues builds a Case from an already-typed variable map.
func FromValues(vars map[string]cty.Value) *Case {
	copied := make(map[string]cty.Value, len(vars))
	for key, val := range vars {
		copied[key] = val
	}
	return &Case{vars: copied}
}

// String returns the named variable converted to a string.
func (c *Case) String(key string) (string, error) {
	val, ok := c.vars[key]
	if !ok {
		return "", &MissingKeyError{Key: key}
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("case variable %q is not convertible to string: %w", key, err)
	}
	return converted.AsString(), nil
}

// Int returns the named variable converted to an int.
func (c *Case) Int(key string) (int, error) {
	val, ok := c.vars[key]
	if !ok {
		return 0, &MissingKeyError{Key: key}
	}
	converted, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("case variable %q is not convertible to a number: %w", key, err)
	}
	var n int
	if err := gocty.FromCtyValue(converted, &n); err != nil {
		return 0, fmt.Errorf("case variable %q is not an integer: %w", key, err)
	}
	return n, nil
}

// Bool returns the named variable converted to a bool.
func (c *Case) Bool(key string) (bool, error) {
	val, ok := c.vars[key]
	if !ok {
		return false, &MissingKeyError{Key: key}
	}
	converted, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("case variable %q is not convertible to bool: %w", key, err)
	}
	return converted.True(), nil
}
