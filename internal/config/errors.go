package config

import "fmt"

// TypeError reports a value (or spec) of a kind the config model does not
// accept. Only integers, strings, and lists may be stored.
type TypeError struct {
	Name string // config variable name
	Got  any    // the offending value or spec
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("config variable %q: unsupported type %T; value must be an integer, string, or list", e.Name, e.Got)
}

// ValidationError reports a value that fails its variable's declared
// constraint. The prior value, if any, is always retained.
type ValidationError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config variable %q: value %v is invalid: %s", e.Name, e.Value, e.Reason)
}
