// Package config defines the typed, self-validating value model that the
// registry stores. A value is one of exactly three variants (Integer,
// String, or List), chosen once when the value is constructed and never
// re-inspected afterwards. Each variant carries an optional validation
// spec; a value that does not satisfy its spec can never be observed,
// because both construction and later mutation re-validate before
// committing.
package config
