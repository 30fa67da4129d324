// Package dycore classifies an atmosphere grid name into a dynamical-core
// selection and the grid parameters that core needs. Classification is a
// pure, deterministic function over the grid token: an ordered list of
// shape patterns is tried in sequence and the first prefix match wins.
// The patterns are not globally disjoint, so their order encodes
// precedence and must not change.
package dycore
