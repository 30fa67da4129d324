package dycore

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Core identifies a dynamical core.
type Core string

const (
	Eul  Core = "eul"  // spectral Eulerian
	FV   Core = "fv"   // finite volume
	SE   Core = "se"   // spectral element (cubed sphere)
	FV3  Core = "fv3"  // GFDL finite volume cubed sphere
	MPAS Core = "mpas" // MPAS unstructured mesh
	None Core = "none" // no dynamics
)

// CoreNames returns every valid core identifier, in a fixed order suitable
// for use as a validation set.
func CoreNames() []string {
	return []string{"eul", "fv", "se", "fv3", "mpas", "none"}
}

// UnknownGridError reports a grid token matching none of the known shape
// patterns.
type UnknownGridError struct {
	Grid string
}

func (e *UnknownGridError) Error() string {
	return fmt.Sprintf("horizontal grid %q does not match any known format", e.Grid)
}

// MismatchError reports a user-declared dycore that disagrees with the
// core implied by the grid token.
type MismatchError struct {
	User    string
	Derived Core
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("user-specified dynamics option %q does not match dycore expected from case grid: %q", e.User, e.Derived)
}

// InvalidCoreError reports a user-declared dycore outside the valid set.
type InvalidCoreError struct {
	Value string
}

func (e *InvalidCoreError) Error() string {
	return fmt.Sprintf("%q is not a valid dycore; valid values: %v", e.Value, CoreNames())
}

// Classification is the result of mapping a grid name to a core. The
// cubed-sphere fields are populated for the spectral-element core only.
type Classification struct {
	Core    Core
	Grid    string         // working grid token after canonicalization
	Pattern *regexp.Regexp // shape pattern that matched; nil for the null grid

	CSNE int // elements along one edge of the cubed sphere
	CSNP int // points on each edge of each element
	NPG  int // physics-grid cells per element edge, 0 when absent

	NeedsOpenMP bool // spectral-element core with more than one thread
}

// levelSuffixRe strips a trailing vertical-level count ("...z32") from a
// grid name; only the prefix names the horizontal grid.
var levelSuffixRe = regexp.MustCompile(`^(.+)z(\d+)`)

var (
	fvGridRe   = regexp.MustCompile(`[0-9][0-9.]*x[0-9][0-9.]*`)
	seGridRe   = regexp.MustCompile(`ne[0-9]+np[1-8](.*)(pg[1-9])?`)
	fv3GridRe  = regexp.MustCompile(`C[0-9]+`)
	mpasGridRe = regexp.MustCompile(`mpasa[0-9]+`)
	eulGridRe  = regexp.MustCompile(`T[0-9]+`)
)

// gridRules is evaluated in order; first prefix match wins. A slice, not a
// map: "T42" would also prefix-match nothing else today, but "C96" and a
// hypothetical se token overlap with the looser patterns, so position is
// load-bearing.
var gridRules = []struct {
	re   *regexp.Regexp
	core Core
}{
	{fvGridRe, FV},
	{seGridRe, SE},
	{fv3GridRe, FV3},
	{mpasGridRe, MPAS},
	{eulGridRe, Eul},
}

// matchesPrefix reports whether s has a prefix matching re, mirroring the
// anchored-at-start matching the shape patterns were written for.
func matchesPrefix(re *regexp.Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

// Classify maps atmGrid to a core and derived grid parameters. userDyn is
// the optional explicit dycore request ("" for none); nthrds is the
// atmosphere thread count, which only influences the OpenMP requirement
// of the spectral-element core.
func Classify(atmGrid, userDyn string, nthrds int) (*Classification, error) {
	if userDyn != "" {
		valid := false
		for _, name := range CoreNames() {
			if userDyn == name {
				valid = true
				break
			}
		}
		if !valid {
			return nil, &InvalidCoreError{Value: userDyn}
		}
	}

	// Hard-wired rename: the grid catalog still hands out the legacy
	// name for this physics-grid configuration.
	if atmGrid == "ne30pg3" {
		atmGrid = "ne30np4.pg3"
	}

	if m := levelSuffixRe.FindStringSubmatch(atmGrid); m != nil {
		atmGrid = m[1]
	}

	// An explicit request for no dynamics short-circuits pattern
	// matching entirely.
	if userDyn == string(None) {
		atmGrid = "null"
	}

	var class *Classification
	if atmGrid == "null" {
		class = &Classification{Core: None, Grid: atmGrid}
	} else {
		for _, rule := range gridRules {
			if matchesPrefix(rule.re, atmGrid) {
				class = &Classification{Core: rule.core, Grid: atmGrid, Pattern: rule.re}
				break
			}
		}
		if class == nil {
			return nil, &UnknownGridError{Grid: atmGrid}
		}
	}

	if userDyn != "" && userDyn != string(class.Core) {
		return nil, &MismatchError{User: userDyn, Derived: class.Core}
	}

	if class.Core == SE {
		if err := class.decodeCubedSphere(); err != nil {
			return nil, err
		}
		class.NeedsOpenMP = nthrds > 1
	}

	return class, nil
}

// decodeCubedSphere extracts the cubed-sphere counts by string offset: the
// token always starts with "ne", the element count runs up to "np", the
// point count runs from there to ".pg" or end of string, and the
// physics-grid count follows ".pg" when present.
func (c *Classification) decodeCubedSphere() error {
	npIdx := strings.Index(c.Grid, "np")
	pgIdx := strings.Index(c.Grid, ".pg")

	csne, err := strconv.Atoi(c.Grid[2:npIdx])
	if err != nil {
		return &UnknownGridError{Grid: c.Grid}
	}
	c.CSNE = csne

	if pgIdx > -1 {
		csnp, err := strconv.Atoi(c.Grid[npIdx+2 : pgIdx])
		if err != nil {
			return &UnknownGridError{Grid: c.Grid}
		}
		npg, err := strconv.Atoi(c.Grid[pgIdx+3:])
		if err != nil {
			return &UnknownGridError{Grid: c.Grid}
		}
		c.CSNP, c.NPG = csnp, npg
	} else {
		csnp, err := strconv.Atoi(c.Grid[npIdx+2:])
		if err != nil {
			return &UnknownGridError{Grid: c.Grid}
		}
		c.CSNP, c.NPG = csnp, 0
	}
	return nil
}
