// Package confopts parses the user option string handed down by the host
// case (CAM_CONFIG_OPTS). The vocabulary is deliberately small; anything
// unrecognized is a usage error that aborts the configuration build.
package confopts

import (
	"bytes"
	"flag"
	"fmt"
	"strings"
)

// RealKind64 is the default Fortran kind token for real-typed variables.
const RealKind64 = "REAL64"

// UsageError reports an unparseable or incomplete option string. Code is
// the process exit code the invoking build tool should use; Usage holds
// the rendered option summary.
type UsageError struct {
	Code    int
	Message string
	Usage   string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Options holds the parsed user selections.
type Options struct {
	PhysicsSuites string // semicolon-separated suite list, required
	Dyn           string // explicit dycore request, "" when absent
	AnalyticIC    bool   // analytic initial conditions
	DynKind       string // Fortran real kind in the dycore
	PhysKind      string // Fortran real kind in the physics
}

// Parse tokenizes and parses the option string. Any parse failure or a
// missing --physics-suites yields a *UsageError with exit code 2.
func Parse(optStr string) (*Options, error) {
	var usage bytes.Buffer
	flagSet := flag.NewFlagSet("CAM_CONFIG_OPTS", flag.ContinueOnError)
	flagSet.SetOutput(&usage)

	flagSet.Usage = func() {
		fmt.Fprint(&usage, "Allowed values of CAM_CONFIG_OPTS:\n")
		flagSet.PrintDefaults()
	}

	suitesFlag := flagSet.String("physics-suites", "",
		"Semicolon-separated list of Physics Suite Definition Files (SDFs). Required.")
	dynFlag := flagSet.String("dyn", "", "Name of dycore.")
	analyticFlag := flagSet.Bool("analytic_ic", false,
		"Flag to turn on Analytic Initial Conditions (ICs).")
	dynKindFlag := flagSet.String("dyn_kind", RealKind64,
		"Fortran kind used in dycore for type real.")
	physKindFlag := flagSet.String("phys_kind", RealKind64,
		"Fortran kind used in physics for type real.")

	tokens := strings.Fields(optStr)
	if err := flagSet.Parse(tokens); err != nil {
		return nil, &UsageError{Code: 2, Message: err.Error(), Usage: usage.String()}
	}

	// flag stops at the first non-flag token; anything left over means the
	// option string is malformed and must not be partially honored.
	if flagSet.NArg() > 0 {
		flagSet.Usage()
		return nil, &UsageError{
			Code:    2,
			Message: fmt.Sprintf("unrecognized arguments in CAM_CONFIG_OPTS: %s", strings.Join(flagSet.Args(), " ")),
			Usage:   usage.String(),
		}
	}

	if *suitesFlag == "" {
		flagSet.Usage()
		return nil, &UsageError{
			Code:    2,
			Message: "the --physics-suites option is required",
			Usage:   usage.String(),
		}
	}

	return &Options{
		PhysicsSuites: *suitesFlag,
		Dyn:           *dynFlag,
		AnalyticIC:    *analyticFlag,
		DynKind:       *dynKindFlag,
		PhysKind:      *physKindFlag,
	}, nil
}
