package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/atmconf/internal/caseenv"
	"github.com/vk/atmconf/internal/config"
	"github.com/vk/atmconf/internal/confopts"
	"github.com/vk/atmconf/internal/cppdef"
	"github.com/vk/atmconf/internal/dycore"
)

// defaultNamelistGroups are registered for every build; derivation steps
// append more as grid and initial-condition choices demand.
var defaultNamelistGroups = []string{
	"cam_initfiles_nl",
	"cam_logfile_nl",
	"physics_nl",
	"qneg_nl",
	"vert_coord_nl",
	"ref_pres_nl",
}

// oceanComponents is the closed set of recognized ocean models. The choice
// does not affect how the case is built, only how namelist defaults are
// matched.
var oceanComponents = config.StringSet{
	"docn", "dom", "som", "socn", "aquaplanet", "pop", "mom",
}

// realKinds is the closed set of Fortran kind tokens for real variables.
var realKinds = config.StringSet{"REAL32", "REAL64"}

// builder threads the accumulating state of one derivation run through the
// ordered step sequence.
type builder struct {
	reg  *Registry
	vars *caseenv.Case

	opts      *confopts.Options
	atmGrid   string
	nx, ny    any // ints, or the literal "null" when dynamics is disabled
	nthrds    int
	startDate string
	debug     bool
	compOcn   string
	class     *dycore.Classification
}

// buildSteps is the derivation pipeline. Order is semantic: each step may
// read what earlier steps derived. Method expressions keep the table flat.
var buildSteps = []struct {
	name string
	run  func(b *builder, ctx context.Context) error
}{
	{"read case inputs", (*builder).readCase},
	{"parse user config options", (*builder).parseOptions},
	{"register start date", (*builder).registerStartDate},
	{"register debug flag", (*builder).registerDebug},
	{"register physics columns", (*builder).registerPhysicsColumns},
	{"classify dynamical core", (*builder).classifyGrid},
	{"register horizontal dimensions", (*builder).registerHorizontalDims},
	{"register initial conditions", (*builder).registerInitialConditions},
	{"register ocean component", (*builder).registerOcean},
	{"register physics suites", (*builder).registerPhysicsSuites},
	{"register real kinds", (*builder).registerRealKinds},
	{"print configuration", (*builder).printConfiguration},
}

// Build runs the full derivation pipeline against the host case. Either
// every step succeeds and the complete registry is returned, or the first
// failure aborts the build and no registry escapes.
func Build(ctx context.Context, vars *caseenv.Case) (*Registry, error) {
	b := &builder{reg: New(), vars: vars}
	for _, step := range buildSteps {
		if err := step.run(b, ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return b.reg, nil
}

func (b *builder) readCase(context.Context) error {
	var err error
	if b.atmGrid, err = b.vars.String(caseenv.KeyAtmGrid); err != nil {
		return err
	}
	nx, err := b.vars.Int(caseenv.KeyAtmNX)
	if err != nil {
		return err
	}
	ny, err := b.vars.Int(caseenv.KeyAtmNY)
	if err != nil {
		return err
	}
	b.nx, b.ny = nx, ny

	if b.nthrds, err = b.vars.Int(caseenv.KeyAtmThreads); err != nil {
		return err
	}
	if b.startDate, err = b.vars.String(caseenv.KeyRunStartDate); err != nil {
		return err
	}
	if b.debug, err = b.vars.Bool(caseenv.KeyDebug); err != nil {
		return err
	}
	if b.compOcn, err = b.vars.String(caseenv.KeyCompOcn); err != nil {
		return err
	}

	// Paths the code-generation collaborators need later.
	exeRoot, err := b.vars.String(caseenv.KeyExeRoot)
	if err != nil {
		return err
	}
	if b.reg.atmRoot, err = b.vars.String(caseenv.KeyAtmRoot); err != nil {
		return err
	}
	if b.reg.caseRoot, err = b.vars.String(caseenv.KeyCaseRoot); err != nil {
		return err
	}
	if b.reg.atmName, err = b.vars.String(caseenv.KeyCompAtm); err != nil {
		return err
	}
	b.reg.bldRoot = filepath.Join(exeRoot, "atm", "obj")

	// Seed the definition set from the host; a lone "UNSET" means none.
	cppDefs, err := b.vars.String(caseenv.KeyCppDefs)
	if err != nil {
		return err
	}
	seeds := strings.Fields(cppDefs)
	if len(seeds) == 1 && seeds[0] == "UNSET" {
		seeds = nil
	}
	b.reg.defs = cppdef.New(seeds...)

	for _, group := range defaultNamelistGroups {
		b.reg.AddNamelistGroup(group)
	}
	return nil
}

func (b *builder) parseOptions(context.Context) error {
	optStr, err := b.vars.String(caseenv.KeyConfigOpts)
	if err != nil {
		return err
	}
	opts, err := confopts.Parse(optStr)
	if err != nil {
		return err
	}
	b.opts = opts

	// Disabling dynamics voids the grid dimensions along with the grid.
	if opts.Dyn == string(dycore.None) {
		b.nx, b.ny = "null", "null"
	}
	return nil
}

func (b *builder) registerStartDate(context.Context) error {
	return b.reg.Create("ic_ymd", "Start date of model run.",
		strings.ReplaceAll(b.startDate, "-", ""), nil, AsNamelistAttr())
}

// registerDebug stores the flag as 0/1 to match the other namelist
// attribute logicals.
func (b *builder) registerDebug(context.Context) error {
	debugVal := 0
	if b.debug {
		debugVal = 1
	}
	return b.reg.Create("debug", "Flag to check if debug mode is enabled.",
		debugVal, nil, AsNamelistAttr())
}

func (b *builder) registerPhysicsColumns(context.Context) error {
	if err := b.reg.Create("pcols",
		"Maximum number of columns assigned to a thread.",
		16, config.Unbounded(1), AsNamelistAttr()); err != nil {
		return err
	}
	return b.reg.Create("psubcols",
		"Maximum number of sub-columns in a column.",
		1, config.Unbounded(1), AsNamelistAttr())
}

func (b *builder) classifyGrid(context.Context) error {
	class, err := dycore.Classify(b.atmGrid, b.opts.Dyn, b.nthrds)
	if err != nil {
		return err
	}
	b.class = class

	dynDesc := "Dynamics package, which is set by the horizontal grid specified."
	if err := b.reg.Create("dyn", dynDesc, string(class.Core),
		config.StringSet(dycore.CoreNames()), AsNamelistAttr()); err != nil {
		return err
	}

	var hgridSpec config.Spec
	if class.Pattern != nil {
		hgridSpec = config.Pattern{Re: class.Pattern}
	}
	if err := b.reg.Create("hgrid", "Horizontal grid specifier.",
		class.Grid, hgridSpec, AsNamelistAttr()); err != nil {
		return err
	}

	dynDirsDesc := "Comma-separated list of local directories containing\n" +
		"dynamics package source code.\n" +
		"These directories are assumed to be located under\n" +
		"src/dynamics, with a slash ('/') indicating directory hierarchy."

	switch class.Core {
	case dycore.SE:
		if err := b.reg.Create("dyn_src_dirs", dynDirsDesc,
			[]string{"se", filepath.Join("se", "dycore")}, nil,
			WithListType("str")); err != nil {
			return err
		}
		b.reg.AddNamelistGroup("air_composition_nl")
		b.reg.AddNamelistGroup("dyn_se_nl")

		// The spectral-element dycore is distributed-memory only.
		if err := b.reg.AddCppDef("_MPI"); err != nil {
			return err
		}
		if err := b.reg.AddCppDef("SPMD"); err != nil {
			return err
		}
		if class.NeedsOpenMP {
			if err := b.reg.AddCppDef("_OPENMP"); err != nil {
				return err
			}
		}
	case dycore.Eul:
		// Spectral truncation wavenumbers.
		if err := b.reg.Create("trm", "Maximum Fourier wavenumber.",
			1, config.Unbounded(1)); err != nil {
			return err
		}
		if err := b.reg.Create("trn",
			"Highest degree of the Legendre polynomials for m=0.",
			1, config.Unbounded(1)); err != nil {
			return err
		}
		if err := b.reg.Create("trk",
			"Highest degree of the associated Legendre polynomials.",
			1, config.Unbounded(1)); err != nil {
			return err
		}
	case dycore.None:
		if err := b.reg.Create("dyn_src_dirs", dynDirsDesc,
			[]string{"none"}, nil, WithListType("str")); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) registerHorizontalDims(context.Context) error {
	if b.class.Core == dycore.SE {
		if err := b.reg.Create("csne",
			"Number of elements along one edge of a cubed sphere grid.",
			b.class.CSNE, nil, AsNamelistAttr()); err != nil {
			return err
		}
		if err := b.reg.Create("csnp",
			"Number of points on each edge of each element in a cubed sphere grid.",
			b.class.CSNP, nil); err != nil {
			return err
		}
		if err := b.reg.Create("npg",
			"Number of finite volume grid cells on each edge of each element in a cubed sphere grid.",
			b.class.NPG, nil, AsNamelistAttr()); err != nil {
			return err
		}
		return b.reg.AddCppDefValue("NP", b.class.CSNP)
	}

	// All remaining dycores are lat/lon-based; unstructured grids carry
	// their column total in nlon with nlat pinned to one.
	nlatDesc := "Number of unique latitude points in rectangular lat/lon grid.\n" +
		"Set to 1 (one) for unstructured grids."
	if err := b.reg.Create("nlat", nlatDesc, b.ny, nil); err != nil {
		return err
	}
	nlonDesc := "Number of unique longitude points in rectangular lat/lon grid.\n" +
		"Total number of columns for unstructured grids."
	return b.reg.Create("nlon", nlonDesc, b.nx, nil)
}

func (b *builder) registerInitialConditions(context.Context) error {
	analyticVal := 0
	if b.opts.AnalyticIC {
		analyticVal = 1
		b.reg.AddNamelistGroup("analytic_ic_nl")
		if err := b.reg.AddCppDef("ANALYTIC_IC"); err != nil {
			return err
		}
	}
	desc := "Switch to turn on analytic initial conditions for the dynamics state:\n" +
		"0 => no\n" +
		"1 => yes."
	return b.reg.Create("analytic_ic", desc, analyticVal,
		config.IntSet{0, 1}, AsNamelistAttr())
}

func (b *builder) registerOcean(context.Context) error {
	desc := "The ocean model being used.\n" +
		"Valid values include prognostic ocean models (POP or MOM),\n" +
		"data ocean models (DOCN or DOM), a stub ocean (SOCN),\n" +
		"and an aqua planet ocean (aquaplanet).\n" +
		"This does not impact how the case is built, only how\n" +
		"attributes are matched when searching for namelist defaults."
	return b.reg.Create("ocn", desc, b.compOcn, oceanComponents, AsNamelistAttr())
}

func (b *builder) registerPhysicsSuites(context.Context) error {
	desc := "A semicolon-separated list of physics suite definition file (SDF) names.\n" +
		"To specify the Kessler and Held-Suarez suites as\n" +
		"run time options, use '--physics-suites kessler;held_suarez_1994'."
	return b.reg.Create("physics_suites", desc, b.opts.PhysicsSuites, nil)
}

func (b *builder) registerRealKinds(context.Context) error {
	if err := b.reg.Create("dyn_kind",
		"Fortran kind used in dycore for type real.",
		b.opts.DynKind, realKinds); err != nil {
		return err
	}
	return b.reg.Create("phys_kind",
		"Fortran kind used in physics for type real.",
		b.opts.PhysKind, realKinds)
}

func (b *builder) printConfiguration(ctx context.Context) error {
	b.reg.PrintAll(ctx)
	return nil
}
