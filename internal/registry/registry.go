package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/atmconf/internal/config"
	"github.com/vk/atmconf/internal/cppdef"
	"github.com/vk/atmconf/internal/ctxlog"
	"github.com/vk/atmconf/internal/physics"
)

// DuplicateNameError reports an attempt to create a config variable under
// a name that already exists. Re-creation is never a silent overwrite.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("config variable %q already exists; any new config variable must be given a different name", e.Name)
}

// UnknownNameError reports a lookup of a config variable that was never
// created.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("invalid configuration name %q", e.Name)
}

// Registry maps unique names to config values, in insertion order.
type Registry struct {
	values    map[string]config.Value
	order     []string
	nmlGroups []string
	defs      *cppdef.Set

	// case paths retained for the code-generation collaborators
	atmRoot  string
	caseRoot string
	bldRoot  string
	atmName  string
}

// New creates an empty registry. Build is the usual constructor; New
// exists for tests and for collaborators that assemble registries by hand.
func New() *Registry {
	return &Registry{
		values: make(map[string]config.Value),
		defs:   cppdef.New(),
	}
}

// CreateOption adjusts how Create constructs a value.
type CreateOption func(*createOptions)

type createOptions struct {
	nmlAttr  bool
	listType string
	allowed  config.AllowedList
}

// AsNamelistAttr marks the variable as a namelist XML attribute.
func AsNamelistAttr() CreateOption {
	return func(o *createOptions) { o.nmlAttr = true }
}

// WithListType constrains every element of a list value to the named
// elementary type ("str" or "int").
func WithListType(t string) CreateOption {
	return func(o *createOptions) { o.listType = t }
}

// WithAllowedList constrains a list value's contents as a whole.
func WithAllowedList(allowed config.AllowedList) CreateOption {
	return func(o *createOptions) { o.allowed = allowed }
}

// Create constructs the config variant matching the value's kind and
// inserts it under name. Only integers, strings, and lists are accepted;
// the kind check runs before the uniqueness check. spec applies to scalar
// variants; list constraints arrive through options.
func (r *Registry) Create(name, desc string, value any, spec config.Spec, opts ...CreateOption) error {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		entry config.Value
		err   error
	)
	switch v := value.(type) {
	case int:
		entry, err = config.NewInteger(name, desc, v, spec, o.nmlAttr)
	case string:
		entry, err = config.NewString(name, desc, v, spec, o.nmlAttr)
	case []any:
		entry, err = config.NewList(name, desc, v, o.listType, listSpec(o.allowed))
	case []string:
		elems := make([]any, len(v))
		for i, s := range v {
			elems[i] = s
		}
		entry, err = config.NewList(name, desc, elems, o.listType, listSpec(o.allowed))
	default:
		return &config.TypeError{Name: name, Got: value}
	}
	if err != nil {
		return err
	}

	if _, exists := r.values[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	r.values[name] = entry
	r.order = append(r.order, name)
	return nil
}

// listSpec keeps a nil AllowedList a nil Spec, so an absent option means
// "unconstrained" rather than "must equal the empty list".
func listSpec(allowed config.AllowedList) config.Spec {
	if allowed == nil {
		return nil
	}
	return allowed
}

func (r *Registry) lookup(name string) (config.Value, error) {
	entry, ok := r.values[name]
	if !ok {
		return nil, &UnknownNameError{Name: name}
	}
	return entry, nil
}

// Get returns the current value of the named variable.
func (r *Registry) Get(name string) (any, error) {
	entry, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.Value(), nil
}

// GetString returns the named variable's value as a string, failing when
// the variable holds a different kind.
func (r *Registry) GetString(name string) (string, error) {
	value, err := r.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", &config.TypeError{Name: name, Got: value}
	}
	return s, nil
}

// SetValue re-validates and updates the named variable. Only integer and
// string updates are supported through this path.
func (r *Registry) SetValue(name string, value any) error {
	entry, err := r.lookup(name)
	if err != nil {
		return err
	}
	switch value.(type) {
	case int, string:
	default:
		return &config.TypeError{Name: name, Got: value}
	}
	return entry.SetValue(value)
}

// Names returns the variable names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AddCppDef records a bare preprocessor symbol.
func (r *Registry) AddCppDef(symbol string) error {
	return r.defs.Add(symbol)
}

// AddCppDefValue records a preprocessor symbol carrying a value.
func (r *Registry) AddCppDefValue(symbol string, value any) error {
	return r.defs.AddValue(symbol, value)
}

// CppFlags returns the accumulated definition flags in insertion order.
func (r *Registry) CppFlags() []string {
	return r.defs.Flags()
}

// AddNamelistGroup appends a namelist group name. Appending never
// deduplicates; generation-time discoveries may repeat a group.
func (r *Registry) AddNamelistGroup(group string) {
	r.nmlGroups = append(r.nmlGroups, group)
}

// NamelistGroups returns the group names in append order.
func (r *Registry) NamelistGroups() []string {
	out := make([]string, len(r.nmlGroups))
	copy(out, r.nmlGroups)
	return out
}

// AtmRoot returns the atmosphere component root directory.
func (r *Registry) AtmRoot() string { return r.atmRoot }

// CaseRoot returns the case root directory.
func (r *Registry) CaseRoot() string { return r.caseRoot }

// BldRoot returns the atmosphere object/build directory.
func (r *Registry) BldRoot() string { return r.bldRoot }

// AtmName returns the atmosphere component name.
func (r *Registry) AtmName() string { return r.atmName }

// PrintOne Debug-logs the description and current value of one variable.
func (r *Registry) PrintOne(ctx context.Context, name string) error {
	entry, err := r.lookup(name)
	if err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug(entry.Description())
	logger.Debug(fmt.Sprintf("%s = %s", entry.Name(), config.FormatValue(entry.Value())))
	return nil
}

// PrintAll Debug-logs every variable, then the CPP flags, between
// separator lines.
func (r *Registry) PrintAll(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("atmosphere configuration variables:")
	logger.Debug("-----------------------------")
	for _, name := range r.order {
		// lookup cannot fail for names in order
		_ = r.PrintOne(ctx, name)
	}
	if r.defs.Len() > 0 {
		logger.Debug("CPP defs: " + strings.Join(r.defs.Flags(), " "))
	}
	logger.Debug("-----------------------------")
}

// ResolvePhysicsSuite reconciles the user's namelist-level suite selection
// against the registry's declared suite list, writing the result into both
// dictionaries on success.
func (r *Registry) ResolvePhysicsSuite(nlValues, attrs map[string]string) (string, error) {
	declared, err := r.GetString("physics_suites")
	if err != nil {
		return "", err
	}
	return physics.Resolve(declared, nlValues, attrs)
}

// RecordGeneratedPaths appends the registry entries naming where the code
// generators placed their output. Called once, after generation.
func (r *Registry) RecordGeneratedPaths(regDir, physDirs, initDir string) error {
	if err := r.Create("reg_dir",
		"Location of auto-generated registry code.", regDir, nil); err != nil {
		return err
	}
	if err := r.Create("phys_dirs",
		"Locations of auto-generated CCPP physics codes.", physDirs, nil); err != nil {
		return err
	}
	return r.Create("init_dir",
		"Location of auto-generated physics initialization code.", initDir, nil)
}
