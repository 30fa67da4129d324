package config

// Value is the interface shared by the three config variants. The set of
// implementations is closed; the unexported method keeps it that way.
type Value interface {
	// Name returns the variable's unique registry key.
	Name() string
	// Description returns the variable's free-text description.
	Description() string
	// Value returns the current datum.
	Value() any
	// SetValue re-validates and commits a new datum. On failure the
	// prior datum is retained.
	SetValue(v any) error
	// NamelistAttr reports whether the namelist generator treats this
	// variable as an XML attribute.
	NamelistAttr() bool

	sealed()
}

// Integer holds a single integer config variable.
type Integer struct {
	name    string
	desc    string
	val     int
	spec    Spec
	nmlAttr bool
}

// NewInteger constructs an integer variable. The spec must be nil, an
// IntRange, or an IntSet, and the initial value must satisfy it.
func NewInteger(name, desc string, val int, spec Spec, nmlAttr bool) (*Integer, error) {
	switch spec.(type) {
	case nil, IntRange, IntSet:
	default:
		return nil, &TypeError{Name: name, Got: spec}
	}
	if err := checkInt(name, val, spec); err != nil {
		return nil, err
	}
	return &Integer{name: name, desc: desc, val: val, spec: spec, nmlAttr: nmlAttr}, nil
}

func (c *Integer) Name() string        { return c.name }
func (c *Integer) Description() string { return c.desc }
func (c *Integer) Value() any          { return c.val }
func (c *Integer) NamelistAttr() bool  { return c.nmlAttr }
func (c *Integer) sealed()             {}

func (c *Integer) SetValue(v any) error {
	n, ok := v.(int)
	if !ok {
		return &TypeError{Name: c.name, Got: v}
	}
	if err := checkInt(c.name, n, c.spec); err != nil {
		return err
	}
	c.val = n
	return nil
}

// String holds a single string config variable.
type String struct {
	name    string
	desc    string
	val     string
	spec    Spec
	nmlAttr bool
}

// NewString constructs a string variable. The spec must be nil, a
// StringSet, or a Pattern, and the initial value must satisfy it.
func NewString(name, desc, val string, spec Spec, nmlAttr bool) (*String, error) {
	switch spec.(type) {
	case nil, StringSet, Pattern:
	default:
		return nil, &TypeError{Name: name, Got: spec}
	}
	if err := checkString(name, val, spec); err != nil {
		return nil, err
	}
	return &String{name: name, desc: desc, val: val, spec: spec, nmlAttr: nmlAttr}, nil
}

func (c *String) Name() string        { return c.name }
func (c *String) Description() string { return c.desc }
func (c *String) Value() any          { return c.val }
func (c *String) NamelistAttr() bool  { return c.nmlAttr }
func (c *String) sealed()             {}

func (c *String) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return &TypeError{Name: c.name, Got: v}
	}
	if err := checkString(c.name, s, c.spec); err != nil {
		return err
	}
	c.val = s
	return nil
}

// List holds a list-valued config variable. The element type name ("str"
// or "int", empty for unconstrained) is checked per element; the optional
// AllowedList spec constrains the list's contents as a whole.
type List struct {
	name     string
	desc     string
	val      []any
	elemType string
	spec     Spec
}

// NewList constructs a list variable. The spec must be nil or an
// AllowedList.
func NewList(name, desc string, val []any, elemType string, spec Spec) (*List, error) {
	switch spec.(type) {
	case nil, AllowedList:
	default:
		return nil, &TypeError{Name: name, Got: spec}
	}
	if err := checkList(name, val, elemType, spec); err != nil {
		return nil, err
	}
	return &List{name: name, desc: desc, val: val, elemType: elemType, spec: spec}, nil
}

func (c *List) Name() string        { return c.name }
func (c *List) Description() string { return c.desc }
func (c *List) Value() any          { return c.val }

// NamelistAttr is always false for lists; the namelist generator only
// consumes scalar attributes.
func (c *List) NamelistAttr() bool { return false }
func (c *List) sealed()            {}

func (c *List) SetValue(v any) error {
	l, ok := v.([]any)
	if !ok {
		return &TypeError{Name: c.name, Got: v}
	}
	if err := checkList(c.name, l, c.elemType, c.spec); err != nil {
		return err
	}
	c.val = l
	return nil
}
