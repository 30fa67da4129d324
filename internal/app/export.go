package app

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/atmconf/internal/registry"
)

// derivedEntry is one name/value pair of the exported configuration.
// Entries are a sequence, not a mapping, so registry insertion order
// survives the round trip to the downstream generators.
type derivedEntry struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// derivedOutput is the YAML document consumed by the namelist and source
// generators.
type derivedOutput struct {
	Values         []derivedEntry `yaml:"values"`
	NamelistGroups []string       `yaml:"namelist_groups"`
	CppFlags       []string       `yaml:"cpp_flags"`
}

// writeDerived marshals the registry's outputs and writes them to path.
func writeDerived(path string, reg *registry.Registry) error {
	out := derivedOutput{
		NamelistGroups: reg.NamelistGroups(),
		CppFlags:       reg.CppFlags(),
	}
	for _, name := range reg.Names() {
		value, err := reg.Get(name)
		if err != nil {
			return err
		}
		out.Values = append(out.Values, derivedEntry{Name: name, Value: value})
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
