package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleCase = `
case {
  atm_grid          = "ne30np4.pg2"
  cam_config_opts   = "--physics-suites kessler"
  atm_nx            = 180
  atm_ny            = 90
  comp_ocn          = "docn"
  comp_atm          = "cam"
  exeroot           = "/bld"
  caseroot          = "/case"
  comp_root_dir_atm = "/atm"
  cam_cppdefs       = "UNSET"
  nthrds_atm        = 2
  run_startdate     = "1979-01-01"
  debug             = false
}
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	casePath := filepath.Join(dir, "case.hcl")
	outPath := filepath.Join(dir, "derived.yaml")
	require.NoError(t, os.WriteFile(casePath, []byte(sampleCase), 0o644))

	cfg, err := NewConfig(Config{
		CasePath:  casePath,
		OutPath:   outPath,
		LogFormat: "text",
		LogLevel:  "debug",
	})
	require.NoError(t, err)

	a := NewApp(io.Discard, cfg)
	require.NoError(t, a.Run(context.Background(), cfg))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var out struct {
		Values []struct {
			Name  string `yaml:"name"`
			Value any    `yaml:"value"`
		} `yaml:"values"`
		NamelistGroups []string `yaml:"namelist_groups"`
		CppFlags       []string `yaml:"cpp_flags"`
	}
	require.NoError(t, yaml.Unmarshal(data, &out))

	values := map[string]any{}
	for _, entry := range out.Values {
		values[entry.Name] = entry.Value
	}
	assert.Equal(t, "se", values["dyn"])
	assert.Equal(t, "ne30np4.pg2", values["hgrid"])
	assert.Equal(t, 30, values["csne"])
	assert.Equal(t, filepath.Join("/bld", "atm", "obj", "registry"), values["reg_dir"])

	assert.Contains(t, out.NamelistGroups, "dyn_se_nl")
	assert.Contains(t, out.CppFlags, "-DSPMD")
	assert.Contains(t, out.CppFlags, "-D_OPENMP")
}

func TestRunFailsOnBadCase(t *testing.T) {
	dir := t.TempDir()
	casePath := filepath.Join(dir, "case.hcl")
	require.NoError(t, os.WriteFile(casePath, []byte("case {\n  atm_grid = \"T42\"\n}\n"), 0o644))

	cfg, err := NewConfig(Config{CasePath: casePath, LogFormat: "text", LogLevel: "error"})
	require.NoError(t, err)

	a := NewApp(io.Discard, cfg)
	assert.Error(t, a.Run(context.Background(), cfg))
}

func TestNewConfigRequiresCasePath(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.Error(t, err)
}
