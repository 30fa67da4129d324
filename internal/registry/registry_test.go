package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/atmconf/internal/config"
)

func TestCreateRoundTrip(t *testing.T) {
	r := New()

	t.Run("integer", func(t *testing.T) {
		require.NoError(t, r.Create("test_int", "test object description", 5, nil))
		got, err := r.Get("test_int")
		require.NoError(t, err)
		assert.Equal(t, 5, got)
	})

	t.Run("string", func(t *testing.T) {
		require.NoError(t, r.Create("test_str", "test object description", "test_val", nil))
		got, err := r.Get("test_str")
		require.NoError(t, err)
		assert.Equal(t, "test_val", got)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, r.Create("test_list", "test object description", []any{1, 2}, nil))
		got, err := r.Get("test_list")
		require.NoError(t, err)
		assert.Equal(t, []any{1, 2}, got)
	})

	t.Run("string slice convenience", func(t *testing.T) {
		require.NoError(t, r.Create("test_dirs", "d", []string{"se", "se/dycore"}, nil,
			WithListType("str")))
		got, err := r.Get("test_dirs")
		require.NoError(t, err)
		assert.Equal(t, []any{"se", "se/dycore"}, got)
	})

	assert.Equal(t, []string{"test_int", "test_str", "test_list", "test_dirs"}, r.Names())
}

func TestCreateDuplicateName(t *testing.T) {
	r := New()
	require.NoError(t, r.Create("dup", "d", 5, nil))

	var dupErr *DuplicateNameError
	require.ErrorAs(t, r.Create("dup", "d", 6, nil), &dupErr)
	assert.Equal(t, "dup", dupErr.Name)

	// The kind of the second value is irrelevant.
	assert.ErrorAs(t, r.Create("dup", "d", "six", nil), &dupErr)
	assert.ErrorAs(t, r.Create("dup", "d", []any{"six"}, nil), &dupErr)
}

func TestCreateUnsupportedKind(t *testing.T) {
	r := New()
	err := r.Create("test_dict", "d", map[string]string{"x": "y"}, nil)
	var typeErr *config.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "test_dict", typeErr.Name)

	// Kind check precedes the uniqueness check: an unsupported kind under
	// an existing name still reports the kind problem.
	require.NoError(t, r.Create("existing", "d", 1, nil))
	assert.ErrorAs(t, r.Create("existing", "d", map[string]int{}, nil), &typeErr)
}

func TestGetAndSetValue(t *testing.T) {
	r := New()
	require.NoError(t, r.Create("n", "d", 3, config.Bounded(1, 5)))

	t.Run("unknown name", func(t *testing.T) {
		var unknownErr *UnknownNameError
		_, err := r.Get("missing")
		require.ErrorAs(t, err, &unknownErr)
		assert.ErrorAs(t, r.SetValue("missing", 1), &unknownErr)
	})

	t.Run("valid update", func(t *testing.T) {
		require.NoError(t, r.SetValue("n", 5))
		got, err := r.Get("n")
		require.NoError(t, err)
		assert.Equal(t, 5, got)
	})

	t.Run("invalid update retains prior value", func(t *testing.T) {
		require.Error(t, r.SetValue("n", 9))
		got, err := r.Get("n")
		require.NoError(t, err)
		assert.Equal(t, 5, got)
	})

	t.Run("list updates are rejected", func(t *testing.T) {
		var typeErr *config.TypeError
		assert.ErrorAs(t, r.SetValue("n", []any{1}), &typeErr)
	})
}

func TestNamelistGroupsAllowDuplicates(t *testing.T) {
	r := New()
	r.AddNamelistGroup("physics_nl")
	r.AddNamelistGroup("physics_nl")
	assert.Equal(t, []string{"physics_nl", "physics_nl"}, r.NamelistGroups())
}

func TestRecordGeneratedPaths(t *testing.T) {
	r := New()
	require.NoError(t, r.RecordGeneratedPaths("/bld/registry", "/bld/phys_a;/bld/phys_b", "/bld/init"))

	regDir, err := r.GetString("reg_dir")
	require.NoError(t, err)
	assert.Equal(t, "/bld/registry", regDir)

	physDirs, err := r.GetString("phys_dirs")
	require.NoError(t, err)
	assert.Equal(t, "/bld/phys_a;/bld/phys_b", physDirs)

	initDir, err := r.GetString("init_dir")
	require.NoError(t, err)
	assert.Equal(t, "/bld/init", initDir)

	// Recording twice collides on the names.
	var dupErr *DuplicateNameError
	assert.ErrorAs(t, r.RecordGeneratedPaths("x", "y", "z"), &dupErr)
}

func TestResolvePhysicsSuite(t *testing.T) {
	r := New()
	require.NoError(t, r.Create("physics_suites", "d", "kessler;musica", nil))

	nlValues := map[string]string{"physics_suite": "musica"}
	attrs := map[string]string{}
	suite, err := r.ResolvePhysicsSuite(nlValues, attrs)
	require.NoError(t, err)
	assert.Equal(t, "musica", suite)
	assert.Equal(t, "musica", attrs["phys_suite"])
}
