package config

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInteger(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		v, err := NewInteger("pcols", "max columns", 16, nil, true)
		require.NoError(t, err)
		assert.Equal(t, "pcols", v.Name())
		assert.Equal(t, 16, v.Value())
		assert.True(t, v.NamelistAttr())
	})

	t.Run("unbounded range", func(t *testing.T) {
		_, err := NewInteger("n", "d", 1, Unbounded(1), false)
		assert.NoError(t, err)

		_, err = NewInteger("n", "d", 0, Unbounded(1), false)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "n", valErr.Name)
	})

	t.Run("bounded range", func(t *testing.T) {
		_, err := NewInteger("n", "d", 5, Bounded(1, 5), false)
		assert.NoError(t, err)

		_, err = NewInteger("n", "d", 6, Bounded(1, 5), false)
		assert.ErrorContains(t, err, "above maximum 5")
	})

	t.Run("enumerated set", func(t *testing.T) {
		_, err := NewInteger("flag", "d", 1, IntSet{0, 1}, false)
		assert.NoError(t, err)

		_, err = NewInteger("flag", "d", 2, IntSet{0, 1}, false)
		assert.ErrorContains(t, err, "not in allowed set")
	})

	t.Run("spec of the wrong kind", func(t *testing.T) {
		_, err := NewInteger("n", "d", 1, StringSet{"a"}, false)
		var typeErr *TypeError
		assert.ErrorAs(t, err, &typeErr)
	})
}

func TestIntegerSetValue(t *testing.T) {
	v, err := NewInteger("n", "d", 3, Bounded(1, 5), false)
	require.NoError(t, err)

	require.NoError(t, v.SetValue(4))
	assert.Equal(t, 4, v.Value())

	t.Run("invalid value retains prior", func(t *testing.T) {
		err := v.SetValue(9)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, 4, v.Value())
	})

	t.Run("wrong kind retains prior", func(t *testing.T) {
		err := v.SetValue("five")
		var typeErr *TypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, 4, v.Value())
	})
}

func TestNewString(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		v, err := NewString("ocn", "ocean model", "socn", nil, true)
		require.NoError(t, err)
		assert.Equal(t, "socn", v.Value())
	})

	t.Run("enumerated set", func(t *testing.T) {
		_, err := NewString("kind", "d", "REAL64", StringSet{"REAL32", "REAL64"}, false)
		assert.NoError(t, err)

		_, err = NewString("kind", "d", "REAL128", StringSet{"REAL32", "REAL64"}, false)
		var valErr *ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("pattern matches a prefix", func(t *testing.T) {
		spec := Pattern{Re: regexp.MustCompile(`T[0-9]+`)}
		_, err := NewString("hgrid", "d", "T42", spec, false)
		assert.NoError(t, err)

		// Trailing text after the matched prefix is fine.
		_, err = NewString("hgrid", "d", "T42extra", spec, false)
		assert.NoError(t, err)

		// A match that does not start at offset zero is a failure.
		_, err = NewString("hgrid", "d", "xT42", spec, false)
		assert.ErrorContains(t, err, "does not match pattern")
	})

	t.Run("spec of the wrong kind", func(t *testing.T) {
		_, err := NewString("n", "d", "x", IntSet{1}, false)
		var typeErr *TypeError
		assert.ErrorAs(t, err, &typeErr)
	})
}

func TestStringSetValue(t *testing.T) {
	v, err := NewString("kind", "d", "REAL64", StringSet{"REAL32", "REAL64"}, false)
	require.NoError(t, err)

	require.NoError(t, v.SetValue("REAL32"))
	assert.Equal(t, "REAL32", v.Value())

	err = v.SetValue("REAL128")
	require.Error(t, err)
	assert.Equal(t, "REAL32", v.Value())
}

func TestNewList(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		v, err := NewList("dirs", "d", []any{"se", "se/dycore"}, "str", nil)
		require.NoError(t, err)
		assert.Equal(t, []any{"se", "se/dycore"}, v.Value())
		assert.False(t, v.NamelistAttr())
	})

	t.Run("element type enforced", func(t *testing.T) {
		_, err := NewList("dirs", "d", []any{"se", 2}, "str", nil)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)

		_, err = NewList("nums", "d", []any{1, 2}, "int", nil)
		assert.NoError(t, err)
	})

	t.Run("unknown element type", func(t *testing.T) {
		_, err := NewList("dirs", "d", []any{"se"}, "float", nil)
		var typeErr *TypeError
		assert.ErrorAs(t, err, &typeErr)
	})

	t.Run("allowed list constrains contents as a whole", func(t *testing.T) {
		allowed := AllowedList{"none"}
		_, err := NewList("dirs", "d", []any{"none"}, "str", allowed)
		assert.NoError(t, err)

		// "none" is an allowed element, but the whole list must match.
		_, err = NewList("dirs", "d", []any{"none", "none"}, "str", allowed)
		assert.ErrorContains(t, err, "list contents must equal")
	})
}

func TestListSetValue(t *testing.T) {
	v, err := NewList("dirs", "d", []any{"se"}, "str", nil)
	require.NoError(t, err)

	require.NoError(t, v.SetValue([]any{"fv"}))
	assert.Equal(t, []any{"fv"}, v.Value())

	err = v.SetValue([]any{3})
	require.Error(t, err)
	assert.Equal(t, []any{"fv"}, v.Value())
}
