package mungebit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mungebits/mungebit"
)

func TestInputs_Memo(t *testing.T) {
	in := mungebit.NewInputs()
	calls := 0
	compute := func() (any, error) {
		calls++
		return 1.5, nil
	}

	v, err := in.Memo("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
	v, err = in.Memo("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
	assert.Equal(t, 1, calls)

	_, err = in.Memo("bad", func() (any, error) { return nil, errors.New("no") })
	require.Error(t, err)
	assert.False(t, in.Has("bad"))
}

func TestInputs_ScopeAndKeys(t *testing.T) {
	in := mungebit.NewInputs()
	in.Scope("b").Set("mean", 1.0)
	in.Set("a", "x")

	assert.Same(t, in.Scope("b"), in.Scope("b"))
	assert.Equal(t, []string{"a", "b"}, in.Keys())

	in.Delete("a")
	assert.Equal(t, 1, in.Len())
	_, ok := in.Float("missing")
	assert.False(t, ok)
}

func TestInputs_CloneIsDeep(t *testing.T) {
	in := mungebit.NewInputs()
	in.Set("levels", map[string]any{"a": 1.0})
	in.Set("none", nil)

	c, err := in.Clone()
	require.NoError(t, err)
	lv, _ := c.Get("levels")
	lv.(map[string]any)["a"] = 2.0

	orig, _ := in.Get("levels")
	assert.Equal(t, 1.0, orig.(map[string]any)["a"])
	assert.True(t, c.Has("none"))
}

func TestInputs_CloneCopiesCachesInsideContainers(t *testing.T) {
	inner := mungebit.NewInputs()
	inner.Set("mean", 3.0)
	in := mungebit.NewInputs()
	in.Set("scopes", []*mungebit.Inputs{inner})

	c, err := in.Clone()
	require.NoError(t, err)
	v, _ := c.Get("scopes")
	scopes := v.([]*mungebit.Inputs)
	require.Len(t, scopes, 1)
	require.NotSame(t, inner, scopes[0])

	mean, ok := scopes[0].Float("mean")
	assert.True(t, ok)
	assert.Equal(t, 3.0, mean)

	assert.NotPanics(t, func() { scopes[0].Set("mean", 9.0) })
	orig, _ := inner.Float("mean")
	assert.Equal(t, 3.0, orig)
}
