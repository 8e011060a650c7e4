package extensions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadrehq/cadre/core/extensions"
)

type requestMeta struct {
	TraceID string
}

type counter int

func TestSetGet(t *testing.T) {
	t.Parallel()

	m := extensions.New()
	extensions.Set(m, requestMeta{TraceID: "abc"})

	got, ok := extensions.Get[requestMeta](m)
	require.True(t, ok)
	assert.Equal(t, "abc", got.TraceID)
}

func TestLastWriteWins(t *testing.T) {
	t.Parallel()

	m := extensions.New()
	extensions.Set(m, requestMeta{TraceID: "first"})
	extensions.Set(m, requestMeta{TraceID: "second"})

	got, ok := extensions.Get[requestMeta](m)
	require.True(t, ok)
	assert.Equal(t, "second", got.TraceID)
	assert.Equal(t, 1, m.Len())
}

func TestGetAbsent(t *testing.T) {
	t.Parallel()

	m := extensions.New()

	got, ok := extensions.Get[requestMeta](m)
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestDistinctTypesIndependent(t *testing.T) {
	t.Parallel()

	m := extensions.New()
	extensions.Set(m, requestMeta{TraceID: "abc"})
	extensions.Set(m, counter(42))

	assert.Equal(t, 2, m.Len())

	meta, ok := extensions.Get[requestMeta](m)
	require.True(t, ok)
	assert.Equal(t, "abc", meta.TraceID)

	n, ok := extensions.Get[counter](m)
	require.True(t, ok)
	assert.Equal(t, counter(42), n)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	m := extensions.New()
	extensions.Set(m, counter(7))

	prev, ok := extensions.Remove[counter](m)
	require.True(t, ok)
	assert.Equal(t, counter(7), prev)

	_, ok = extensions.Get[counter](m)
	assert.False(t, ok)

	_, ok = extensions.Remove[counter](m)
	assert.False(t, ok)
}

func TestInterfaceKey(t *testing.T) {
	t.Parallel()

	m := extensions.New()
	extensions.Set[error](m, assert.AnError)

	got, ok := extensions.Get[error](m)
	require.True(t, ok)
	assert.Equal(t, assert.AnError, got)
}

func TestClear(t *testing.T) {
	t.Parallel()

	m := extensions.New()
	extensions.Set(m, counter(1))
	extensions.Set(m, requestMeta{TraceID: "x"})

	m.Clear()
	assert.Equal(t, 0, m.Len())
}
