package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	f := NewFile(t.TempDir())

	_, ok, err := f.Load("cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Save("cart", []byte(`{"items":[]}`)))

	data, ok, err := f.Load("cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"items":[]}`, string(data))
}

func TestFileSaveOverwrites(t *testing.T) {
	f := NewFile(t.TempDir())
	require.NoError(t, f.Save("auth", []byte("v1")))
	require.NoError(t, f.Save("auth", []byte("v2")))
	data, ok, err := f.Load("auth")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", string(data))
}

func TestFileDelete(t *testing.T) {
	f := NewFile(t.TempDir())
	require.NoError(t, f.Delete("missing"))
	require.NoError(t, f.Save("auth", []byte("v1")))
	require.NoError(t, f.Delete("auth"))
	_, ok, err := f.Load("auth")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryIsolation(t *testing.T) {
	m := NewMemory()
	src := []byte("abc")
	require.NoError(t, m.Save("blob", src))
	src[0] = 'x'
	data, ok, err := m.Load("blob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(data))
}
