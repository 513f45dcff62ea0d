package credstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFile_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := NewFile(t.TempDir())

	// absent key is not an error
	v, err := f.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, "", v)

	require.NoError(t, f.Set(ctx, KeyAuthToken, "tok-1"))
	v, err = f.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, "tok-1", v)

	// overwrite
	require.NoError(t, f.Set(ctx, KeyAuthToken, "tok-2"))
	v, err = f.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, "tok-2", v)

	require.NoError(t, f.Remove(ctx, KeyAuthToken))
	v, err = f.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, "", v)

	// removing an absent key is fine
	require.NoError(t, f.Remove(ctx, KeyAuthToken))
}

func TestFile_KeysAreIndependent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := NewFile(t.TempDir())

	require.NoError(t, f.Set(ctx, KeyAuthToken, "id"))
	require.NoError(t, f.Set(ctx, KeyRefreshToken, "refresh"))
	require.NoError(t, f.Remove(ctx, KeyAuthToken))

	v, err := f.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "refresh", v)
}

func TestMemory_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	v, err := m.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, "", v)

	require.NoError(t, m.Set(ctx, KeyAuthToken, "tok"))
	v, err = m.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, "tok", v)

	require.NoError(t, m.Remove(ctx, KeyAuthToken))
	v, err = m.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, "", v)
}
