package ctcompare

import "testing"

import "github.com/stretchr/testify/require"

func TestEqual(t *testing.T) {
	require.True(t, Equal([]byte("abc"), []byte("abc")))
	require.False(t, Equal([]byte("abc"), []byte("abd")))
	require.False(t, Equal([]byte("abc"), []byte("ab")))
	require.True(t, Equal(nil, nil))
}
