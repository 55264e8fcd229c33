package poly1305

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRFC8439Vector checks the RFC 8439 §2.5.2 test vector.
func TestRFC8439Vector(t *testing.T) {
	keyBytes, err := hex.DecodeString(
		"85d6be7857556d337f4452fe42d506a8" +
			"0103808afb0db2fd4abff6af4149f51b")
	require.NoError(t, err)
	require.Len(t, keyBytes, KeySize)

	var key [KeySize]byte
	copy(key[:], keyBytes)

	tag := Sum([]byte("Cryptographic Forum Research Group"), &key)

	want, err := hex.DecodeString("a8061dc1305136c6c22b8baf0c0127a9")
	require.NoError(t, err)
	require.Equal(t, want, tag[:])
}

func TestIncrementalWriteMatchesOneShot(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	msg := []byte("the quick brown fox jumps over the lazy dog, twice for good measure")

	var k1 [KeySize]byte
	copy(k1[:], key[:])
	oneShot := Sum(msg, &k1)

	var k2 [KeySize]byte
	copy(k2[:], key[:])
	mac := New(&k2)
	_, _ = mac.Write(msg[:10])
	_, _ = mac.Write(msg[10:])
	var incremental [TagSize]byte
	mac.Sum(&incremental)

	require.Equal(t, oneShot[:], incremental[:])
}

func TestEmptyMessage(t *testing.T) {
	var key [KeySize]byte
	mac := New(&key)
	var tag [TagSize]byte
	mac.Sum(&tag)
	// Should not panic and should be deterministic.
	var key2 [KeySize]byte
	mac2 := New(&key2)
	var tag2 [TagSize]byte
	mac2.Sum(&tag2)
	require.Equal(t, tag, tag2)
}
