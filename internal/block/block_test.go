package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThreefish512RoundTrip(t *testing.T) {
	var key [KeySizeThreefish]byte
	for i := range key {
		key[i] = byte(i)
	}

	for _, n := range []int{0, 1, 63, 64, 65, 200, 4096} {
		plaintext := bytes.Repeat([]byte{0x5A}, n)
		blob, err := SealThreefish512(plaintext, &key)
		require.NoError(t, err)

		got, err := OpenThreefish512(blob, &key)
		require.NoError(t, err)
		require.Equal(t, plaintext, got)
	}
}

func TestThreefish512BlockIsInvertible(t *testing.T) {
	var key [KeySizeThreefish]byte
	for i := range key {
		key[i] = byte(i * 7)
	}
	tweak := [3]uint64{11, 22, 33}

	var block [BlockSizeThreefish]byte
	for i := range block {
		block[i] = byte(i)
	}

	ct := threefishEncryptBlock(&key, &tweak, &block)
	pt := threefishDecryptBlock(&key, &tweak, &ct)
	require.Equal(t, block, pt)
}

func TestThreefish512TamperedLengthRejected(t *testing.T) {
	var key [KeySizeThreefish]byte
	blob, err := SealThreefish512([]byte("hello world"), &key)
	require.NoError(t, err)

	blob[BlockSizeThreefish] = 0xFF // corrupt the length field
	_, err = OpenThreefish512(blob, &key)
	require.Error(t, err)
}

func TestTripleDESRoundTrip(t *testing.T) {
	var key [KeySizeTripleDES]byte
	for i := range key {
		key[i] = byte(i + 1)
	}

	plaintext := []byte("a short message that needs padding")
	blob, err := SealTripleDES(plaintext, &key)
	require.NoError(t, err)

	got, err := OpenTripleDES(blob, &key)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestRC2RoundTrip(t *testing.T) {
	var key [KeySizeRC2]byte
	for i := range key {
		key[i] = byte(i * 3)
	}

	for _, n := range []int{0, 1, 8, 9, 1000} {
		plaintext := bytes.Repeat([]byte{0x42}, n)
		blob, err := SealRC2(plaintext, &key)
		require.NoError(t, err)

		got, err := OpenRC2(blob, &key)
		require.NoError(t, err)
		require.Equal(t, plaintext, got)
	}
}

func TestRC2BlockIsInvertible(t *testing.T) {
	k := rc2ExpandKey(bytes.Repeat([]byte{0x11}, KeySizeRC2))
	var block [8]byte
	for i := range block {
		block[i] = byte(i + 1)
	}
	ct := rc2EncryptBlock(k, &block)
	pt := rc2DecryptBlock(k, &ct)
	require.Equal(t, block, pt)
}

func TestRC2EnhancedRoundTrip(t *testing.T) {
	key := []byte("a passphrase-derived key of any length")
	plaintext := []byte("protect me with a stretched key")

	blob, err := SealRC2Enhanced(plaintext, key)
	require.NoError(t, err)

	got, err := OpenRC2Enhanced(blob, key)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestRC2EnhancedTamperedDigestRejected(t *testing.T) {
	key := []byte("another passphrase")
	blob, err := SealRC2Enhanced([]byte("payload"), key)
	require.NoError(t, err)

	blob[IVSizeRC2] ^= 0x01 // flip a digest byte
	_, err = OpenRC2Enhanced(blob, key)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestPitableIsAPermutation(t *testing.T) {
	seen := make(map[byte]bool, 256)
	for _, v := range pitable {
		require.False(t, seen[v], "pitable is not injective")
		seen[v] = true
	}
	require.Len(t, seen, 256)
}
