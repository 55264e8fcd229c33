package aead

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey32() *[32]byte {
	var k [32]byte
	for i := range k {
		k[i] = byte(i * 3)
	}
	return &k
}

func TestChaCha20Poly1305RoundTrip(t *testing.T) {
	key := testKey32()
	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	blob, err := SealChaCha20Poly1305(plaintext, key)
	require.NoError(t, err)
	require.Len(t, blob, NonceSizeChaCha20+len(plaintext)+TagSize)

	got, err := OpenChaCha20Poly1305(blob, key)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestChaCha20Poly1305TamperDetected(t *testing.T) {
	key := testKey32()
	blob, err := SealChaCha20Poly1305([]byte("payload"), key)
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0x01
	_, err = OpenChaCha20Poly1305(blob, key)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestChaCha20Poly1305NoncesDiffer(t *testing.T) {
	key := testKey32()
	plaintext := []byte("same plaintext")
	a, err := SealChaCha20Poly1305(plaintext, key)
	require.NoError(t, err)
	b, err := SealChaCha20Poly1305(plaintext, key)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestXChaCha20Poly1305RoundTrip(t *testing.T) {
	key := testKey32()
	plaintext := make([]byte, 5000)
	for i := range plaintext {
		plaintext[i] = byte(i)
	}

	blob, err := SealXChaCha20Poly1305(plaintext, key)
	require.NoError(t, err)
	require.Len(t, blob, NonceSizeXChaCha20+len(plaintext)+TagSize)

	got, err := OpenXChaCha20Poly1305(blob, key)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestXChaCha20Poly1305TamperDetected(t *testing.T) {
	key := testKey32()
	blob, err := SealXChaCha20Poly1305([]byte("secret instructions"), key)
	require.NoError(t, err)

	blob[NonceSizeXChaCha20] ^= 0x01 // flip a ciphertext byte
	_, err = OpenXChaCha20Poly1305(blob, key)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestAESGCMRoundTrip(t *testing.T) {
	key := testKey32()
	plaintext := []byte(`{"title":"demo","instructions":"hello"}`)

	blob, err := SealAESGCM(plaintext, key)
	require.NoError(t, err)

	got, err := OpenAESGCM(blob, key)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestAESGCMTamperDetected(t *testing.T) {
	key := testKey32()
	blob, err := SealAESGCM([]byte("tamper me"), key)
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0xFF
	_, err = OpenAESGCM(blob, key)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestAESCBCHMACRoundTrip(t *testing.T) {
	key := testKey32()
	plaintext := []byte("legacy payload, not aligned to 16 bytes")

	blob, err := SealAESCBCHMAC(plaintext, key)
	require.NoError(t, err)

	got, err := OpenAESCBCHMAC(blob, key)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestAESCBCHMACTamperDetected(t *testing.T) {
	key := testKey32()
	blob, err := SealAESCBCHMAC([]byte("legacy"), key)
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0x01
	_, err = OpenAESCBCHMAC(blob, key)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestAESCBCHMACEmptyPlaintext(t *testing.T) {
	key := testKey32()
	blob, err := SealAESCBCHMAC(nil, key)
	require.NoError(t, err)

	got, err := OpenAESCBCHMAC(blob, key)
	require.NoError(t, err)
	require.Empty(t, got)
}
