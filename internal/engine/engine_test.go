package engine

import (
	"bytes"
	"testing"

	"github.com/parsonious/scuttle-crypto/internal/encoding"
	"github.com/stretchr/testify/require"
)

func TestRoundTripEveryAlgorithm(t *testing.T) {
	for _, name := range []string{"AESG", "CC20", "XCCH", "SL20", "3FSH", "3DES", "RC2_", "AES_"} {
		t.Run(name, func(t *testing.T) {
			key, err := GenerateKey(name)
			require.NoError(t, err)

			plaintext := []byte("round trip payload for " + name)
			blob, err := Encrypt(name, plaintext, key)
			require.NoError(t, err)

			got, err := Decrypt(name, blob, key)
			require.NoError(t, err)
			require.Equal(t, plaintext, got)
		})
	}
}

func TestEncryptAndEncodeRoundTrip(t *testing.T) {
	for _, name := range []string{"AESG", "CC20", "XCCH", "SL20", "3FSH", "3DES", "RC2_", "AES_"} {
		t.Run(name, func(t *testing.T) {
			key, err := GenerateKey(name)
			require.NoError(t, err)

			token, err := EncryptAndEncode(name, "", "demo", "hello world", key)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			info := registryByName[name]
			title, instructions, err := DecodeAndDecrypt(info.DefaultEncoder, token, key)
			require.NoError(t, err)
			require.Equal(t, "demo", title)
			require.Equal(t, "hello world", instructions)
		})
	}
}

func TestAESGCMTokenBeginsWithHeader(t *testing.T) {
	key, err := GenerateKey("AESG")
	require.NoError(t, err)

	token, err := EncryptAndEncode("AESG", "", "demo", "hello", key)
	require.NoError(t, err)

	enc, err := encoding.ByName("base64url")
	require.NoError(t, err)
	blob, err := enc.Decode(token)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(blob, []byte{'B', 'P', 'I', 'O', 0x01, 0x00, 'A', 'E', 'S', 'G'}))
}

func TestTamperedCiphertextIsAuthenticationFailure(t *testing.T) {
	key, err := GenerateKey("CC20")
	require.NoError(t, err)

	blob, err := Encrypt("CC20", []byte("payload"), key)
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0x01
	_, err = Decrypt("CC20", blob, key)
	require.ErrorIs(t, err, ErrAuthenticationFailure)
}

func TestUnknownAlgorithmIsInvalidArgument(t *testing.T) {
	_, err := Encrypt("NOPE", []byte("x"), []byte("y"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestListAlgorithmsCoversClosedSet(t *testing.T) {
	names := make(map[string]bool)
	for _, a := range ListAlgorithms() {
		names[a.Name] = true
	}
	for _, want := range []string{"AESG", "CC20", "XCCH", "SL20", "3FSH", "3DES", "RC2_", "AES_"} {
		require.True(t, names[want], "missing algorithm %s", want)
	}
}

func TestListEncodersCoversAllThree(t *testing.T) {
	names := make(map[string]bool)
	for _, e := range ListEncoders() {
		names[e.Name] = true
	}
	require.True(t, names["base64url"])
	require.True(t, names["base85"])
	require.True(t, names["base65536"])
}
