package aead

import (
	"crypto/rand"

	"github.com/parsonious/scuttle-crypto/internal/bitops"
	"github.com/parsonious/scuttle-crypto/internal/ctcompare"
	"github.com/parsonious/scuttle-crypto/internal/poly1305"
	"github.com/parsonious/scuttle-crypto/internal/stream"
)

// SealXChaCha20Poly1305 mirrors SealChaCha20Poly1305 with a 24-byte
// nonce and the HChaCha20 subkey derivation XChaCha20 requires (spec
// §6's `XCCH` payload).
func SealXChaCha20Poly1305(plaintext []byte, key *[32]byte) ([]byte, error) {
	var nonce [NonceSizeXChaCha20]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}

	blob := make([]byte, NonceSizeXChaCha20+len(plaintext)+TagSize)
	copy(blob, nonce[:])
	ciphertext := blob[NonceSizeXChaCha20 : NonceSizeXChaCha20+len(plaintext)]

	polyKey, err := xchachaPolyKey(key, &nonce)
	if err != nil {
		return nil, err
	}
	if err := stream.XORKeyStreamXChaCha20(ciphertext, plaintext, key, &nonce, 1); err != nil {
		return nil, err
	}

	tag := poly1305.Sum(ciphertext, &polyKey)
	copy(blob[NonceSizeXChaCha20+len(plaintext):], tag[:])
	return blob, nil
}

// OpenXChaCha20Poly1305 reverses SealXChaCha20Poly1305.
func OpenXChaCha20Poly1305(blob []byte, key *[32]byte) ([]byte, error) {
	if len(blob) < NonceSizeXChaCha20+TagSize {
		return nil, ErrTruncatedBlob
	}

	var nonce [NonceSizeXChaCha20]byte
	copy(nonce[:], blob[:NonceSizeXChaCha20])
	ciphertext := blob[NonceSizeXChaCha20 : len(blob)-TagSize]
	wantTag := blob[len(blob)-TagSize:]

	polyKey, err := xchachaPolyKey(key, &nonce)
	if err != nil {
		return nil, err
	}
	gotTag := poly1305.Sum(ciphertext, &polyKey)
	if !ctcompare.Equal(gotTag[:], wantTag) {
		return nil, ErrAuthenticationFailed
	}

	plaintext := make([]byte, len(ciphertext))
	if err := stream.XORKeyStreamXChaCha20(plaintext, ciphertext, key, &nonce, 1); err != nil {
		return nil, err
	}
	return plaintext, nil
}

func xchachaPolyKey(key *[32]byte, nonce *[NonceSizeXChaCha20]byte) ([32]byte, error) {
	var zero, keystream [64]byte
	if err := stream.XORKeyStreamXChaCha20(keystream[:], zero[:], key, nonce, 0); err != nil {
		return [32]byte{}, err
	}
	var polyKey [32]byte
	copy(polyKey[:], keystream[:32])
	bitops.Zero(keystream[:])
	return polyKey, nil
}
