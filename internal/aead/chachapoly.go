package aead

import (
	"crypto/rand"

	"github.com/parsonious/scuttle-crypto/internal/bitops"
	"github.com/parsonious/scuttle-crypto/internal/ctcompare"
	"github.com/parsonious/scuttle-crypto/internal/poly1305"
	"github.com/parsonious/scuttle-crypto/internal/stream"
)

// SealChaCha20Poly1305 encrypts plaintext under key with a freshly
// generated 12-byte nonce, returning `nonce ∥ ciphertext ∥ tag(16)`.
// The tag covers the ciphertext alone — no additional data, no length
// suffix — a deliberately non-standard, backward-compatible
// construction; see DESIGN.md.
func SealChaCha20Poly1305(plaintext []byte, key *[32]byte) ([]byte, error) {
	var nonce [NonceSizeChaCha20]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}

	blob := make([]byte, NonceSizeChaCha20+len(plaintext)+TagSize)
	copy(blob, nonce[:])
	ciphertext := blob[NonceSizeChaCha20 : NonceSizeChaCha20+len(plaintext)]

	polyKey, err := chachaPolyKey(key, &nonce)
	if err != nil {
		return nil, err
	}
	if err := stream.XORKeyStreamChaCha20(ciphertext, plaintext, key, &nonce, 1); err != nil {
		return nil, err
	}

	tag := poly1305.Sum(ciphertext, &polyKey)
	copy(blob[NonceSizeChaCha20+len(plaintext):], tag[:])
	return blob, nil
}

// OpenChaCha20Poly1305 reverses SealChaCha20Poly1305: it splits blob
// into its nonce/ciphertext/tag fields, recomputes the tag, compares in
// constant time, and only then decrypts.
func OpenChaCha20Poly1305(blob []byte, key *[32]byte) ([]byte, error) {
	if len(blob) < NonceSizeChaCha20+TagSize {
		return nil, ErrTruncatedBlob
	}

	var nonce [NonceSizeChaCha20]byte
	copy(nonce[:], blob[:NonceSizeChaCha20])
	ciphertext := blob[NonceSizeChaCha20 : len(blob)-TagSize]
	wantTag := blob[len(blob)-TagSize:]

	polyKey, err := chachaPolyKey(key, &nonce)
	if err != nil {
		return nil, err
	}
	gotTag := poly1305.Sum(ciphertext, &polyKey)
	if !ctcompare.Equal(gotTag[:], wantTag) {
		return nil, ErrAuthenticationFailed
	}

	plaintext := make([]byte, len(ciphertext))
	if err := stream.XORKeyStreamChaCha20(plaintext, ciphertext, key, &nonce, 1); err != nil {
		return nil, err
	}
	return plaintext, nil
}

// chachaPolyKey derives the one-time Poly1305 key by running one
// ChaCha20 keystream block at counter 0 and keeping the first 32 bytes.
func chachaPolyKey(key *[32]byte, nonce *[NonceSizeChaCha20]byte) ([32]byte, error) {
	var zero, keystream [64]byte
	if err := stream.XORKeyStreamChaCha20(keystream[:], zero[:], key, nonce, 0); err != nil {
		return [32]byte{}, err
	}
	var polyKey [32]byte
	copy(polyKey[:], keystream[:32])
	bitops.Zero(keystream[:])
	return polyKey, nil
}
