package aead

import (
	"crypto/rand"

	"github.com/parsonious/scuttle-crypto/internal/stream"
)

// SealSalsa20 encrypts plaintext under a fresh 8-byte nonce, emitting
// `nonce(8) ∥ ciphertext(n)` with no authentication tag. Salsa20 is
// registered confidentiality-only; see DESIGN.md's Open Question
// decisions.
func SealSalsa20(plaintext []byte, key *[32]byte) ([]byte, error) {
	var nonce [stream.NonceSizeSalsa20]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}

	blob := make([]byte, stream.NonceSizeSalsa20+len(plaintext))
	copy(blob, nonce[:])
	ciphertext := blob[stream.NonceSizeSalsa20:]
	if err := stream.XORKeyStreamSalsa20(ciphertext, plaintext, key, &nonce, 0); err != nil {
		return nil, err
	}
	return blob, nil
}

// OpenSalsa20 reverses SealSalsa20.
func OpenSalsa20(blob []byte, key *[32]byte) ([]byte, error) {
	if len(blob) < stream.NonceSizeSalsa20 {
		return nil, ErrTruncatedBlob
	}

	var nonce [stream.NonceSizeSalsa20]byte
	copy(nonce[:], blob[:stream.NonceSizeSalsa20])
	ciphertext := blob[stream.NonceSizeSalsa20:]

	plaintext := make([]byte, len(ciphertext))
	if err := stream.XORKeyStreamSalsa20(plaintext, ciphertext, key, &nonce, 0); err != nil {
		return nil, err
	}
	return plaintext, nil
}
