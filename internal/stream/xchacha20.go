package stream

import "github.com/parsonious/scuttle-crypto/internal/bernstein"

// XORKeyStreamXChaCha20 crypts src into dst using XChaCha20: the first
// 16 bytes of the 24-byte nonce and the key derive a one-time subkey via
// HChaCha20, and the remaining 8 nonce bytes become the low 8 bytes of
// ChaCha20's 12-byte nonce (prefixed with 4 zero bytes) — XChaCha20 is
// simply HChaCha20 subkey derivation followed by ChaCha20.
func XORKeyStreamXChaCha20(dst, src []byte, key *[32]byte, nonce *[24]byte, counter uint32) error {
	if len(dst) != len(src) {
		return ErrLengthMismatch
	}

	var hNonce [16]byte
	copy(hNonce[:], nonce[:16])
	subkey := bernstein.HChaCha20(key, &hNonce)

	var chachaNonce [12]byte
	copy(chachaNonce[4:], nonce[16:24])

	return XORKeyStreamChaCha20(dst, src, &subkey, &chachaNonce, counter)
}
