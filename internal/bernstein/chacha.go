// Package bernstein implements the shared core of the Bernstein stream
// cipher family: the ChaCha and Salsa quarter rounds, their 16-word
// state layouts, and HChaCha20 subkey derivation. Backend selection
// (scalar/AVX2/SSE2/NEON) and the XOR-with-plaintext keystream loop
// live in internal/stream; this package is pure state arithmetic.
package bernstein

import "github.com/parsonious/scuttle-crypto/internal/bitops"

// Sigma is "expand 32-byte k" split into four little-endian words.
var Sigma = [4]uint32{0x61707865, 0x3320646E, 0x79622D32, 0x6B206574}

const (
	// BlockSize is the keystream block size, in bytes, for both ChaCha
	// and Salsa.
	BlockSize = 64
	// Rounds is the fixed round count (20 = 10 double rounds) for both
	// ChaCha20 and Salsa20.
	Rounds = 20
)

// ChaChaState returns the 16-word initial state for ChaCha20/XChaCha20:
// [c0 c1 c2 c3 | k0..k7 | ctr | n0 n1 n2].
func ChaChaState(key *[32]byte, nonce *[12]byte, counter uint32) [16]uint32 {
	var s [16]uint32
	s[0], s[1], s[2], s[3] = Sigma[0], Sigma[1], Sigma[2], Sigma[3]
	for i := 0; i < 8; i++ {
		s[4+i] = bitops.ReadU32LE(key[i*4 : i*4+4])
	}
	s[12] = counter
	s[13] = bitops.ReadU32LE(nonce[0:4])
	s[14] = bitops.ReadU32LE(nonce[4:8])
	s[15] = bitops.ReadU32LE(nonce[8:12])
	return s
}

// ChaChaQuarterRound performs one ChaCha quarter round over the four
// state words at positions a, b, c, d.
func ChaChaQuarterRound(s *[16]uint32, a, b, c, d int) {
	s[a] += s[b]
	s[d] ^= s[a]
	s[d] = bitops.RotL32(s[d], 16)

	s[c] += s[d]
	s[b] ^= s[c]
	s[b] = bitops.RotL32(s[b], 12)

	s[a] += s[b]
	s[d] ^= s[a]
	s[d] = bitops.RotL32(s[d], 8)

	s[c] += s[d]
	s[b] ^= s[c]
	s[b] = bitops.RotL32(s[b], 7)
}

// ChaChaDoubleRound performs one column round followed by one diagonal
// round; 10 of these make the full 20 rounds.
func ChaChaDoubleRound(s *[16]uint32) {
	ChaChaQuarterRound(s, 0, 4, 8, 12)
	ChaChaQuarterRound(s, 1, 5, 9, 13)
	ChaChaQuarterRound(s, 2, 6, 10, 14)
	ChaChaQuarterRound(s, 3, 7, 11, 15)

	ChaChaQuarterRound(s, 0, 5, 10, 15)
	ChaChaQuarterRound(s, 1, 6, 11, 12)
	ChaChaQuarterRound(s, 2, 7, 8, 13)
	ChaChaQuarterRound(s, 3, 4, 9, 14)
}

// ChaChaBlock runs the full 20-round permutation over init, adds the
// original state back, and serialises the 64-byte keystream block.
func ChaChaBlock(init *[16]uint32) [BlockSize]byte {
	working := *init
	for i := 0; i < Rounds/2; i++ {
		ChaChaDoubleRound(&working)
	}

	var out [BlockSize]byte
	for i := 0; i < 16; i++ {
		bitops.WriteU32LE(out[i*4:i*4+4], working[i]+init[i])
	}
	return out
}

// ChaChaPermute runs the 20-round permutation without adding the
// original state back in, used by HChaCha20 subkey derivation.
func ChaChaPermute(init *[16]uint32) [16]uint32 {
	working := *init
	for i := 0; i < Rounds/2; i++ {
		ChaChaDoubleRound(&working)
	}
	return working
}
