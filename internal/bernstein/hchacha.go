package bernstein

import "github.com/parsonious/scuttle-crypto/internal/bitops"

// HChaCha20 derives a 32-byte subkey from a 256-bit key and a 128-bit
// nonce (the first 16 bytes of XChaCha20's 24-byte nonce), per spec
// §4.D: the state is initialised exactly like ChaCha20 but with the
// nonce words in positions {12..15} instead of {13..15}, the permutation
// runs without the final state add-back, and the subkey is words
// {0..3, 12..15} concatenated.
func HChaCha20(key *[32]byte, nonce16 *[16]byte) [32]byte {
	var s [16]uint32
	s[0], s[1], s[2], s[3] = Sigma[0], Sigma[1], Sigma[2], Sigma[3]
	for i := 0; i < 8; i++ {
		s[4+i] = bitops.ReadU32LE(key[i*4 : i*4+4])
	}
	for i := 0; i < 4; i++ {
		s[12+i] = bitops.ReadU32LE(nonce16[i*4 : i*4+4])
	}

	out := ChaChaPermute(&s)

	var subkey [32]byte
	bitops.WriteU32LE(subkey[0:4], out[0])
	bitops.WriteU32LE(subkey[4:8], out[1])
	bitops.WriteU32LE(subkey[8:12], out[2])
	bitops.WriteU32LE(subkey[12:16], out[3])
	bitops.WriteU32LE(subkey[16:20], out[12])
	bitops.WriteU32LE(subkey[20:24], out[13])
	bitops.WriteU32LE(subkey[24:28], out[14])
	bitops.WriteU32LE(subkey[28:32], out[15])
	return subkey
}
