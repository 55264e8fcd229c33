package bernstein

import "github.com/parsonious/scuttle-crypto/internal/bitops"

// SalsaState returns the 16-word initial state for Salsa20: constants
// at {0,5,10,15}, key in {1..4,11..14}, nonce in {6,7}, 64-bit counter
// split across {8,9}.
func SalsaState(key *[32]byte, nonce *[8]byte, counter uint64) [16]uint32 {
	var s [16]uint32
	s[0], s[5], s[10], s[15] = Sigma[0], Sigma[1], Sigma[2], Sigma[3]

	for i := 0; i < 4; i++ {
		s[1+i] = bitops.ReadU32LE(key[i*4 : i*4+4])
		s[11+i] = bitops.ReadU32LE(key[16+i*4 : 16+i*4+4])
	}

	s[6] = bitops.ReadU32LE(nonce[0:4])
	s[7] = bitops.ReadU32LE(nonce[4:8])

	s[8] = uint32(counter)
	s[9] = uint32(counter >> 32)
	return s
}

// SalsaQuarterRound performs one Salsa quarter round over the state
// words at a, b, c, d.
func SalsaQuarterRound(s *[16]uint32, a, b, c, d int) {
	s[b] ^= bitops.RotL32(s[a]+s[d], 7)
	s[c] ^= bitops.RotL32(s[b]+s[a], 9)
	s[d] ^= bitops.RotL32(s[c]+s[b], 13)
	s[a] ^= bitops.RotL32(s[d]+s[c], 18)
}

// SalsaDoubleRound performs one column round followed by one row round;
// 10 of these make the full 20 rounds.
func SalsaDoubleRound(s *[16]uint32) {
	SalsaQuarterRound(s, 0, 4, 8, 12)
	SalsaQuarterRound(s, 5, 9, 13, 1)
	SalsaQuarterRound(s, 10, 14, 2, 6)
	SalsaQuarterRound(s, 15, 3, 7, 11)

	SalsaQuarterRound(s, 0, 1, 2, 3)
	SalsaQuarterRound(s, 5, 6, 7, 4)
	SalsaQuarterRound(s, 10, 11, 8, 9)
	SalsaQuarterRound(s, 15, 12, 13, 14)
}

// SalsaBlock runs the full 20-round permutation over init, adds the
// original state back, and serialises the 64-byte keystream block.
func SalsaBlock(init *[16]uint32) [BlockSize]byte {
	working := *init
	for i := 0; i < Rounds/2; i++ {
		SalsaDoubleRound(&working)
	}

	var out [BlockSize]byte
	for i := 0; i < 16; i++ {
		bitops.WriteU32LE(out[i*4:i*4+4], working[i]+init[i])
	}
	return out
}
