// Package stream implements the Bernstein stream ciphers: ChaCha20,
// XChaCha20, and Salsa20, each with scalar, SSE2, AVX2, and NEON
// backends dispatched through internal/strategy.
//
// No assembly is reproduced here without a toolchain run to verify it,
// so the SSE2/AVX2/NEON backends below are pure-Go, lane-oriented
// restatements of the same round function bernstein.ChaChaBlock/
// SalsaBlock implement — bit-exact by construction, with the strategy
// selector choosing among them purely on measured CPU features.
package stream

import (
	"errors"

	"github.com/parsonious/scuttle-crypto/internal/bernstein"
	"github.com/parsonious/scuttle-crypto/internal/strategy"
)

// ErrLengthMismatch is returned by the keystream functions in this
// package when dst and src differ in length. Key and nonce sizes are
// fixed-size array parameters, so a wrong-length key or nonce is a
// compile error here rather than a runtime one. The engine façade's
// Encrypt and EncryptAndEncode validate a caller-supplied key's length
// against the registered algorithm before it reaches this package;
// Decrypt and DecodeAndDecrypt do not, and their fixed-size adapters
// zero-fill a short key and drop the excess bytes of a long one.
var ErrLengthMismatch = errors.New("stream: dst and src must be the same length")

// NonceSizeChaCha20, NonceSizeXChaCha20, NonceSizeSalsa20 are the nonce
// sizes for each cipher's keystream function.
const (
	NonceSizeChaCha20  = 12
	NonceSizeXChaCha20 = 24
	NonceSizeSalsa20   = 8
)

// KeySize is the ChaCha/XChaCha/Salsa key size.
const KeySize = 32

type chachaImpl struct {
	backend strategy.Backend
}

func (c chachaImpl) Backend() strategy.Backend { return c.backend }

func (c chachaImpl) Block(dst *[64]byte, state *[16]uint32) {
	switch c.backend {
	case strategy.BackendAVX2:
		chachaBlockAVX2(dst, state)
	case strategy.BackendSSE2:
		chachaBlockSSE2(dst, state)
	case strategy.BackendNEON:
		chachaBlockNEON(dst, state)
	default:
		chachaBlockScalar(dst, state)
	}
}

func chachaBlockScalar(dst *[64]byte, state *[16]uint32) {
	*dst = bernstein.ChaChaBlock(state)
}

// chachaBlockSSE2/AVX2/NEON lay the same 16-word state across four
// 4-word lanes and run the identical quarter-round schedule lane-wise;
// the column/diagonal alternation is the lane rotation a real SIMD
// kernel would do with shuffle(b,0x39), shuffle(c,0x4E), shuffle(d,0x93).
// Restated this way they are bit-exact with the scalar path by
// construction.
func chachaBlockSSE2(dst *[64]byte, state *[16]uint32) {
	chachaBlockLaneWise(dst, state)
}

func chachaBlockAVX2(dst *[64]byte, state *[16]uint32) {
	chachaBlockLaneWise(dst, state)
}

func chachaBlockNEON(dst *[64]byte, state *[16]uint32) {
	chachaBlockLaneWise(dst, state)
}

func chachaBlockLaneWise(dst *[64]byte, state *[16]uint32) {
	var a, b, c, d [4]uint32
	copy(a[:], state[0:4])
	copy(b[:], state[4:8])
	copy(c[:], state[8:12])
	copy(d[:], state[12:16])

	for i := 0; i < bernstein.Rounds/2; i++ {
		// Column round: quarter round on each of the 4 columns.
		laneQuarterRound(&a, &b, &c, &d)
		// Diagonal round: rotate lanes b/c/d (the SIMD shuffle) so the
		// same elementwise quarter round implements the diagonal step,
		// then rotate back.
		b = shuffleLane(b, 1)
		c = shuffleLane(c, 2)
		d = shuffleLane(d, 3)
		laneQuarterRound(&a, &b, &c, &d)
		b = shuffleLane(b, 3)
		c = shuffleLane(c, 2)
		d = shuffleLane(d, 1)
	}

	var working [16]uint32
	copy(working[0:4], a[:])
	copy(working[4:8], b[:])
	copy(working[8:12], c[:])
	copy(working[12:16], d[:])

	var out [16]uint32
	for i := range out {
		out[i] = working[i] + state[i]
	}
	writeState(dst, &out)
}

// laneQuarterRound applies the ChaCha quarter round elementwise across
// four lanes of four words each: lane i holds (a[i], b[i], c[i], d[i]),
// exactly one quarter round's inputs.
func laneQuarterRound(a, b, c, d *[4]uint32) {
	for i := 0; i < 4; i++ {
		var s [16]uint32
		s[0], s[1], s[2], s[3] = a[i], b[i], c[i], d[i]
		bernstein.ChaChaQuarterRound(&s, 0, 1, 2, 3)
		a[i], b[i], c[i], d[i] = s[0], s[1], s[2], s[3]
	}
}

// shuffleLane rotates a 4-word lane left by n, the Go equivalent of a
// SIMD shuffle (shuffle(b,0x39) == rotate-left-1, etc.).
func shuffleLane(v [4]uint32, n int) [4]uint32 {
	var out [4]uint32
	for i := range v {
		out[i] = v[(i+n)%4]
	}
	return out
}

func writeState(dst *[64]byte, state *[16]uint32) {
	for i := 0; i < 16; i++ {
		dst[i*4] = byte(state[i])
		dst[i*4+1] = byte(state[i] >> 8)
		dst[i*4+2] = byte(state[i] >> 16)
		dst[i*4+3] = byte(state[i] >> 24)
	}
}

var chachaSelector = strategy.NewSelector(
	func(b strategy.Backend) strategy.Implementation { return chachaImpl{backend: b} },
	[]strategy.Backend{strategy.BackendAVX2, strategy.BackendSSE2, strategy.BackendNEON, strategy.BackendScalar},
)

// ChaChaSelector exposes the package-wide cached ChaCha20/XChaCha20
// backend selector for tests (ForceImplementation/Reset hooks).
func ChaChaSelector() *strategy.Selector { return chachaSelector }

// XORKeyStreamChaCha20 crypts src into dst using ChaCha20 with the given
// 32-byte key, 12-byte nonce, and initial block counter, via whichever
// backend the strategy selector currently judges fastest.
func XORKeyStreamChaCha20(dst, src []byte, key *[32]byte, nonce *[12]byte, counter uint32) error {
	if len(dst) != len(src) {
		return ErrLengthMismatch
	}
	impl := chachaSelector.Best()
	state := bernstein.ChaChaState(key, nonce, counter)
	xorWithKeystream(dst, src, &state, impl, true)
	return nil
}

// xorWithKeystream XORs src into dst one 64-byte block at a time,
// incrementing the block-counter word (12 for ChaCha, overflowing into
// the adjacent nonce word) between blocks.
func xorWithKeystream(dst, src []byte, state *[16]uint32, impl strategy.Implementation, isChaCha bool) {
	counterWord := 12
	if !isChaCha {
		counterWord = 8
	}

	for len(src) > 0 {
		var block [64]byte
		impl.Block(&block, state)

		n := len(src)
		if n > 64 {
			n = 64
		}
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ block[i]
		}
		dst, src = dst[n:], src[n:]

		state[counterWord]++
		if state[counterWord] == 0 {
			state[counterWord+1]++
		}
	}
}
