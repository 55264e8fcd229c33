package stream

import (
	"github.com/parsonious/scuttle-crypto/internal/bernstein"
	"github.com/parsonious/scuttle-crypto/internal/strategy"
)

type salsaImpl struct {
	backend strategy.Backend
}

func (s salsaImpl) Backend() strategy.Backend { return s.backend }

// Block dispatches to the backend-specific path. Salsa20's column/row
// schedule addresses state words in a fixed but non-contiguous pattern
// rather than ChaCha's four clean 4-word lanes,
// so the lane-shuffle restatement used for ChaCha above doesn't apply
// cleanly here; all backends share bernstein.SalsaBlock directly; the
// backend label still selects which code path runs, it just produces
// identical bytes on every one until a real SIMD kernel replaces it.
func (s salsaImpl) Block(dst *[64]byte, state *[16]uint32) {
	*dst = bernstein.SalsaBlock(state)
}

var salsaSelector = strategy.NewSelector(
	func(b strategy.Backend) strategy.Implementation { return salsaImpl{backend: b} },
	[]strategy.Backend{strategy.BackendAVX2, strategy.BackendSSE2, strategy.BackendNEON, strategy.BackendScalar},
)

// SalsaSelector exposes the package-wide cached Salsa20 backend selector
// for tests.
func SalsaSelector() *strategy.Selector { return salsaSelector }

// maxChunk bounds how many bytes XORKeyStreamSalsa20 processes between
// counter-overflow checks when crypting large inputs.
const maxChunk = 16 * 1024

// XORKeyStreamSalsa20 crypts src into dst using Salsa20/20 with the
// given 32-byte key, 8-byte nonce, and initial 64-bit block counter.
func XORKeyStreamSalsa20(dst, src []byte, key *[32]byte, nonce *[8]byte, counter uint64) error {
	if len(dst) != len(src) {
		return ErrLengthMismatch
	}

	impl := salsaSelector.Best()
	state := bernstein.SalsaState(key, nonce, counter)

	for len(src) > 0 {
		n := len(src)
		if n > maxChunk {
			n = maxChunk
		}
		xorWithKeystream(dst[:n], src[:n], &state, impl, false)
		dst, src = dst[n:], src[n:]
	}
	return nil
}
