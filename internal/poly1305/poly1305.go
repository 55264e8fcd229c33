// Package poly1305 implements the RFC 8439 one-time authenticator: a
// 130-bit modular MAC over 16-byte blocks, with the standard clamping of
// r. The accumulator is the same five-limb-equivalent 130-bit value
// other implementations use, built here with math/big to keep the
// modular-reduction arithmetic auditable.
//
// The final short block is padded with 0x01 inside the same 16-byte
// window rather than as a 17th byte; see DESIGN.md's Open Question
// decisions for why this framing was kept for round-trip compatibility
// with existing blobs.
package poly1305

import (
	"math/big"

	"github.com/parsonious/scuttle-crypto/internal/bitops"
)

// TagSize is the size of a Poly1305 tag, in bytes.
const TagSize = 16

// KeySize is the size of a Poly1305 one-time key (r || s), in bytes.
const KeySize = 32

var modulus = func() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), 130)
	return m.Sub(m, big.NewInt(5))
}()

var twoPow128 = new(big.Int).Lsh(big.NewInt(1), 128)

// MAC accumulates a message incrementally through the familiar
// New/Write/Sum shape.
type MAC struct {
	r   *big.Int
	s   *big.Int
	h   *big.Int
	buf [TagSize]byte
	n   int
}

// New creates a MAC from a 32-byte one-time key (r || s).
func New(key *[KeySize]byte) *MAC {
	var rBytes [16]byte
	copy(rBytes[:], key[:16])
	clamp(&rBytes)

	m := &MAC{
		r: leToInt(rBytes[:]),
		s: leToInt(key[16:32]),
		h: new(big.Int),
	}
	return m
}

// clamp clears the bits RFC 8439 requires cleared in r: bytes 3, 7, 11,
// 15 are ANDed with 0x0F; bytes 4, 8, 12 are ANDed with 0xFC.
func clamp(r *[16]byte) {
	r[3] &= 0x0F
	r[7] &= 0x0F
	r[11] &= 0x0F
	r[15] &= 0x0F
	r[4] &= 0xFC
	r[8] &= 0xFC
	r[12] &= 0xFC
}

// Write absorbs more message bytes into the accumulator.
func (m *MAC) Write(p []byte) (int, error) {
	total := len(p)
	if m.n > 0 {
		n := copy(m.buf[m.n:], p)
		m.n += n
		p = p[n:]
		if m.n == TagSize {
			m.absorb(m.buf[:], true)
			m.n = 0
		}
	}
	for len(p) >= TagSize {
		m.absorb(p[:TagSize], true)
		p = p[TagSize:]
	}
	if len(p) > 0 {
		m.n = copy(m.buf[:], p)
	}
	return total, nil
}

// absorb folds one 16-byte block into the accumulator. addHighBit is
// true for a full data block, where the implicit "1" bit sits past the
// 16 bytes actually read, contributing 2**128; it is false for the
// zero-padded final block, where the 0x01 marker byte written by
// absorbFinal already sits inside the 16-byte window and so already
// carries that bit at its correct position.
func (m *MAC) absorb(block []byte, addHighBit bool) {
	v := leToInt(block)
	if addHighBit {
		v.Add(v, twoPow128)
	}
	m.h.Add(m.h, v)
	m.h.Mul(m.h, m.r)
	m.h.Mod(m.h, modulus)
}

// absorbFinal folds the trailing short block (0 < n < 16), padded with
// 0x01 immediately after the last data byte and zero-filled to 16 bytes.
func (m *MAC) absorbFinal() {
	if m.n == 0 {
		return
	}
	var buf [TagSize]byte
	copy(buf[:], m.buf[:m.n])
	buf[m.n] = 0x01
	m.absorb(buf[:], false)
	m.n = 0
}

// Sum finalises the MAC, writing the 16-byte tag to out, and returns it.
// The MAC must not be reused afterwards; Poly1305 keys are one-time.
func (m *MAC) Sum(out *[TagSize]byte) {
	m.absorbFinal()

	tag := new(big.Int).Add(m.h, m.s)
	tag.Mod(tag, twoPow128)

	b := tag.Bytes() // big-endian, may be short
	var be [16]byte
	copy(be[16-len(b):], b)
	for i := 0; i < 16; i++ {
		out[i] = be[15-i]
	}
}

// leToInt interprets b (up to 16 bytes) as a little-endian integer.
func leToInt(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

// Sum computes the Poly1305 tag of msg under the given one-time key in
// one call.
func Sum(msg []byte, key *[KeySize]byte) [TagSize]byte {
	mac := New(key)
	_, _ = mac.Write(msg)
	var tag [TagSize]byte
	mac.Sum(&tag)
	bitops.Zero(key[:])
	return tag
}
