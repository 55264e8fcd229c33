package encoding

import (
	"fmt"
	"strings"
)

const (
	base65536Low  = 0x10000
	base65536High = 0x1FFFF
)

// Base65536 packs 16 bits (two input bytes) per emitted rune, in the
// range U+10000..U+1FFFF, the way `other_examples`'s vendored
// base32768.Encoding packs 15 bits per rune against a sorted alphabet
// table — here the alphabet is simply the identity map over that fixed
// code-point range, so no decode table is needed.
type Base65536 struct{}

func (Base65536) Name() string    { return NameBase65536 }
func (Base65536) IsURLSafe() bool { return false }

func (Base65536) Encode(b []byte) string {
	var out strings.Builder
	out.Grow((len(b) + 1) / 2)

	i := 0
	for ; i+2 <= len(b); i += 2 {
		v := uint32(b[i])<<8 | uint32(b[i+1])
		out.WriteRune(rune(base65536Low + v))
	}
	if i < len(b) {
		v := uint32(b[i]) << 8
		out.WriteRune(rune(base65536Low + v))
	}
	return out.String()
}

func (Base65536) Decode(s string) ([]byte, error) {
	runes := []rune(s)
	out := make([]byte, 0, len(runes)*2)

	for i, r := range runes {
		if r < base65536Low || r > base65536High {
			return nil, fmt.Errorf("encoding: base65536 code point U+%04X out of range", r)
		}
		v := uint32(r) - base65536Low
		hi := byte(v >> 8)
		lo := byte(v)

		out = append(out, hi)
		if i == len(runes)-1 && lo == 0 {
			// Trailing pad zero from an odd-length encode; drop it.
			continue
		}
		out = append(out, lo)
	}
	return out, nil
}
