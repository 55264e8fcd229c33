package encoding

import (
	"fmt"
	"strings"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

var base64DecodeMap = func() [256]int8 {
	var m [256]int8
	for i := range m {
		m[i] = -1
	}
	for i, c := range base64Alphabet {
		m[byte(c)] = int8(i)
	}
	return m
}()

// Base64URL is standard Base64 with '+'/'/' swapped for '-'/'_' and
// padding stripped on encode, re-added on decode.
type Base64URL struct{}

func (Base64URL) Name() string   { return NameBase64URL }
func (Base64URL) IsURLSafe() bool { return true }

func (Base64URL) Encode(b []byte) string {
	var out strings.Builder
	out.Grow((len(b) + 2) / 3 * 4)

	for i := 0; i < len(b); i += 3 {
		var n int
		var chunk [3]byte
		n = copy(chunk[:], b[i:])

		v := uint32(chunk[0])<<16 | uint32(chunk[1])<<8 | uint32(chunk[2])
		out.WriteByte(base64Alphabet[(v>>18)&0x3F])
		out.WriteByte(base64Alphabet[(v>>12)&0x3F])
		if n > 1 {
			out.WriteByte(base64Alphabet[(v>>6)&0x3F])
		}
		if n > 2 {
			out.WriteByte(base64Alphabet[v&0x3F])
		}
	}
	return out.String()
}

func (Base64URL) Decode(s string) ([]byte, error) {
	// Re-add the padding Encode strips.
	if pad := (4 - len(s)%4) % 4; pad > 0 {
		s += strings.Repeat("=", pad)
	}

	s = strings.TrimRight(s, "=")
	out := make([]byte, 0, len(s)*3/4+3)

	var buf [4]int8
	n := 0
	for i := 0; i < len(s); i++ {
		v := base64DecodeMap[s[i]]
		if v < 0 {
			return nil, fmt.Errorf("encoding: invalid base64url symbol %q", s[i])
		}
		buf[n] = v
		n++
		if n == 4 {
			out = append(out,
				byte(buf[0])<<2|byte(buf[1])>>4,
				byte(buf[1])<<4|byte(buf[2])>>2,
				byte(buf[2])<<6|byte(buf[3]),
			)
			n = 0
		}
	}
	switch n {
	case 0:
	case 2:
		out = append(out, byte(buf[0])<<2|byte(buf[1])>>4)
	case 3:
		out = append(out,
			byte(buf[0])<<2|byte(buf[1])>>4,
			byte(buf[1])<<4|byte(buf[2])>>2,
		)
	default:
		return nil, fmt.Errorf("encoding: truncated base64url input")
	}
	return out, nil
}
