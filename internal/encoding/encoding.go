// Package encoding implements the three token encoders this module's
// container format can be wrapped in: Base64-URL, Base85, and Base65536.
package encoding

import "fmt"

// Encoder turns an encrypted blob into a token string and back. IsURLSafe
// reports whether the resulting token is safe to embed directly in a URL
// path segment without further escaping.
type Encoder interface {
	Name() string
	Encode(b []byte) string
	Decode(s string) ([]byte, error)
	IsURLSafe() bool
}

// Name constants used by the engine registry (component K) to look up the
// default encoder for an algorithm.
const (
	NameBase64URL  = "base64url"
	NameBase85     = "base85"
	NameBase65536  = "base65536"
)

// ByName returns the encoder registered under name.
func ByName(name string) (Encoder, error) {
	switch name {
	case NameBase64URL:
		return Base64URL{}, nil
	case NameBase85:
		return Base85{}, nil
	case NameBase65536:
		return Base65536{}, nil
	default:
		return nil, fmt.Errorf("encoding: unknown encoder %q", name)
	}
}

// All returns every registered encoder, in a stable order, for
// Engine.ListEncoders.
func All() []Encoder {
	return []Encoder{Base64URL{}, Base85{}, Base65536{}}
}
