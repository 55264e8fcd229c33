// Package ctcompare provides a single, audited constant-time equality
// check for all of this module's authenticators (Poly1305 tags, the
// AES-GCM-fallback HMAC, and the RC2-enhanced SHA-256 integrity field).
package ctcompare

import "crypto/subtle"

// Equal reports whether a and b hold the same bytes. The comparison runs
// in time independent of their contents; only a length mismatch is
// permitted to short-circuit, and length is considered public information.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
