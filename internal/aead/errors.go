// Package aead implements the authenticated-encryption assemblers: the
// ChaCha20-Poly1305 and XChaCha20-Poly1305 framings, the AES-GCM
// hardware path, and the AES-CBC+HMAC-SHA-256 software fallback shared
// with the standalone `AES_` legacy algorithm.
package aead

import "errors"

// Sentinel errors this package returns. internal/engine maps these onto
// the typed ErrorKind taxonomy.
var (
	ErrAuthenticationFailed = errors.New("aead: authentication failed")
	ErrTruncatedBlob        = errors.New("aead: blob too short to contain nonce and tag")
)

// NonceSizeChaCha20, NonceSizeXChaCha20, NonceSizeAESGCM are the nonce
// sizes carried in each construction's wire framing.
const (
	NonceSizeChaCha20  = 12
	NonceSizeXChaCha20 = 24
	NonceSizeAESGCM    = 12
	TagSize            = 16
)
