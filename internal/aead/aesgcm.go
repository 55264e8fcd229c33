package aead

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"
)

// SealAESGCM implements the `AESG` hardware path: the cleartext is
// gzipped, then sealed with the platform AES-GCM primitive under a
// fresh 12-byte nonce, emitting `nonce ∥ ciphertext ∥ tag(16)`. Built on
// stdlib `crypto/aes` + `crypto/cipher.NewGCM` — Go's GCM is AES-NI/
// ARMv8 accelerated by the runtime itself, so delegating to it *is*
// delegating to the platform.
func SealAESGCM(plaintext []byte, key *[32]byte) ([]byte, error) {
	compressed, err := gzipCompress(plaintext)
	if err != nil {
		return nil, err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSizeAESGCM)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	sealed := gcm.Seal(nil, nonce, compressed, nil) // ciphertext ∥ tag, stdlib convention
	blob := make([]byte, 0, len(nonce)+len(sealed))
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)
	return blob, nil
}

// OpenAESGCM reverses SealAESGCM: GCM-open then gunzip.
func OpenAESGCM(blob []byte, key *[32]byte) ([]byte, error) {
	if len(blob) < NonceSizeAESGCM+TagSize {
		return nil, ErrTruncatedBlob
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := blob[:NonceSizeAESGCM]
	sealed := blob[NonceSizeAESGCM:]

	compressed, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return gzipDecompress(compressed)
}

func newGCM(key *[32]byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func gzipCompress(plaintext []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(plaintext); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipDecompress(compressed []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
