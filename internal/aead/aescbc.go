package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"

	"github.com/parsonious/scuttle-crypto/internal/ctcompare"
)

// ivPadSize is how much of the 12-byte nonce becomes the 16-byte CBC IV:
// the nonce bytes, zero-padded out to a full block.
const ivPadSize = 16

// SealAESCBCHMAC implements the AES-256-CBC + HMAC-SHA-256 construction
// shared by the `AESG` software fallback and the legacy `AES_`
// algorithm. It is deliberately NOT real AES-GCM and does not
// interoperate with it. Emits `nonce(12) ∥ ciphertext(n) ∥ tag(16)`.
func SealAESCBCHMAC(plaintext []byte, key *[32]byte) ([]byte, error) {
	nonce := make([]byte, NonceSizeAESGCM)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	var iv [ivPadSize]byte
	copy(iv[:], nonce)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(ciphertext, padded)

	tag := hmacTag(key, nonce, ciphertext)

	blob := make([]byte, 0, len(nonce)+len(ciphertext)+TagSize)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	blob = append(blob, tag[:]...)
	return blob, nil
}

// OpenAESCBCHMAC reverses SealAESCBCHMAC.
func OpenAESCBCHMAC(blob []byte, key *[32]byte) ([]byte, error) {
	if len(blob) < NonceSizeAESGCM+TagSize {
		return nil, ErrTruncatedBlob
	}

	nonce := blob[:NonceSizeAESGCM]
	ciphertext := blob[NonceSizeAESGCM : len(blob)-TagSize]
	wantTag := blob[len(blob)-TagSize:]

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrAuthenticationFailed
	}

	gotTag := hmacTag(key, nonce, ciphertext)
	if !ctcompare.Equal(gotTag[:], wantTag) {
		return nil, ErrAuthenticationFailed
	}

	var iv [ivPadSize]byte
	copy(iv[:], nonce)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(padded, ciphertext)

	return pkcs7Unpad(padded)
}

func hmacTag(key *[32]byte, nonce, ciphertext []byte) [TagSize]byte {
	mac := hmac.New(sha256.New, key[:])
	mac.Write(nonce)
	mac.Write(ciphertext)
	full := mac.Sum(nil)
	var tag [TagSize]byte
	copy(tag[:], full[:TagSize])
	return tag
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrAuthenticationFailed
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) {
		return nil, ErrAuthenticationFailed
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrAuthenticationFailed
		}
	}
	return data[:len(data)-padLen], nil
}
