package block

import (
	"crypto/cipher"
	"crypto/des"
	"crypto/rand"
)

// KeySizeTripleDES and IVSizeTripleDES are the 3DES key/IV sizes (EDE,
// 24-byte key, 8-byte IV).
const (
	KeySizeTripleDES = 24
	IVSizeTripleDES  = des.BlockSize
)

// SealTripleDES CBC-encrypts plaintext under a 24-byte 3DES-EDE key with
// PKCS#7 padding, emitting `iv(8) ∥ ciphertext(n)`. Delegates to stdlib
// crypto/des directly — there is nothing for a third-party library to
// improve on here (see DESIGN.md).
func SealTripleDES(plaintext []byte, key *[KeySizeTripleDES]byte) ([]byte, error) {
	block, err := des.NewTripleDESCipher(key[:])
	if err != nil {
		return nil, err
	}

	iv := make([]byte, IVSizeTripleDES)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, des.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	blob := make([]byte, 0, len(iv)+len(ciphertext))
	blob = append(blob, iv...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// OpenTripleDES reverses SealTripleDES.
func OpenTripleDES(blob []byte, key *[KeySizeTripleDES]byte) ([]byte, error) {
	if len(blob) < IVSizeTripleDES {
		return nil, ErrInvalidCiphertext
	}
	iv := blob[:IVSizeTripleDES]
	ciphertext := blob[IVSizeTripleDES:]
	if len(ciphertext) == 0 || len(ciphertext)%des.BlockSize != 0 {
		return nil, ErrInvalidCiphertext
	}

	block, err := des.NewTripleDESCipher(key[:])
	if err != nil {
		return nil, err
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)
	return pkcs7Unpad(padded)
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
		return nil, ErrInvalidCiphertext
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) {
		return nil, ErrInvalidCiphertext
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrInvalidCiphertext
		}
	}
	return data[:len(data)-padLen], nil
}
