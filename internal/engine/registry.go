package engine

import (
	"crypto/rand"

	"github.com/parsonious/scuttle-crypto/internal/aead"
	"github.com/parsonious/scuttle-crypto/internal/block"
)

// implementation is the uniform shape every registered algorithm
// adapts its concrete Seal/Open pair to.
type implementation interface {
	encrypt(plaintext, key []byte) ([]byte, error)
	decrypt(blob, key []byte) ([]byte, error)
}

// algorithmInfo is one row of the registry: algorithm name mapped to
// key size, legacy flag, default encoder, and implementation.
// ContainerID is the 4-char id stored in the BPIO header; Priority is
// listing-order metadata for ListAlgorithms, not a dispatch signal.
type algorithmInfo struct {
	Name           string
	ContainerID    string
	KeySize        int
	VariableKey    bool // true when the implementation derives its working key (e.g. via PBKDF2) rather than using the caller's bytes directly
	Legacy         bool
	DefaultEncoder string
	Priority       int
	impl           implementation
}

type implFuncs struct {
	seal func(plaintext, key []byte) ([]byte, error)
	open func(blob, key []byte) ([]byte, error)
}

func (f implFuncs) encrypt(plaintext, key []byte) ([]byte, error) { return f.seal(plaintext, key) }
func (f implFuncs) decrypt(blob, key []byte) ([]byte, error)      { return f.open(blob, key) }

func fixedKey32(fn func([]byte, *[32]byte) ([]byte, error)) func([]byte, []byte) ([]byte, error) {
	return func(data []byte, key []byte) ([]byte, error) {
		var k [32]byte
		copy(k[:], key)
		return fn(data, &k)
	}
}

var registryByName = map[string]*algorithmInfo{}
var registryByContainerID = map[string]*algorithmInfo{}

func register(info *algorithmInfo) {
	registryByName[info.Name] = info
	registryByContainerID[info.ContainerID] = info
}

func init() {
	register(&algorithmInfo{
		Name: "AESG", ContainerID: "AESG", KeySize: 32, DefaultEncoder: "base64url", Priority: 100,
		impl: implFuncs{seal: fixedKey32(sealAESGCMWithFallback), open: fixedKey32(openAESGCMWithFallback)},
	})
	register(&algorithmInfo{
		Name: "CC20", ContainerID: "CC20", KeySize: 32, DefaultEncoder: "base64url", Priority: 100,
		impl: implFuncs{seal: fixedKey32(aead.SealChaCha20Poly1305), open: fixedKey32(aead.OpenChaCha20Poly1305)},
	})
	register(&algorithmInfo{
		Name: "XCCH", ContainerID: "XCCH", KeySize: 32, DefaultEncoder: "base85", Priority: 100,
		impl: implFuncs{seal: fixedKey32(aead.SealXChaCha20Poly1305), open: fixedKey32(aead.OpenXChaCha20Poly1305)},
	})
	register(&algorithmInfo{
		Name: "SL20", ContainerID: "SL20", KeySize: 32, DefaultEncoder: "base64url", Priority: 100,
		impl: implFuncs{seal: fixedKey32(aead.SealSalsa20), open: fixedKey32(aead.OpenSalsa20)},
	})
	register(&algorithmInfo{
		// base64url, not base65536: Threefish blobs are always even-length
		// with a random last byte, and base65536 drops a trailing zero low
		// byte on decode, corrupting ~1/256 of round-trips.
		Name: "3FSH", ContainerID: "3FSH", KeySize: block.KeySizeThreefish, DefaultEncoder: "base64url", Priority: 100,
		impl: implFuncs{seal: fixedKeyThreefish(block.SealThreefish512), open: fixedKeyThreefish(block.OpenThreefish512)},
	})
	register(&algorithmInfo{
		Name: "3DES", ContainerID: "3DES", KeySize: block.KeySizeTripleDES, Legacy: true, DefaultEncoder: "base64url", Priority: 50,
		impl: implFuncs{seal: fixedKeyTripleDES(block.SealTripleDES), open: fixedKeyTripleDES(block.OpenTripleDES)},
	})
	register(&algorithmInfo{
		// RC2_ is bound to the enhanced (PBKDF2 + SHA-256 integrity)
		// construction; see DESIGN.md's Open Question decisions for why
		// the plain "standard" framing isn't independently reachable
		// through the one-slot `RC2_` container id.
		Name: "RC2_", ContainerID: "RC2_", KeySize: block.KeySizeRC2, VariableKey: true, Legacy: true, DefaultEncoder: "base64url", Priority: 200,
		impl: implFuncs{seal: block.SealRC2Enhanced, open: block.OpenRC2Enhanced},
	})
	register(&algorithmInfo{
		Name: "AES_", ContainerID: "AES_", KeySize: 32, Legacy: true, DefaultEncoder: "base64url", Priority: 50,
		impl: implFuncs{seal: fixedKey32(aead.SealAESCBCHMAC), open: fixedKey32(aead.OpenAESCBCHMAC)},
	})
}

func fixedKeyThreefish(fn func([]byte, *[block.KeySizeThreefish]byte) ([]byte, error)) func([]byte, []byte) ([]byte, error) {
	return func(data []byte, key []byte) ([]byte, error) {
		var k [block.KeySizeThreefish]byte
		copy(k[:], key)
		return fn(data, &k)
	}
}

func fixedKeyTripleDES(fn func([]byte, *[block.KeySizeTripleDES]byte) ([]byte, error)) func([]byte, []byte) ([]byte, error) {
	return func(data []byte, key []byte) ([]byte, error) {
		var k [block.KeySizeTripleDES]byte
		copy(k[:], key)
		return fn(data, &k)
	}
}

// sealAESGCMWithFallback tries the hardware AES-GCM+gzip path first and
// falls back to AES-CBC+HMAC-SHA-256 if the platform primitive cannot be
// constructed, falling back to AES-CBC+HMAC-SHA-256.
func sealAESGCMWithFallback(plaintext []byte, key *[32]byte) ([]byte, error) {
	blob, err := aead.SealAESGCM(plaintext, key)
	if err != nil {
		return aead.SealAESCBCHMAC(plaintext, key)
	}
	return blob, nil
}

func openAESGCMWithFallback(blob []byte, key *[32]byte) ([]byte, error) {
	plaintext, err := aead.OpenAESGCM(blob, key)
	if err == nil {
		return plaintext, nil
	}
	if err == aead.ErrAuthenticationFailed {
		return nil, err
	}
	return aead.OpenAESCBCHMAC(blob, key)
}

// generateKeyBytes CSPRNG-fills n random bytes for GenerateKey.
func generateKeyBytes(n int) ([]byte, error) {
	key := make([]byte, n)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
