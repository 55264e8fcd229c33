package engine

import (
	"encoding/json"
	"sort"

	"github.com/parsonious/scuttle-crypto/internal/container"
	"github.com/parsonious/scuttle-crypto/internal/encoding"
)

// AlgorithmMetadata is the subset of a registry entry ListAlgorithms
// exposes to callers.
type AlgorithmMetadata struct {
	Name           string
	KeySize        int
	Legacy         bool
	DefaultEncoder string
	Priority       int
}

// EncoderMetadata is what ListEncoders exposes per encoder.
type EncoderMetadata struct {
	Name      string
	IsURLSafe bool
}

// payload is the UTF-8 JSON shape encrypt_and_encode/decode_and_decrypt
// operate on: a title and instructions pair.
type payload struct {
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
}

func lookupByName(op, name string) (*algorithmInfo, error) {
	info, ok := registryByName[name]
	if !ok {
		return nil, newError(InvalidArgument, op, "unknown algorithm: "+name, nil)
	}
	return info, nil
}

func lookupByContainerID(op, id string) (*algorithmInfo, error) {
	info, ok := registryByContainerID[id]
	if !ok {
		return nil, newError(Malformed, op, "unknown algorithm id: "+id, nil)
	}
	return info, nil
}

// Encrypt returns the raw cipher blob for data under key, with no
// container header and no encoding.
func Encrypt(algorithm string, data, key []byte) ([]byte, error) {
	const op = "Encrypt"
	info, err := lookupByName(op, algorithm)
	if err != nil {
		return nil, err
	}
	if !info.VariableKey && len(key) != info.KeySize {
		return nil, newError(InvalidArgument, op, "wrong key length for "+algorithm, nil)
	}

	blob, err := info.impl.encrypt(data, key)
	if err != nil {
		return nil, classifyError(op, err)
	}
	return blob, nil
}

// Decrypt reverses Encrypt for a raw blob under the given algorithm.
func Decrypt(algorithm string, blob, key []byte) ([]byte, error) {
	const op = "Decrypt"
	info, err := lookupByName(op, algorithm)
	if err != nil {
		return nil, err
	}

	plaintext, err := info.impl.decrypt(blob, key)
	if err != nil {
		return nil, classifyError(op, err)
	}
	return plaintext, nil
}

// EncryptAndEncode encrypts title/instructions under algorithm and key,
// wraps the result in a BPIO container header, and encodes it with the
// algorithm's default encoder (or encoderName if non-empty).
func EncryptAndEncode(algorithm, encoderName, title, instructions string, key []byte) (string, error) {
	const op = "EncryptAndEncode"
	info, err := lookupByName(op, algorithm)
	if err != nil {
		return "", err
	}
	if !info.VariableKey && len(key) != info.KeySize {
		return "", newError(InvalidArgument, op, "wrong key length for "+algorithm, nil)
	}

	raw, err := json.Marshal(payload{Title: title, Instructions: instructions})
	if err != nil {
		return "", newError(InvalidArgument, op, "payload not encodable", err)
	}

	cipherBlob, err := info.impl.encrypt(raw, key)
	if err != nil {
		return "", classifyError(op, err)
	}

	header := container.Write(info.ContainerID)
	blob := make([]byte, 0, len(header)+len(cipherBlob))
	blob = append(blob, header[:]...)
	blob = append(blob, cipherBlob...)

	if encoderName == "" {
		encoderName = info.DefaultEncoder
	}
	enc, err := encoding.ByName(encoderName)
	if err != nil {
		return "", newError(InvalidArgument, op, "unknown encoder: "+encoderName, err)
	}
	return enc.Encode(blob), nil
}

// DecodeAndDecrypt reverses EncryptAndEncode: decode with encoderName,
// parse the BPIO header to find the algorithm, decrypt, and return the
// title/instructions pair.
func DecodeAndDecrypt(encoderName, token string, key []byte) (title, instructions string, err error) {
	const op = "DecodeAndDecrypt"
	enc, encErr := encoding.ByName(encoderName)
	if encErr != nil {
		return "", "", newError(InvalidArgument, op, "unknown encoder: "+encoderName, encErr)
	}

	blob, decErr := enc.Decode(token)
	if decErr != nil {
		return "", "", newError(Malformed, op, "token does not decode", decErr)
	}

	if len(blob) < container.HeaderSize {
		return "", "", newError(Malformed, op, "blob shorter than container header", nil)
	}
	header, hdrErr := container.Read(blob[:container.HeaderSize])
	if hdrErr != nil {
		return "", "", newError(Malformed, op, "invalid container header", hdrErr)
	}

	info, lookupErr := lookupByContainerID(op, header.Algorithm)
	if lookupErr != nil {
		return "", "", lookupErr
	}

	plaintext, decErr2 := info.impl.decrypt(blob[container.HeaderSize:], key)
	if decErr2 != nil {
		return "", "", classifyError(op, decErr2)
	}

	var p payload
	if err := json.Unmarshal(plaintext, &p); err != nil {
		return "", "", newError(Malformed, op, "decrypted payload not well-formed", err)
	}
	return p.Title, p.Instructions, nil
}

// GenerateKey CSPRNG-fills a key of algorithm's required size.
func GenerateKey(algorithm string) ([]byte, error) {
	const op = "GenerateKey"
	info, err := lookupByName(op, algorithm)
	if err != nil {
		return nil, err
	}
	key, genErr := generateKeyBytes(info.KeySize)
	if genErr != nil {
		return nil, newError(InvalidArgument, op, "key generation failed", genErr)
	}
	return key, nil
}

// ListAlgorithms returns metadata for every registered algorithm,
// ordered by descending Priority then name, for the CLI to present.
func ListAlgorithms() []AlgorithmMetadata {
	out := make([]AlgorithmMetadata, 0, len(registryByName))
	for _, info := range registryByName {
		out = append(out, AlgorithmMetadata{
			Name:           info.Name,
			KeySize:        info.KeySize,
			Legacy:         info.Legacy,
			DefaultEncoder: info.DefaultEncoder,
			Priority:       info.Priority,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ListEncoders returns metadata for every registered encoder.
func ListEncoders() []EncoderMetadata {
	encoders := encoding.All()
	out := make([]EncoderMetadata, 0, len(encoders))
	for _, e := range encoders {
		out = append(out, EncoderMetadata{Name: e.Name(), IsURLSafe: e.IsURLSafe()})
	}
	return out
}

// classifyError maps a lower-layer sentinel error onto the engine's
// typed ErrorKind taxonomy.
func classifyError(op string, err error) error {
	switch {
	case isAuthFailure(err):
		return newError(AuthenticationFailure, op, "authentication failed", err)
	case isMalformed(err):
		return newError(Malformed, op, "malformed input", err)
	default:
		return newError(InvalidArgument, op, "operation failed", err)
	}
}
