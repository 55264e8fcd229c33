// Package engine implements the façade and algorithm registry:
// Encrypt/Decrypt/EncryptAndEncode/DecodeAndDecrypt/GenerateKey/
// ListAlgorithms/ListEncoders, dispatching to internal/aead,
// internal/block, internal/container, and internal/encoding through a
// name- and container-id-keyed registry.
package engine

import "fmt"

// ErrorKind is the closed error taxonomy every engine operation reports
// failures through.
type ErrorKind string

const (
	InvalidArgument       ErrorKind = "invalid_argument"
	Malformed             ErrorKind = "malformed"
	AuthenticationFailure ErrorKind = "authentication_failure"
	Unsupported           ErrorKind = "unsupported"
)

// Error is the typed error every engine operation returns: one
// kind-tagged type standing in for what would otherwise be a scatter of
// distinct sentinel errors.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("engine: %s: %s: %v", e.Op, e.Message, e.cause)
	}
	return fmt.Sprintf("engine: %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is(err, engine.ErrAuthenticationFailure) compare by
// kind alone, ignoring Op/Message/cause.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newError(kind ErrorKind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, cause: cause}
}

// Sentinel values for errors.Is comparisons; only Kind is consulted.
var (
	ErrInvalidArgument       = &Error{Kind: InvalidArgument}
	ErrMalformed             = &Error{Kind: Malformed}
	ErrAuthenticationFailure = &Error{Kind: AuthenticationFailure}
	ErrUnsupported           = &Error{Kind: Unsupported}
)
