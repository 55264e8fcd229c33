package engine

import (
	"errors"

	"github.com/parsonious/scuttle-crypto/internal/aead"
	"github.com/parsonious/scuttle-crypto/internal/block"
	"github.com/parsonious/scuttle-crypto/internal/container"
)

// isAuthFailure reports whether err originated from one of the
// constant-time tag/hash comparisons across internal/aead and
// internal/block.
func isAuthFailure(err error) bool {
	return errors.Is(err, aead.ErrAuthenticationFailed) || errors.Is(err, block.ErrAuthenticationFailed)
}

// isMalformed reports whether err reflects truncated or structurally
// invalid input rather than a key/argument problem.
func isMalformed(err error) bool {
	return errors.Is(err, aead.ErrTruncatedBlob) ||
		errors.Is(err, block.ErrInvalidCiphertext) ||
		errors.Is(err, container.ErrBadMagic) ||
		errors.Is(err, container.ErrUnknownVersion) ||
		errors.Is(err, container.ErrTruncated)
}
