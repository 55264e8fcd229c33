package main

import (
	"errors"

	"github.com/parsonious/scuttle-crypto/internal/engine"
)

const (
	exitSuccess       = 0
	exitValidation    = 1
	exitCryptographic = 2
	exitIOFailure     = 3
)

// ioError wraps a file read/write failure so exitCodeFor can tell it
// apart from a validation or cryptographic failure.
type ioError struct{ cause error }

func (e *ioError) Error() string { return e.cause.Error() }
func (e *ioError) Unwrap() error { return e.cause }

// exitCodeFor maps a command's returned error onto the process exit
// codes this CLI promises: 1 for bad input, 2 for a cryptographic
// failure, 3 for I/O, 1 for anything else cobra surfaces (bad flags).
func exitCodeFor(err error) int {
	if err == nil {
		return exitSuccess
	}

	var ioErr *ioError
	if errors.As(err, &ioErr) {
		return exitIOFailure
	}

	var engErr *engine.Error
	if errors.As(err, &engErr) {
		switch engErr.Kind {
		case engine.AuthenticationFailure, engine.Unsupported:
			return exitCryptographic
		default:
			return exitValidation
		}
	}

	return exitValidation
}
