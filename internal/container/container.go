// Package container implements the BPIO self-describing envelope: a
// fixed 10-byte header (magic, version, 4-char algorithm id) followed
// by algorithm-specific payload bytes, in the read/write-pair idiom
// used throughout this codebase's framed-protocol files.
package container

import (
	"encoding/binary"
	"errors"
)

// HeaderSize is the fixed size of a BPIO header in bytes.
const HeaderSize = 10

// CurrentVersion is the only version this codec writes and accepts.
const CurrentVersion = 1

var magic = [4]byte{'B', 'P', 'I', 'O'}

// Errors returned while parsing a header.
var (
	ErrBadMagic      = errors.New("container: bad magic bytes")
	ErrUnknownVersion = errors.New("container: unknown version")
	ErrTruncated     = errors.New("container: truncated header")
)

// Header is the parsed BPIO envelope prefix.
type Header struct {
	Version   uint16
	Algorithm string // NUL-padding already stripped
}

// Write serialises a header for algorithm id algID (at most 4 ASCII
// bytes, NUL-padded) at the current version.
func Write(algID string) [HeaderSize]byte {
	var out [HeaderSize]byte
	copy(out[0:4], magic[:])
	binary.LittleEndian.PutUint16(out[4:6], CurrentVersion)

	var idField [4]byte
	copy(idField[:], algID)
	copy(out[6:10], idField[:])
	return out
}

// Read parses a 10-byte header, validating the magic and version and
// stripping trailing NULs from the algorithm id.
func Read(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrTruncated
	}
	if b[0] != magic[0] || b[1] != magic[1] || b[2] != magic[2] || b[3] != magic[3] {
		return Header{}, ErrBadMagic
	}

	version := binary.LittleEndian.Uint16(b[4:6])
	if version != CurrentVersion {
		return Header{}, ErrUnknownVersion
	}

	idField := b[6:10]
	end := 4
	for end > 0 && idField[end-1] == 0 {
		end--
	}

	return Header{Version: version, Algorithm: string(idField[:end])}, nil
}
