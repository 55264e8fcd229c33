package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	for _, id := range []string{"AESG", "CC20", "XCCH", "SL20", "3FSH", "3DES", "RC2_", "AES_"} {
		header := Write(id)
		parsed, err := Read(header[:])
		require.NoError(t, err)
		require.Equal(t, uint16(CurrentVersion), parsed.Version)
		require.Equal(t, id, parsed.Algorithm)
	}
}

func TestReadBadMagic(t *testing.T) {
	header := Write("AESG")
	header[0] = 'X'
	_, err := Read(header[:])
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestReadUnknownVersion(t *testing.T) {
	header := Write("AESG")
	header[4] = 9
	header[5] = 0
	_, err := Read(header[:])
	require.ErrorIs(t, err, ErrUnknownVersion)
}

func TestReadTruncated(t *testing.T) {
	_, err := Read([]byte{'B', 'P', 'I'})
	require.ErrorIs(t, err, ErrTruncated)
}

func TestAlgorithmIDShorterThanFourChars(t *testing.T) {
	header := Write("RC2")
	parsed, err := Read(header[:])
	require.NoError(t, err)
	require.Equal(t, "RC2", parsed.Algorithm)
}
