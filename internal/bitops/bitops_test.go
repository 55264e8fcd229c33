package bitops

import "testing"

import "github.com/stretchr/testify/require"

func TestU32LERoundTrip(t *testing.T) {
	var b [4]byte
	WriteU32LE(b[:], 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), ReadU32LE(b[:]))
}

func TestU64LERoundTrip(t *testing.T) {
	var b [8]byte
	WriteU64LE(b[:], 0x0123456789ABCDEF)
	require.Equal(t, uint64(0x0123456789ABCDEF), ReadU64LE(b[:]))
}

func TestPartialReadsZeroExtend(t *testing.T) {
	require.Equal(t, uint32(0x0000CDAB), ReadU32LEPartial([]byte{0xAB, 0xCD}))
	require.Equal(t, uint64(0x0000000000CDAB), ReadU64LEPartial([]byte{0xAB, 0xCD}))
}

func TestRotations(t *testing.T) {
	require.Equal(t, uint32(0x00000002), RotL32(0x80000000, 2))
	require.Equal(t, uint64(0x0000000000000002), RotL64(0x8000000000000000, 2))
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Zero(b)
	require.Equal(t, []byte{0, 0, 0, 0}, b)
}
