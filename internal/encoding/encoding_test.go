package encoding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBase64URLVector(t *testing.T) {
	var e Base64URL
	require.Equal(t, "-_-_", e.Encode([]byte{0xFB, 0xFF, 0xBF}))
}

func TestBase65536Vector(t *testing.T) {
	var e Base65536
	require.Equal(t, string(rune(0x10001)), e.Encode([]byte{0x00, 0x01}))
}

func TestEncodersRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, e := range All() {
		e := e
		t.Run(e.Name(), func(t *testing.T) {
			for _, n := range []int{0, 1, 2, 3, 4, 5, 7, 16, 255, 1024} {
				b := make([]byte, n)
				rng.Read(b)
				got, err := e.Decode(e.Encode(b))
				require.NoError(t, err)
				require.Equal(t, b, got)
			}
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{NameBase64URL, NameBase85, NameBase65536} {
		e, err := ByName(name)
		require.NoError(t, err)
		require.Equal(t, name, e.Name())
	}
	_, err := ByName("nope")
	require.Error(t, err)
}

func TestBase85MalformedSymbol(t *testing.T) {
	var e Base85
	_, err := e.Decode(string([]byte{0x00}))
	require.Error(t, err)
}
