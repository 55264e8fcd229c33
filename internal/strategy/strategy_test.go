package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeImpl struct {
	backend Backend
}

func (f fakeImpl) Backend() Backend                         { return f.backend }
func (f fakeImpl) Block(dst *[64]byte, state *[16]uint32) {}

func TestSelectorCachesSelection(t *testing.T) {
	calls := 0
	sel := NewSelector(func(b Backend) Implementation {
		calls++
		return fakeImpl{backend: b}
	}, []Backend{BackendAVX2, BackendSSE2, BackendScalar})

	first := sel.Best()
	second := sel.Best()
	require.Equal(t, first.Backend(), second.Backend())
	require.Equal(t, 1, calls)
}

func TestForceImplementationOverridesCache(t *testing.T) {
	sel := NewSelector(func(b Backend) Implementation {
		return fakeImpl{backend: b}
	}, []Backend{BackendScalar})

	sel.Best()
	sel.ForceImplementation(fakeImpl{backend: BackendNEON})
	require.Equal(t, BackendNEON, sel.Best().Backend())

	sel.Reset()
	require.Equal(t, BackendScalar, sel.Best().Backend())
}

func TestPriorityOrdering(t *testing.T) {
	require.Greater(t, BackendAVX2.Priority(), BackendSSE2.Priority())
	require.Greater(t, BackendAVX2.Priority(), BackendNEON.Priority())
	require.Greater(t, BackendSSE2.Priority(), BackendScalar.Priority())
}

func TestScalarAlwaysAvailable(t *testing.T) {
	require.True(t, Available(BackendScalar))
}
