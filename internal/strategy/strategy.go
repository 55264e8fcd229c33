// Package strategy implements a runtime strategy selector: a per-cipher,
// lazily initialised, mutex-guarded cache that picks the fastest backend
// the host CPU actually supports. Feature detection goes through
// `golang.org/x/sys/cpu`, the ecosystem's standard library for this.
package strategy

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Backend identifies a concrete implementation of a Bernstein cipher.
type Backend int

const (
	BackendScalar Backend = iota
	BackendSSE2
	BackendAVX2
	BackendNEON
)

func (b Backend) String() string {
	switch b {
	case BackendScalar:
		return "scalar"
	case BackendSSE2:
		return "sse2"
	case BackendAVX2:
		return "avx2"
	case BackendNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Priority returns the selection weight for b, descending order:
// AVX2=300, SSE2/NEON=200, scalar=100.
func (b Backend) Priority() int {
	switch b {
	case BackendAVX2:
		return 300
	case BackendSSE2, BackendNEON:
		return 200
	default:
		return 100
	}
}

// Implementation is a concrete, stateless, thread-safe keystream-block
// generator for one Bernstein cipher backend. The same instance is
// shared across threads.
type Implementation interface {
	Backend() Backend
	// Block writes one 64-byte keystream block for the given 16-word
	// little-endian state into dst.
	Block(dst *[64]byte, state *[16]uint32)
}

// Available reports whether backend b is usable on this host.
func Available(b Backend) bool {
	switch b {
	case BackendAVX2:
		return cpu.X86.HasAVX2
	case BackendSSE2:
		return cpu.X86.HasSSE2
	case BackendNEON:
		return cpu.ARM64.HasASIMD
	case BackendScalar:
		return true
	default:
		return false
	}
}

// Selector caches the best available Implementation per cipher behind a
// mutex, with double-checked-locking publication to satisfy the
// happens-before requirement for the shared cache.
type Selector struct {
	mu      sync.Mutex
	cached  atomic.Pointer[Implementation]
	forced  atomic.Pointer[Implementation]
	factory func(Backend) Implementation
	order   []Backend
}

// NewSelector builds a Selector for a cipher whose backends are produced
// by factory, preferring backends earlier in order (typically
// AVX2 > SSE2/NEON > scalar, probed in descending Priority()).
func NewSelector(factory func(Backend) Implementation, order []Backend) *Selector {
	return &Selector{factory: factory, order: order}
}

// Best returns the cached best Implementation, computing and caching it
// on first use (or returning a forced override installed by
// ForceImplementation).
func (s *Selector) Best() Implementation {
	if forced := s.forced.Load(); forced != nil {
		return *forced
	}

	if cached := s.cached.Load(); cached != nil {
		return *cached
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached := s.cached.Load(); cached != nil {
		return *cached
	}

	best := s.selectLocked()
	s.cached.Store(&best)
	return best
}

func (s *Selector) selectLocked() Implementation {
	for _, b := range s.order {
		if b == BackendScalar {
			continue
		}
		if Available(b) {
			return s.factory(b)
		}
	}
	return s.factory(BackendScalar)
}

// ForceImplementation overrides Best() for tests.
func (s *Selector) ForceImplementation(impl Implementation) {
	s.forced.Store(&impl)
}

// Reset clears both the forced override and the cached selection.
func (s *Selector) Reset() {
	s.forced.Store(nil)
	s.cached.Store(nil)
}
