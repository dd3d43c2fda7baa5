package rng

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
	"sync"
)

// Source supplies the uniform draws every game engine consumes. Engines never
// touch a global generator; the caller decides whether the source is seeded
// (tests, replays) or crypto-seeded (production).
type Source interface {
	// Intn returns a uniform int in [0, n). Panics if n <= 0.
	Intn(n int) int

	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

type pcgSource struct {
	r *mathrand.Rand
}

// New returns a deterministic source seeded from the given value. Two sources
// built from the same seed produce identical draw sequences.
func New(seed uint64) Source {
	return &pcgSource{r: mathrand.New(mathrand.NewPCG(seed, seed))}
}

// NewCrypto returns a source seeded from the operating system's entropy pool.
func NewCrypto() Source {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Entropy pool read failures are not recoverable at this layer.
		panic("rng: failed to read system entropy: " + err.Error())
	}
	return New(binary.LittleEndian.Uint64(buf[:]))
}

func (s *pcgSource) Intn(n int) int   { return s.r.IntN(n) }
func (s *pcgSource) Float64() float64 { return s.r.Float64() }

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// Locked wraps a source so it can be shared across goroutines. Individual
// game sessions are single-threaded, but one server-wide source backs them all.
func Locked(src Source) Source {
	return &lockedSource{src: src}
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Die returns a single die face in [1, 6].
func Die(src Source) int {
	return src.Intn(6) + 1
}
