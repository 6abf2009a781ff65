package engine

import "math/rand/v2"

// Source picks piece kinds. IntN returns a value in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewSeededSource returns a reproducible source.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sequence returns a source that deals the given kinds in order, cycling when
// exhausted.
func Sequence(kinds ...Kind) Source {
	if len(kinds) == 0 {
		kinds = Kinds[:]
	}
	return &sequence{kinds: kinds}
}

type sequence struct {
	kinds []Kind
	pos   int
}

func (s *sequence) IntN(n int) int {
	k := s.kinds[s.pos%len(s.kinds)]
	s.pos++
	idx := int(k) - 1
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}
