package dataset

import "math/rand/v2"

// Sampler yields the dataset indices of one epoch in iteration order.
type Sampler interface {
	Len() int
	Indices() []int
}

// SequentialSampler always iterates in the order it was given.
type SequentialSampler struct {
	indices []int
}

func NewSequentialSampler(indices []int) *SequentialSampler {
	return &SequentialSampler{indices: append([]int{}, indices...)}
}

func (s *SequentialSampler) Len() int { return len(s.indices) }

func (s *SequentialSampler) Indices() []int {
	return append([]int{}, s.indices...)
}

// RandomSampler draws a fresh permutation of its indices every epoch.
type RandomSampler struct {
	indices []int
	rng     *rand.Rand
}

func NewRandomSampler(indices []int, rng *rand.Rand) *RandomSampler {
	return &RandomSampler{indices: append([]int{}, indices...), rng: rng}
}

func (s *RandomSampler) Len() int { return len(s.indices) }

func (s *RandomSampler) Indices() []int {
	out := make([]int, len(s.indices))
	for i, p := range s.rng.Perm(len(s.indices)) {
		out[i] = s.indices[p]
	}
	return out
}
