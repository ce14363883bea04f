// Package baseline implements the keyword-overlap extractive baseline and
// its ROUGE evaluation.
package baseline

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

var (
	ErrEmptyDocument = errors.New("document has no sentences")
	ErrUnknownType   = errors.New("unknown sentence type")
)

// Predict returns the first sentence with the highest keyword score for type
// t. When no sentence scores, the winner is drawn uniformly from rng.
func (k Keywords) Predict(rng *rand.Rand, document []string, t int) (int, error) {
	if t < 0 || t >= len(k) {
		return 0, fmt.Errorf("%w: %d of %d", ErrUnknownType, t, len(k))
	}
	if len(document) == 0 {
		return 0, ErrEmptyDocument
	}

	winner, high := 0, 0
	for i, sentence := range document {
		if score := k.Score(sentence, t); score > high {
			winner, high = i, score
		}
	}
	if high == 0 {
		return rng.IntN(len(document)), nil
	}
	return winner, nil
}

// Summary predicts one sentence per type and returns the distinct winners in
// document order.
func (k Keywords) Summary(rng *rand.Rand, document []string, types []int) ([]int, error) {
	indices := make([]int, 0, len(types))
	for _, t := range types {
		winner, err := k.Predict(rng, document, t)
		if err != nil {
			return nil, err
		}
		indices = append(indices, winner)
	}
	slices.Sort(indices)
	return slices.Compact(indices), nil
}
