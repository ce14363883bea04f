// Package minidoc shrinks documents to a fixed number of sentences while
// keeping the oracle sentence.
package minidoc

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/grexie/summaries/pkg/features"
)

var (
	ErrLabelOutOfRange = errors.New("label outside document")
	ErrInvalidSize     = errors.New("mini-document size must be positive")
)

// Indices picks the sentence order for a mini-document of newLen sentences
// drawn from a document of oldLen sentences, and returns where label ended up.
//
// When newLen >= oldLen every sentence is kept and only the order is
// shuffled, so the result has oldLen entries and is never padded up to
// newLen. Otherwise label is removed from the pool, the rest is shuffled,
// the first newLen indices are kept and a uniformly drawn slot is
// overwritten with label.
func Indices(rng *rand.Rand, oldLen, newLen, label int) ([]int, int, error) {
	if label < 0 || label >= oldLen {
		return nil, 0, fmt.Errorf("%w: label %d, document length %d", ErrLabelOutOfRange, label, oldLen)
	}

	options := make([]int, oldLen)
	for i := range options {
		options[i] = i
	}

	if newLen >= oldLen {
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		return options, slices.Index(options, label), nil
	}

	if newLen < 1 {
		return nil, 0, fmt.Errorf("%w: got %d", ErrInvalidSize, newLen)
	}

	options = slices.Delete(options, label, label+1)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	indices := slices.Clone(options[:newLen])
	newLabel := rng.IntN(newLen)
	indices[newLabel] = label
	return indices, newLabel, nil
}

// Reduce applies Indices to doc and returns the mini-document with its new
// label position.
func Reduce(rng *rand.Rand, doc features.Document, size, label int) (features.Document, int, error) {
	indices, newLabel, err := Indices(rng, doc.Len(), size, label)
	if err != nil {
		return nil, 0, err
	}
	mini, err := doc.Select(indices)
	if err != nil {
		return nil, 0, err
	}
	return mini, newLabel, nil
}
