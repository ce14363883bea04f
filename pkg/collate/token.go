package collate

import (
	"fmt"

	"github.com/grexie/summaries/pkg/features"
	"gorgonia.org/tensor"
)

// TokenCollator pads token-id documents to (B, maxDocLen, maxSentLen).
// Sentences longer than the cap are truncated without error.
type TokenCollator struct {
	// MaxSentenceLength caps the sentence dimension, zero means
	// DefaultMaxSentenceLength.
	MaxSentenceLength int
}

func (c *TokenCollator) Collate(examples []Example) (*Batch, error) {
	if len(examples) == 0 {
		return nil, ErrEmptyBatch
	}

	docs := make([]features.TokenDocument, len(examples))
	maxDocLen, longest := 0, 0
	for i, example := range examples {
		doc, ok := example.Document.(features.TokenDocument)
		if !ok {
			return nil, fmt.Errorf("%w: example %d holds %T", ErrDocumentKind, i, example.Document)
		}
		docs[i] = doc
		maxDocLen = max(maxDocLen, doc.Len())
		longest = max(longest, doc.MaxSentenceLength())
	}

	maxSentLen := c.MaxSentenceLength
	if maxSentLen <= 0 {
		maxSentLen = DefaultMaxSentenceLength
	}
	maxSentLen = min(maxSentLen, longest)

	if maxDocLen == 0 || maxSentLen == 0 {
		return nil, fmt.Errorf("%w: no tokens in %d examples", ErrEmptyBatch, len(examples))
	}

	batchSize := len(examples)
	inputs := make([]int64, batchSize*maxDocLen*maxSentLen)
	mask := make([]int64, batchSize*maxDocLen*maxSentLen)
	for i, doc := range docs {
		for j, sentence := range doc {
			offset := (i*maxDocLen + j) * maxSentLen
			for k, token := range sentence {
				if k >= maxSentLen {
					break
				}
				inputs[offset+k] = token
				mask[offset+k] = 1
			}
		}
	}

	labels, lengths, docLengths, indices := labelsAndLengths(examples)
	return &Batch{
		Inputs:     tensor.New(tensor.WithShape(batchSize, maxDocLen, maxSentLen), tensor.WithBacking(inputs)),
		Mask:       tensor.New(tensor.WithShape(batchSize, maxDocLen, maxSentLen), tensor.WithBacking(mask)),
		Labels:     labels,
		Lengths:    lengths,
		DocLengths: docLengths,
		Indices:    indices,
	}, nil
}

// Stacked returns copies of the token inputs and mask with the batch and
// document dimensions merged, (B*maxDocLen, maxSentLen), so every sentence
// of the batch is one row for a sentence encoder.
func (b *Batch) Stacked() (*tensor.Dense, *tensor.Dense, error) {
	shape := b.Inputs.Shape()
	if len(shape) != 3 || b.Mask.Dims() != 3 {
		return nil, nil, fmt.Errorf("cannot stack batch with input shape %v", shape)
	}

	inputs := b.Inputs.Clone().(*tensor.Dense)
	if err := inputs.Reshape(shape[0]*shape[1], shape[2]); err != nil {
		return nil, nil, fmt.Errorf("failed to reshape inputs: %w", err)
	}
	mask := b.Mask.Clone().(*tensor.Dense)
	if err := mask.Reshape(shape[0]*shape[1], shape[2]); err != nil {
		return nil, nil, fmt.Errorf("failed to reshape mask: %w", err)
	}
	return inputs, mask, nil
}
