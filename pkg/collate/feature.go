package collate

import (
	"fmt"

	"github.com/grexie/summaries/pkg/features"
	"gorgonia.org/tensor"
)

// FeatureCollator pads sentence-vector documents to (B, maxLen, width).
//
// Its mask marks padding: position (i, j) is true when sentence j lies beyond
// document i. This is the opposite polarity of the TokenCollator mask and the
// attention layers consuming it depend on that.
type FeatureCollator struct{}

func (c *FeatureCollator) Collate(examples []Example) (*Batch, error) {
	if len(examples) == 0 {
		return nil, ErrEmptyBatch
	}

	docs := make([]features.FeatureDocument, len(examples))
	maxLen := 0
	width := -1
	for i, example := range examples {
		doc, ok := example.Document.(features.FeatureDocument)
		if !ok {
			return nil, fmt.Errorf("%w: example %d holds %T", ErrDocumentKind, i, example.Document)
		}
		docs[i] = doc
		if doc.Len() == 0 {
			continue
		}
		if width < 0 {
			width = doc.Width
		} else if doc.Width != width {
			return nil, fmt.Errorf("%w: example %d has width %d, want %d", ErrInconsistentWidth, i, doc.Width, width)
		}
		for j, row := range doc.Rows {
			if len(row) != width {
				return nil, fmt.Errorf("%w: example %d sentence %d has width %d, want %d", ErrInconsistentWidth, i, j, len(row), width)
			}
		}
		maxLen = max(maxLen, doc.Len())
	}

	if maxLen == 0 || width <= 0 {
		return nil, fmt.Errorf("%w: no sentences in %d examples", ErrEmptyBatch, len(examples))
	}

	batchSize := len(examples)
	inputs := make([]float32, batchSize*maxLen*width)
	mask := make([]bool, batchSize*maxLen)
	for i, doc := range docs {
		for j := range maxLen {
			if j >= doc.Len() {
				mask[i*maxLen+j] = true
				continue
			}
			copy(inputs[(i*maxLen+j)*width:], doc.Rows[j])
		}
	}

	labels, lengths, docLengths, indices := labelsAndLengths(examples)
	return &Batch{
		Inputs:     tensor.New(tensor.WithShape(batchSize, maxLen, width), tensor.WithBacking(inputs)),
		Mask:       tensor.New(tensor.WithShape(batchSize, maxLen), tensor.WithBacking(mask)),
		Labels:     labels,
		Lengths:    lengths,
		DocLengths: docLengths,
		Indices:    indices,
	}, nil
}
