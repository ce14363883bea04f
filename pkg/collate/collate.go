// Package collate turns a list of variable-length examples into padded,
// batch-aligned tensors plus a validity mask.
package collate

import (
	"errors"
	"fmt"

	"github.com/grexie/summaries/pkg/features"
	"gorgonia.org/tensor"
)

// DefaultMaxSentenceLength is the hard cap on tokens kept per sentence.
const DefaultMaxSentenceLength = 512

var (
	ErrEmptyBatch        = errors.New("empty batch")
	ErrInconsistentWidth = errors.New("inconsistent feature width in batch")
	ErrDocumentKind      = errors.New("document kind does not match collator")
)

// Example is one document with its oracle label. Index is the dataset index
// the document was read from.
type Example struct {
	Index    int
	Document features.Document
	Label    int
}

// Batch is the model-ready form of a list of examples.
type Batch struct {
	// Inputs is Int64 (B, docLen, sentLen) for token batches and Float32
	// (B, docLen, width) for feature batches.
	Inputs *tensor.Dense
	// Mask is Int64 (B, docLen, sentLen) holding 1 at real tokens for token
	// batches, and Bool (B, docLen) holding true at padded sentences for
	// feature batches.
	Mask *tensor.Dense
	// Labels is an Int64 (B, 1) column vector.
	Labels *tensor.Dense
	// Lengths is an Int64 (B) vector of true document lengths.
	Lengths *tensor.Dense

	DocLengths []int
	Indices    []int
}

func (b *Batch) Size() int {
	return len(b.DocLengths)
}

// Collator is implemented by the token and feature strategies.
type Collator interface {
	Collate(examples []Example) (*Batch, error)
}

// ForModelType returns the collator matching the features a model consumes:
// token ids for "bert", sentence vectors for "linear".
func ForModelType(modelType string, maxSentenceLength int) (Collator, error) {
	switch modelType {
	case "bert":
		return &TokenCollator{MaxSentenceLength: maxSentenceLength}, nil
	case "linear":
		return &FeatureCollator{}, nil
	default:
		return nil, fmt.Errorf("no collator for model type %q", modelType)
	}
}

// KindForModelType returns the document kind a model type reads.
func KindForModelType(modelType string) (features.Kind, error) {
	switch modelType {
	case "bert":
		return features.KindTokens, nil
	case "linear":
		return features.KindFeatures, nil
	default:
		return 0, fmt.Errorf("no document kind for model type %q", modelType)
	}
}

func labelsAndLengths(examples []Example) (*tensor.Dense, *tensor.Dense, []int, []int) {
	labels := make([]int64, len(examples))
	lengths := make([]int64, len(examples))
	docLengths := make([]int, len(examples))
	indices := make([]int, len(examples))
	for i, example := range examples {
		labels[i] = int64(example.Label)
		lengths[i] = int64(example.Document.Len())
		docLengths[i] = example.Document.Len()
		indices[i] = example.Index
	}

	return tensor.New(tensor.WithShape(len(examples), 1), tensor.WithBacking(labels)),
		tensor.New(tensor.WithShape(len(examples)), tensor.WithBacking(lengths)),
		docLengths,
		indices
}
