package features

import "fmt"

type Kind int

const (
	KindTokens Kind = iota
	KindFeatures
)

func (k Kind) String() string {
	switch k {
	case KindTokens:
		return "tokens"
	case KindFeatures:
		return "features"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Document is an ordered sequence of sentences.
type Document interface {
	Kind() Kind
	// Len is the sentence count.
	Len() int
	// Select returns a new document made of the sentences at indices, in
	// that order.
	Select(indices []int) (Document, error)
}

// TokenDocument holds one token id sequence per sentence.
type TokenDocument [][]int64

func (d TokenDocument) Kind() Kind { return KindTokens }
func (d TokenDocument) Len() int   { return len(d) }

func (d TokenDocument) Select(indices []int) (Document, error) {
	out := make(TokenDocument, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(d) {
			return nil, fmt.Errorf("sentence index %d out of range [0, %d)", idx, len(d))
		}
		out[i] = d[idx]
	}
	return out, nil
}

// MaxSentenceLength returns the longest sentence in tokens.
func (d TokenDocument) MaxSentenceLength() int {
	max := 0
	for _, sentence := range d {
		if len(sentence) > max {
			max = len(sentence)
		}
	}
	return max
}

// FeatureDocument holds one fixed-width vector per sentence. Width is kept
// separately so empty documents still know their feature width.
type FeatureDocument struct {
	Width int
	Rows  [][]float32
}

func (d FeatureDocument) Kind() Kind { return KindFeatures }
func (d FeatureDocument) Len() int   { return len(d.Rows) }

func (d FeatureDocument) Select(indices []int) (Document, error) {
	out := FeatureDocument{Width: d.Width, Rows: make([][]float32, len(indices))}
	for i, idx := range indices {
		if idx < 0 || idx >= len(d.Rows) {
			return nil, fmt.Errorf("sentence index %d out of range [0, %d)", idx, len(d.Rows))
		}
		out.Rows[i] = d.Rows[idx]
	}
	return out, nil
}

// Validate checks that every row has Width values.
func (d FeatureDocument) Validate() error {
	for i, row := range d.Rows {
		if len(row) != d.Width {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrInconsistentWidth, i, len(row), d.Width)
		}
	}
	return nil
}
