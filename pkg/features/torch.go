package features

import (
	"fmt"
	"math/big"

	"github.com/nlpodyssey/gopickle/pytorch"
	"github.com/nlpodyssey/gopickle/types"
)

// LoadTorch reads a file written with torch.save. Feature documents are a
// 2-D float tensor or a list of 1-D float tensors; token documents are a list
// of int lists or 1-D long tensors.
func LoadTorch(path string, kind Kind) (Document, error) {
	value, err := pytorch.Load(path)
	if err != nil {
		return nil, err
	}
	return fromPickle(value, kind)
}

func fromPickle(value any, kind Kind) (Document, error) {
	switch kind {
	case KindTokens:
		return tokensFromPickle(value)
	case KindFeatures:
		return featuresFromPickle(value)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
}

func tokensFromPickle(value any) (Document, error) {
	items, ok := pickleItems(value)
	if !ok {
		if t, ok := value.(*pytorch.Tensor); ok && len(t.Size) == 2 {
			return tokensFromTensor2D(t)
		}
		return nil, fmt.Errorf("%w: %T is not a list of sentences", ErrKindMismatch, value)
	}

	doc := make(TokenDocument, len(items))
	for i, item := range items {
		switch s := item.(type) {
		case *pytorch.Tensor:
			if len(s.Size) != 1 {
				return nil, fmt.Errorf("%w: sentence %d tensor has shape %v", ErrKindMismatch, i, s.Size)
			}
			sentence := make([]int64, s.Size[0])
			for k := range sentence {
				v, err := storageInt(s.Source, s.StorageOffset+k*s.Stride[0])
				if err != nil {
					return nil, err
				}
				sentence[k] = v
			}
			doc[i] = sentence
		default:
			tokens, ok := pickleItems(item)
			if !ok {
				return nil, fmt.Errorf("%w: sentence %d is %T", ErrKindMismatch, i, item)
			}
			sentence := make([]int64, len(tokens))
			for k, token := range tokens {
				v, err := pickleInt(token)
				if err != nil {
					return nil, fmt.Errorf("sentence %d token %d: %w", i, k, err)
				}
				sentence[k] = v
			}
			doc[i] = sentence
		}
	}
	return doc, nil
}

// tokensFromTensor2D reads a padded (sentences, tokens) long tensor; trailing
// zero ids are padding and are dropped.
func tokensFromTensor2D(t *pytorch.Tensor) (Document, error) {
	rows, cols := t.Size[0], t.Size[1]
	doc := make(TokenDocument, rows)
	for i := range rows {
		sentence := make([]int64, 0, cols)
		for j := range cols {
			v, err := storageInt(t.Source, t.StorageOffset+i*t.Stride[0]+j*t.Stride[1])
			if err != nil {
				return nil, err
			}
			sentence = append(sentence, v)
		}
		for len(sentence) > 0 && sentence[len(sentence)-1] == 0 {
			sentence = sentence[:len(sentence)-1]
		}
		doc[i] = sentence
	}
	return doc, nil
}

func featuresFromPickle(value any) (Document, error) {
	if t, ok := value.(*pytorch.Tensor); ok {
		if len(t.Size) != 2 {
			return nil, fmt.Errorf("%w: feature tensor has shape %v", ErrKindMismatch, t.Size)
		}
		rows, width := t.Size[0], t.Size[1]
		doc := FeatureDocument{Width: width, Rows: make([][]float32, rows)}
		for i := range rows {
			row := make([]float32, width)
			for j := range width {
				v, err := storageFloat(t.Source, t.StorageOffset+i*t.Stride[0]+j*t.Stride[1])
				if err != nil {
					return nil, err
				}
				row[j] = float32(v)
			}
			doc.Rows[i] = row
		}
		return doc, nil
	}

	items, ok := pickleItems(value)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a feature tensor", ErrKindMismatch, value)
	}
	doc := FeatureDocument{Rows: make([][]float32, len(items))}
	for i, item := range items {
		t, ok := item.(*pytorch.Tensor)
		if !ok || len(t.Size) != 1 {
			return nil, fmt.Errorf("%w: sentence %d is %T", ErrKindMismatch, i, item)
		}
		row := make([]float32, t.Size[0])
		for j := range row {
			v, err := storageFloat(t.Source, t.StorageOffset+j*t.Stride[0])
			if err != nil {
				return nil, err
			}
			row[j] = float32(v)
		}
		doc.Rows[i] = row
	}
	if len(doc.Rows) > 0 {
		doc.Width = len(doc.Rows[0])
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func pickleItems(value any) ([]any, bool) {
	switch v := value.(type) {
	case *types.List:
		return []any(*v), true
	case *types.Tuple:
		return []any(*v), true
	case []any:
		return v, true
	default:
		return nil, false
	}
}

func pickleInt(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case *big.Int:
		if !v.IsInt64() {
			return 0, fmt.Errorf("token id %s overflows int64", v)
		}
		return v.Int64(), nil
	default:
		return 0, fmt.Errorf("%w: token is %T", ErrKindMismatch, value)
	}
}

func storageInt(source pytorch.StorageInterface, i int) (int64, error) {
	switch s := source.(type) {
	case *pytorch.LongStorage:
		if i < len(s.Data) {
			return s.Data[i], nil
		}
	case *pytorch.IntStorage:
		if i < len(s.Data) {
			return int64(s.Data[i]), nil
		}
	case *pytorch.ShortStorage:
		if i < len(s.Data) {
			return int64(s.Data[i]), nil
		}
	case *pytorch.CharStorage:
		if i < len(s.Data) {
			return int64(s.Data[i]), nil
		}
	case *pytorch.ByteStorage:
		if i < len(s.Data) {
			return int64(s.Data[i]), nil
		}
	default:
		return 0, fmt.Errorf("%w: %T is not an integer storage", ErrKindMismatch, source)
	}
	return 0, fmt.Errorf("storage offset %d out of range", i)
}

func storageFloat(source pytorch.StorageInterface, i int) (float64, error) {
	switch s := source.(type) {
	case *pytorch.FloatStorage:
		if i < len(s.Data) {
			return float64(s.Data[i]), nil
		}
	case *pytorch.DoubleStorage:
		if i < len(s.Data) {
			return s.Data[i], nil
		}
	case *pytorch.HalfStorage:
		if i < len(s.Data) {
			return float64(s.Data[i]), nil
		}
	default:
		if v, err := storageInt(source, i); err == nil {
			return float64(v), nil
		}
		return 0, fmt.Errorf("%w: %T is not a numeric storage", ErrKindMismatch, source)
	}
	return 0, fmt.Errorf("storage offset %d out of range", i)
}
