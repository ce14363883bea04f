package features

import (
	"encoding/json"
	"fmt"
)

// DecodeJSON decodes a nested array, one inner array per sentence.
func DecodeJSON(data []byte, kind Kind) (Document, error) {
	switch kind {
	case KindTokens:
		var doc TokenDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode token document: %w", err)
		}
		return doc, nil
	case KindFeatures:
		var rows [][]float32
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("failed to decode feature document: %w", err)
		}
		doc := FeatureDocument{Rows: rows}
		if len(rows) > 0 {
			doc.Width = len(rows[0])
		}
		if err := doc.Validate(); err != nil {
			return nil, err
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
}
