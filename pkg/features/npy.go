package features

import (
	"fmt"
	"io"

	"github.com/sbinet/npyio"
)

// DecodeNumpy reads a 2-D numeric array of shape (sentences, width).
// Pickled object arrays, which ragged token documents are saved as, cannot
// be read and yield ErrUnsupported.
func DecodeNumpy(r io.Reader, kind Kind) (Document, error) {
	if kind != KindFeatures {
		return nil, fmt.Errorf("%w: npy files only hold feature documents", ErrKindMismatch)
	}

	npy, err := npyio.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read npy header: %w", err)
	}

	shape := npy.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, fmt.Errorf("%w: npy array has shape %v, want 2 dimensions", ErrUnsupported, shape)
	}
	rows, width := shape[0], shape[1]

	var values []float32
	switch npy.Header.Descr.Type {
	case "<f4", "f4", "float32":
		if err := npy.Read(&values); err != nil {
			return nil, fmt.Errorf("failed to read npy data: %w", err)
		}
	case "<f8", "f8", "float64":
		var raw []float64
		if err := npy.Read(&raw); err != nil {
			return nil, fmt.Errorf("failed to read npy data: %w", err)
		}
		values = make([]float32, len(raw))
		for i, v := range raw {
			values[i] = float32(v)
		}
	case "<i8", "i8", "int64":
		var raw []int64
		if err := npy.Read(&raw); err != nil {
			return nil, fmt.Errorf("failed to read npy data: %w", err)
		}
		values = make([]float32, len(raw))
		for i, v := range raw {
			values[i] = float32(v)
		}
	default:
		return nil, fmt.Errorf("%w: npy dtype %q", ErrUnsupported, npy.Header.Descr.Type)
	}

	if len(values) != rows*width {
		return nil, fmt.Errorf("npy data holds %d values, want %d", len(values), rows*width)
	}

	doc := FeatureDocument{Width: width, Rows: make([][]float32, rows)}
	for i := range rows {
		row := make([]float32, width)
		for j := range width {
			if npy.Header.Descr.Fortran {
				row[j] = values[j*rows+i]
			} else {
				row[j] = values[i*width+j]
			}
		}
		doc.Rows[i] = row
	}
	return doc, nil
}
