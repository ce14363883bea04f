package features

import "errors"

var (
	ErrUnsupported       = errors.New("unsupported feature file")
	ErrInconsistentWidth = errors.New("inconsistent feature width")
	ErrKindMismatch      = errors.New("feature file does not hold the requested document kind")
)
