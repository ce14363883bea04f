package features

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var Extensions = []string{".pt", ".npy", ".json"}

// Load reads the document at path. The extension selects the decoder and
// kind selects the document type the caller expects. Errors opening the file
// are returned unchanged.
func Load(path string, kind Kind) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pt":
		return LoadTorch(path, kind)
	case ".npy":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return DecodeNumpy(f, kind)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return DecodeJSON(data, kind)
	default:
		return nil, fmt.Errorf("%w: extension %q", ErrUnsupported, ext)
	}
}

// HasExtension reports whether name ends with one of the decodable
// extensions.
func HasExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
