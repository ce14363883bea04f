package dataset

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/grexie/summaries/pkg/features"
)

// Store addresses per-document feature files laid out as
// <Root>/<Dataset>/<ModelType>/<Split>/<index><ext>.
type Store struct {
	Root      string
	Dataset   string
	ModelType string
	Split     string
	Kind      features.Kind

	// Ext is the file extension documents are read from; empty means the
	// extension is discovered from the directory listing.
	Ext string

	Cache *Cache
}

func (s *Store) Dir() string {
	return filepath.Join(s.Root, s.Dataset, s.ModelType, s.Split)
}

func (s *Store) Path(index int) string {
	return filepath.Join(s.Dir(), strconv.Itoa(index)+s.Ext)
}

// Indices lists the document indices present in the split directory in
// ascending order and records the feature file extension in use.
func (s *Store) Indices() ([]int, error) {
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		return nil, err
	}

	indices := []int{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !features.HasExtension(name) {
			continue
		}
		ext := filepath.Ext(name)
		if s.Ext != "" && !strings.EqualFold(ext, s.Ext) {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSuffix(name, ext))
		if err != nil {
			continue
		}
		if s.Ext == "" {
			s.Ext = ext
		}
		indices = append(indices, index)
	}
	slices.Sort(indices)
	return indices, nil
}

// Load reads the document at index, going through the cache when one is
// configured. Storage errors are returned unchanged; a failed cache write
// only logs.
func (s *Store) Load(index int) (features.Document, error) {
	if s.Ext == "" {
		if _, err := s.Indices(); err != nil {
			return nil, err
		}
		if s.Ext == "" {
			return nil, fmt.Errorf("no feature files in %s", s.Dir())
		}
	}

	if s.Cache != nil {
		if doc, ok := s.Cache.Get(s, index); ok {
			return doc, nil
		}
	}

	doc, err := features.Load(s.Path(index), s.Kind)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Put(s, index, doc); err != nil {
			log.Printf("failed to cache %s: %v", s.Path(index), err)
		}
	}
	return doc, nil
}
