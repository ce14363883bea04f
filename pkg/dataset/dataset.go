package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/grexie/summaries/pkg/collate"
	"github.com/grexie/summaries/pkg/minidoc"
)

// Dataset maps a document index to a collatable example.
type Dataset interface {
	Len() int
	Get(index int) (collate.Example, error)
}

// RegularDataset serves documents exactly as stored.
type RegularDataset struct {
	store  *Store
	labels map[int]int
}

func NewRegularDataset(store *Store, indices, labels []int) (*RegularDataset, error) {
	m, err := labelMap(indices, labels)
	if err != nil {
		return nil, err
	}
	return &RegularDataset{store: store, labels: m}, nil
}

func (d *RegularDataset) Len() int {
	return len(d.labels)
}

func (d *RegularDataset) Get(index int) (collate.Example, error) {
	label, ok := d.labels[index]
	if !ok {
		return collate.Example{}, fmt.Errorf("index %d is not part of the dataset", index)
	}
	doc, err := d.store.Load(index)
	if err != nil {
		return collate.Example{}, err
	}
	return collate.Example{Index: index, Document: doc, Label: label}, nil
}

// DefaultMinidocSize is the number of sentences a mini-document keeps.
const DefaultMinidocSize = 10

// MiniDataset serves documents reduced to Size sentences, oracle included.
type MiniDataset struct {
	RegularDataset
	Size int
	rng  *rand.Rand
}

func NewMiniDataset(store *Store, indices, labels []int, size int, rng *rand.Rand) (*MiniDataset, error) {
	regular, err := NewRegularDataset(store, indices, labels)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultMinidocSize
	}
	return &MiniDataset{RegularDataset: *regular, Size: size, rng: rng}, nil
}

func (d *MiniDataset) Get(index int) (collate.Example, error) {
	example, err := d.RegularDataset.Get(index)
	if err != nil {
		return example, err
	}
	doc, label, err := minidoc.Reduce(d.rng, example.Document, d.Size, example.Label)
	if err != nil {
		return collate.Example{}, fmt.Errorf("document %d: %w", index, err)
	}
	example.Document, example.Label = doc, label
	return example, nil
}

func labelMap(indices, labels []int) (map[int]int, error) {
	if len(indices) != len(labels) {
		return nil, fmt.Errorf("%d indices but %d labels", len(indices), len(labels))
	}
	m := make(map[int]int, len(indices))
	for i, index := range indices {
		m[index] = labels[i]
	}
	return m, nil
}
