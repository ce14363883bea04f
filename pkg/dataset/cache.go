package dataset

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"hash/fnv"
	"path/filepath"

	"github.com/grexie/summaries/pkg/features"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Cache keeps decoded documents in leveldb so repeated epochs skip the
// pickle and npy decoders. Values are gob encoded, which keeps NaN and Inf
// feature values intact.
type Cache struct {
	db *leveldb.DB
}

func OpenCache(path string) (*Cache, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

func NewCache(db *leveldb.DB) *Cache {
	return &Cache{db: db}
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// cachePrefix scopes keys to the store's files: the split directory is
// hashed in so a different data root or file extension never shares entries.
func cachePrefix(s *Store) []byte {
	h := fnv.New64a()
	h.Write([]byte(filepath.Clean(s.Root)))
	h.Write([]byte{0})
	h.Write([]byte(s.Ext))
	return fmt.Appendf([]byte{}, "%s-%s-%s-%016x-", s.Dataset, s.ModelType, s.Split, h.Sum64())
}

func cacheKey(s *Store, index int) []byte {
	return fmt.Appendf(cachePrefix(s), "%d", index)
}

type cachedDocument struct {
	Kind     features.Kind
	Tokens   features.TokenDocument
	Features *features.FeatureDocument
}

func (c *Cache) Get(s *Store, index int) (features.Document, bool) {
	data, err := c.db.Get(cacheKey(s, index), nil)
	if err != nil {
		return nil, false
	}

	var cached cachedDocument
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&cached); err != nil {
		return nil, false
	}
	if cached.Kind != s.Kind {
		return nil, false
	}
	switch cached.Kind {
	case features.KindTokens:
		if cached.Tokens == nil {
			cached.Tokens = features.TokenDocument{}
		}
		return cached.Tokens, true
	case features.KindFeatures:
		if cached.Features == nil {
			return nil, false
		}
		return *cached.Features, true
	default:
		return nil, false
	}
}

func (c *Cache) Put(s *Store, index int, doc features.Document) error {
	cached := cachedDocument{Kind: doc.Kind()}
	switch d := doc.(type) {
	case features.TokenDocument:
		cached.Tokens = d
	case features.FeatureDocument:
		cached.Features = &d
	default:
		return fmt.Errorf("cannot cache %T", doc)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cached); err != nil {
		return err
	}
	return c.db.Put(cacheKey(s, index), buf.Bytes(), nil)
}

// Count returns the number of cached documents for the store's dataset,
// model type and split.
func (c *Cache) Count(s *Store) int {
	iter := c.db.NewIterator(util.BytesPrefix(cachePrefix(s)), nil)
	defer iter.Release()

	count := 0
	for iter.Next() {
		count++
	}
	return count
}
