package features

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/nlpodyssey/gopickle/pytorch"
	"github.com/nlpodyssey/gopickle/types"
	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLoadJSONTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "3.json")
	require.NoError(t, os.WriteFile(path, []byte(`[[101, 7, 102], [101, 102], []]`), 0644))

	doc, err := Load(path, KindTokens)
	require.NoError(t, err)

	tokens, ok := doc.(TokenDocument)
	require.True(t, ok)
	assert.Equal(t, 3, tokens.Len())
	assert.Equal(t, 3, tokens.MaxSentenceLength())
	assert.Equal(t, []int64{101, 102}, tokens[1])
	assert.Empty(t, tokens[2])
}

func TestLoadJSONFeaturesInconsistentWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "4.json")
	require.NoError(t, os.WriteFile(path, []byte(`[[0.1, 0.2], [0.3]]`), 0644))

	_, err := Load(path, KindFeatures)
	assert.ErrorIs(t, err, ErrInconsistentWidth)
}

func TestLoadNumpy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "0.npy")
	f, err := os.Create(path)
	require.NoError(t, err)
	m := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, npyio.Write(f, m))
	require.NoError(t, f.Close())

	doc, err := Load(path, KindFeatures)
	require.NoError(t, err)

	features, ok := doc.(FeatureDocument)
	require.True(t, ok)
	assert.Equal(t, 2, features.Width)
	assert.Equal(t, 3, features.Len())
	assert.Equal(t, []float32{3, 4}, features.Rows[1])
}

func TestLoadNumpyRejectsTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "0.npy")
	require.NoError(t, os.WriteFile(path, []byte{}, 0644))

	_, err := Load(path, KindTokens)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.pt"), KindTokens)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = Load(filepath.Join(t.TempDir(), "missing.npy"), KindFeatures)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadUnknownExtension(t *testing.T) {
	_, err := Load("doc.bin", KindTokens)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSelect(t *testing.T) {
	doc := TokenDocument{{1}, {2, 2}, {3, 3, 3}}
	out, err := doc.Select([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, TokenDocument{{3, 3, 3}, {1}}, out)

	_, err = doc.Select([]int{3})
	assert.Error(t, err)

	fdoc := FeatureDocument{Width: 1, Rows: [][]float32{{1}, {2}}}
	fout, err := fdoc.Select([]int{1})
	require.NoError(t, err)
	assert.Equal(t, FeatureDocument{Width: 1, Rows: [][]float32{{2}}}, fout)
}

func TestFeaturesFromTensor(t *testing.T) {
	tensor := &pytorch.Tensor{
		Source: &pytorch.FloatStorage{Data: []float32{1, 2, 3, 4, 5, 6}},
		Size:   []int{2, 3},
		Stride: []int{3, 1},
	}
	doc, err := fromPickle(tensor, KindFeatures)
	require.NoError(t, err)
	assert.Equal(t, FeatureDocument{Width: 3, Rows: [][]float32{{1, 2, 3}, {4, 5, 6}}}, doc)

	// transposed view of the same storage
	tensor.Size, tensor.Stride = []int{3, 2}, []int{1, 3}
	doc, err = fromPickle(tensor, KindFeatures)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 5}, doc.(FeatureDocument).Rows[1])
}

func TestTokensFromPickle(t *testing.T) {
	first := types.List{101, 5, 102}
	second := &pytorch.Tensor{
		Source:        &pytorch.LongStorage{Data: []int64{0, 101, 9, 102}},
		StorageOffset: 1,
		Size:          []int{3},
		Stride:        []int{1},
	}
	list := types.List{&first, second}

	doc, err := fromPickle(&list, KindTokens)
	require.NoError(t, err)
	assert.Equal(t, TokenDocument{{101, 5, 102}, {101, 9, 102}}, doc)

	_, err = fromPickle(&list, KindFeatures)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestTokensFromPaddedTensor(t *testing.T) {
	tensor := &pytorch.Tensor{
		Source: &pytorch.LongStorage{Data: []int64{101, 7, 102, 101, 102, 0}},
		Size:   []int{2, 3},
		Stride: []int{3, 1},
	}
	doc, err := fromPickle(tensor, KindTokens)
	require.NoError(t, err)
	assert.Equal(t, TokenDocument{{101, 7, 102}, {101, 102}}, doc)
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("12.pt"))
	assert.True(t, HasExtension("12.NPY"))
	assert.False(t, HasExtension("12.txt"))
}
