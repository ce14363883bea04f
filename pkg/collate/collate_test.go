package collate

import (
	"testing"

	"github.com/grexie/summaries/pkg/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

func at(t *testing.T, d *tensor.Dense, coords ...int) any {
	t.Helper()
	v, err := d.At(coords...)
	require.NoError(t, err)
	return v
}

func tokenExamples() []Example {
	return []Example{
		{Index: 4, Label: 1, Document: features.TokenDocument{
			{101, 11, 12, 102},
			{101, 13, 102},
		}},
		{Index: 9, Label: 0, Document: features.TokenDocument{
			{101, 21, 102},
			{101, 22, 23, 24, 25, 102},
			{101, 102},
		}},
	}
}

func TestTokenCollatorShapes(t *testing.T) {
	c := &TokenCollator{}
	b, err := c.Collate(tokenExamples())
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3, 6}, b.Inputs.Shape())
	assert.Equal(t, tensor.Shape{2, 3, 6}, b.Mask.Shape())
	assert.Equal(t, tensor.Shape{2, 1}, b.Labels.Shape())
	assert.Equal(t, tensor.Shape{2}, b.Lengths.Shape())
	assert.Equal(t, tensor.Int64, b.Inputs.Dtype())
	assert.Equal(t, []int{2, 3}, b.DocLengths)
	assert.Equal(t, []int{4, 9}, b.Indices)
	assert.Equal(t, 2, b.Size())

	assert.Equal(t, []int64{1, 0}, b.Labels.Data())
	assert.Equal(t, []int64{2, 3}, b.Lengths.Data())
}

func TestTokenCollatorMask(t *testing.T) {
	examples := tokenExamples()
	b, err := (&TokenCollator{}).Collate(examples)
	require.NoError(t, err)

	for i, example := range examples {
		doc := example.Document.(features.TokenDocument)
		for j := range 3 {
			for k := range 6 {
				present := j < len(doc) && k < len(doc[j])
				if present {
					assert.Equal(t, int64(1), at(t, b.Mask, i, j, k), "mask %d,%d,%d", i, j, k)
					assert.Equal(t, doc[j][k], at(t, b.Inputs, i, j, k))
				} else {
					assert.Equal(t, int64(0), at(t, b.Mask, i, j, k), "mask %d,%d,%d", i, j, k)
					assert.Equal(t, int64(0), at(t, b.Inputs, i, j, k))
				}
			}
		}
	}
}

func TestTokenCollatorTruncates(t *testing.T) {
	long := make([]int64, 600)
	for i := range long {
		long[i] = int64(i + 1)
	}
	examples := []Example{
		{Document: features.TokenDocument{long, {7, 8}}},
	}

	b, err := (&TokenCollator{}).Collate(examples)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2, 512}, b.Inputs.Shape())
	assert.Equal(t, int64(512), at(t, b.Inputs, 0, 0, 511))
	assert.Equal(t, int64(1), at(t, b.Mask, 0, 0, 511))
	assert.Equal(t, int64(0), at(t, b.Mask, 0, 1, 2))

	b, err = (&TokenCollator{MaxSentenceLength: 3}).Collate(examples)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2, 3}, b.Inputs.Shape())
	assert.Equal(t, int64(3), at(t, b.Inputs, 0, 0, 2))
	assert.Equal(t, int64(8), at(t, b.Inputs, 0, 1, 1))
}

func TestTokenCollatorErrors(t *testing.T) {
	c := &TokenCollator{}

	_, err := c.Collate(nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = c.Collate([]Example{{Document: features.TokenDocument{}}})
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = c.Collate([]Example{{Document: features.FeatureDocument{Width: 1, Rows: [][]float32{{1}}}}})
	assert.ErrorIs(t, err, ErrDocumentKind)
}

func TestStacked(t *testing.T) {
	b, err := (&TokenCollator{}).Collate(tokenExamples())
	require.NoError(t, err)

	inputs, mask, err := b.Stacked()
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{6, 6}, inputs.Shape())
	assert.Equal(t, tensor.Shape{6, 6}, mask.Shape())
	// second sentence of the second document is row 4
	assert.Equal(t, int64(25), at(t, inputs, 4, 4))
	assert.Equal(t, tensor.Shape{2, 3, 6}, b.Inputs.Shape())
}

func featureExamples() []Example {
	return []Example{
		{Index: 1, Label: 2, Document: features.FeatureDocument{Width: 2, Rows: [][]float32{
			{0.1, 0.2}, {0.3, 0.4}, {0.5, 0.6},
		}}},
		{Index: 2, Label: 0, Document: features.FeatureDocument{Width: 2, Rows: [][]float32{
			{1, 2},
		}}},
	}
}

func TestFeatureCollator(t *testing.T) {
	b, err := (&FeatureCollator{}).Collate(featureExamples())
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3, 2}, b.Inputs.Shape())
	assert.Equal(t, tensor.Shape{2, 3}, b.Mask.Shape())
	assert.Equal(t, tensor.Float32, b.Inputs.Dtype())
	assert.Equal(t, tensor.Bool, b.Mask.Dtype())
	assert.Equal(t, []int64{2, 0}, b.Labels.Data())
	assert.Equal(t, tensor.Shape{2, 1}, b.Labels.Shape())

	assert.Equal(t, float32(0.6), at(t, b.Inputs, 0, 2, 1))
	assert.Equal(t, float32(2), at(t, b.Inputs, 1, 0, 1))
	assert.Equal(t, float32(0), at(t, b.Inputs, 1, 1, 0))
	assert.Equal(t, float32(0), at(t, b.Inputs, 1, 2, 1))
}

func TestFeatureCollatorMaskMarksPadding(t *testing.T) {
	b, err := (&FeatureCollator{}).Collate(featureExamples())
	require.NoError(t, err)

	assert.Equal(t, []bool{
		false, false, false,
		false, true, true,
	}, b.Mask.Data())
}

func TestFeatureCollatorEmptyDocument(t *testing.T) {
	empty, err := features.DecodeJSON([]byte(`[]`), features.KindFeatures)
	require.NoError(t, err)

	b, err := (&FeatureCollator{}).Collate([]Example{
		{Index: 1, Label: 0, Document: empty},
		{Index: 2, Label: 1, Document: features.FeatureDocument{Width: 2, Rows: [][]float32{{1, 2}, {3, 4}}}},
	})
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 2, 2}, b.Inputs.Shape())
	assert.Equal(t, []bool{
		true, true,
		false, false,
	}, b.Mask.Data())
	assert.Equal(t, []int{0, 2}, b.DocLengths)
	assert.Equal(t, float32(4), at(t, b.Inputs, 1, 1, 1))
}

func TestFeatureCollatorErrors(t *testing.T) {
	c := &FeatureCollator{}

	_, err := c.Collate([]Example{})
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = c.Collate([]Example{
		{Document: features.FeatureDocument{Width: 2, Rows: [][]float32{{1, 2}}}},
		{Document: features.FeatureDocument{Width: 3, Rows: [][]float32{{1, 2, 3}}}},
	})
	assert.ErrorIs(t, err, ErrInconsistentWidth)

	_, err = c.Collate([]Example{
		{Document: features.FeatureDocument{Width: 2, Rows: [][]float32{{1, 2}, {1}}}},
	})
	assert.ErrorIs(t, err, ErrInconsistentWidth)

	_, err = c.Collate([]Example{{Document: features.TokenDocument{{1}}}})
	assert.ErrorIs(t, err, ErrDocumentKind)
}

func TestForModelType(t *testing.T) {
	c, err := ForModelType("bert", 128)
	require.NoError(t, err)
	assert.Equal(t, &TokenCollator{MaxSentenceLength: 128}, c)

	c, err = ForModelType("linear", 128)
	require.NoError(t, err)
	assert.IsType(t, &FeatureCollator{}, c)

	_, err = ForModelType("lstm", 128)
	assert.Error(t, err)

	kind, err := KindForModelType("linear")
	require.NoError(t, err)
	assert.Equal(t, features.KindFeatures, kind)
}

func TestFeed(t *testing.T) {
	b, err := (&FeatureCollator{}).Collate(featureExamples())
	require.NoError(t, err)

	g := gorgonia.NewGraph()
	x := InputNode(g, b, "x")
	y := LabelNode(g, b, "y")
	require.NoError(t, Feed(b, x, y))

	require.NotNil(t, x.Value())
	assert.Equal(t, b.Inputs.Shape(), x.Value().Shape())
	assert.Equal(t, b.Labels.Shape(), y.Value().Shape())
}
