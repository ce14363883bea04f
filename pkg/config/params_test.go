package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParamsFromEnv(t *testing.T) {
	t.Setenv("SUMMARIES_MODEL_TYPE", "linear")
	t.Setenv("SUMMARIES_BATCH_SIZE", "5000")
	t.Setenv("SUMMARIES_MAX_SENT_LEN", "1024")
	t.Setenv("SUMMARIES_BASELINE_TYPES", "0, 2")
	t.Setenv("SUMMARIES_SEED", "42")
	t.Setenv("SUMMARIES_MINI", "true")

	p := NewParamsFromDefaults()
	require.NoError(t, p.Validate())

	assert.Equal(t, ModelTypeLinear, p.ModelType)
	assert.Equal(t, 1024, p.BatchSize)
	assert.Equal(t, 512, p.MaxSentenceLength)
	assert.Equal(t, []int{0, 2}, p.BaselineTypes)
	assert.Equal(t, uint64(42), p.Seed)
	assert.True(t, p.Mini)
	assert.Nil(t, p.TopicPtr())
}

func TestTopicPtr(t *testing.T) {
	t.Setenv("SUMMARIES_TOPIC", "3")
	p := NewParamsFromDefaults()
	require.NotNil(t, p.TopicPtr())
	assert.Equal(t, 3, *p.TopicPtr())
}

func TestValidate(t *testing.T) {
	p := NewParamsFromDefaults()
	p.ModelType = "lstm"
	assert.Error(t, p.Validate())

	p = NewParamsFromDefaults()
	p.Split = "dev"
	assert.Error(t, p.Validate())
}

func TestRandStreams(t *testing.T) {
	p := Params{Seed: 7}
	a, b := p.Rand(1), p.Rand(1)
	assert.Equal(t, a.Uint64(), b.Uint64())

	c := p.Rand(2)
	assert.NotEqual(t, p.Rand(1).Uint64(), c.Uint64())
}

func TestWrite(t *testing.T) {
	p := NewParamsFromDefaults()
	var buf bytes.Buffer
	p.Write(&buf, "Config")
	assert.Contains(t, buf.String(), "SUMMARIES_DATASET")
	assert.Contains(t, buf.String(), "SUMMARIES_BASELINE_TYPES")
}
