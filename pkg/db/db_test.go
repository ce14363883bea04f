package db

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"github.com/grexie/summaries/pkg/baseline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseName(t *testing.T) {
	name, err := DatabaseName("mongodb://localhost:27017/quakes")
	require.NoError(t, err)
	assert.Equal(t, "quakes", name)

	name, err = DatabaseName("mongodb://localhost:27017")
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabase, name)
}

func testResult() *baseline.Result {
	return &baseline.Result{
		Dataset:  "quakes",
		Keywords: "earthquake",
		Types:    []int{0, 1, 3},
		Indices:  []int{4, 8},
		Trials: []baseline.Trial{
			{Rouge1: 0.4, Rouge2: 0.2, RougeL: 0.3},
			{Rouge1: 0.6, Rouge2: 0.2, RougeL: 0.5},
		},
	}
}

func TestNewEvaluation(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	e := NewEvaluation(testResult(), 42, now)
	assert.Equal(t, "quakes", e.Dataset)
	assert.Equal(t, 2, e.Documents)
	assert.Equal(t, "42", e.Seed)

	e = NewEvaluation(testResult(), math.MaxUint64, now)
	assert.Equal(t, "18446744073709551615", e.Seed)
	assert.Equal(t, time.UTC, e.Created.Location())
	assert.InDelta(t, 0.5, e.Metrics["rouge-1"].Mean, 1e-9)
	assert.InDelta(t, 0.0, e.Metrics["rouge-2"].StdDev, 1e-9)
	assert.Len(t, e.Trials, 2)
}

func TestSaveEvaluation(t *testing.T) {
	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		t.Skip("MONGO_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := ConnectMongo(ctx, mongoURL)
	require.NoError(t, err)
	defer db.Client().Disconnect(ctx)

	e := NewEvaluation(testResult(), 7, time.Now())
	e.Dataset = "quakes-test-" + time.Now().Format("20060102150405.000000000")
	id, err := SaveEvaluation(ctx, db, e)
	require.NoError(t, err)
	assert.False(t, id.IsZero())

	latest, err := LatestEvaluations(ctx, db, e.Dataset, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, id, latest[0].ID)
	assert.Equal(t, []int{0, 1, 3}, latest[0].Types)

	_, err = db.Collection(EvaluationsCollection).DeleteOne(ctx, map[string]any{"_id": id})
	require.NoError(t, err)
}
