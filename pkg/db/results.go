package db

import (
	"context"
	"strconv"
	"time"

	"github.com/grexie/summaries/pkg/baseline"
	"github.com/grexie/summaries/pkg/rouge"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const EvaluationsCollection = "evaluations"

type MetricSummary struct {
	Mean   float64 `bson:"mean"`
	StdDev float64 `bson:"stddev"`
}

// Evaluation is one stored baseline run. Seed is kept in decimal so the
// full uint64 range survives bson.
type Evaluation struct {
	ID        primitive.ObjectID       `bson:"_id,omitempty"`
	Dataset   string                   `bson:"dataset"`
	Keywords  string                   `bson:"keywords"`
	Types     []int                    `bson:"types"`
	Seed      string                   `bson:"seed"`
	Documents int                      `bson:"documents"`
	Trials    []baseline.Trial         `bson:"trials"`
	Metrics   map[string]MetricSummary `bson:"metrics"`
	Created   time.Time                `bson:"created"`
}

// NewEvaluation summarises result for storage.
func NewEvaluation(result *baseline.Result, seed uint64, now time.Time) Evaluation {
	metrics := make(map[string]MetricSummary, len(rouge.Metrics))
	for _, metric := range rouge.Metrics {
		metrics[metric] = MetricSummary{Mean: result.Mean(metric), StdDev: result.StdDev(metric)}
	}
	return Evaluation{
		Dataset:   result.Dataset,
		Keywords:  result.Keywords,
		Types:     append([]int{}, result.Types...),
		Seed:      strconv.FormatUint(seed, 10),
		Documents: len(result.Indices),
		Trials:    append([]baseline.Trial{}, result.Trials...),
		Metrics:   metrics,
		Created:   now.UTC(),
	}
}

// SaveEvaluation stores e and returns its id.
func SaveEvaluation(ctx context.Context, db *mongo.Database, e Evaluation) (primitive.ObjectID, error) {
	if err := EnsureIndex(ctx, db, EvaluationsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "dataset", Value: 1}, {Key: "created", Value: -1}},
		Options: options.Index().SetName("dataset_created"),
	}); err != nil {
		return primitive.NilObjectID, err
	}

	id, err := WithTransaction(ctx, db, func(ctx context.Context) (any, error) {
		res, err := db.Collection(EvaluationsCollection).InsertOne(ctx, e)
		if err != nil {
			return nil, err
		}
		return res.InsertedID, nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := id.(primitive.ObjectID)
	return oid, nil
}

// LatestEvaluations returns up to limit evaluations of dataset, newest first.
func LatestEvaluations(ctx context.Context, db *mongo.Database, dataset string, limit int64) ([]Evaluation, error) {
	cur, err := db.Collection(EvaluationsCollection).Find(ctx,
		bson.M{"dataset": dataset},
		options.Find().SetSort(bson.D{{Key: "created", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	evaluations := []Evaluation{}
	if err := cur.All(ctx, &evaluations); err != nil {
		return nil, err
	}
	return evaluations, nil
}
