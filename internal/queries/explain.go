package queries

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ExplainStats carries the four execution metrics reported by the server's
// explain command at executionStats verbosity.
type ExplainStats struct {
	NReturned           int64 `json:"n_returned"`
	TotalKeysExamined   int64 `json:"total_keys_examined"`
	TotalDocsExamined   int64 `json:"total_docs_examined"`
	ExecutionTimeMillis int64 `json:"execution_time_millis"`
}

// IndexEffect compares the execution of one filter before and after the
// secondary indexes exist.
type IndexEffect struct {
	Before  ExplainStats `json:"before"`
	After   ExplainStats `json:"after"`
	Indexes []string     `json:"indexes"`
}

// EnsureIndexes creates the single-field index on title and the compound
// index on author ascending, published_year descending. Creation is
// idempotent; the returned names are the server-assigned index names.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "published_year", Value: -1}}},
	}

	names, err := coll.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return names, nil
}

// ExplainFind runs the explain command for a find with the given filter at
// executionStats verbosity and extracts the execution metrics.
func ExplainFind(ctx context.Context, coll *mongo.Collection, filter bson.M) (ExplainStats, error) {
	cmd := bson.D{
		{Key: "explain", Value: bson.D{
			{Key: "find", Value: coll.Name()},
			{Key: "filter", Value: filter},
		}},
		{Key: "verbosity", Value: "executionStats"},
	}

	raw, err := coll.Database().RunCommand(ctx, cmd).Raw()
	if err != nil {
		return ExplainStats{}, fmt.Errorf("explain find: %w", err)
	}
	return parseExecutionStats(raw)
}

// ExplainIndexEffect explains filter against the bare collection, creates the
// two secondary indexes, then explains the same filter again. The indexes
// remain on the collection afterwards.
func ExplainIndexEffect(ctx context.Context, coll *mongo.Collection, filter bson.M) (IndexEffect, error) {
	before, err := ExplainFind(ctx, coll, filter)
	if err != nil {
		return IndexEffect{}, err
	}

	names, err := EnsureIndexes(ctx, coll)
	if err != nil {
		return IndexEffect{}, err
	}

	after, err := ExplainFind(ctx, coll, filter)
	if err != nil {
		return IndexEffect{}, err
	}

	return IndexEffect{Before: before, After: after, Indexes: names}, nil
}

func parseExecutionStats(raw bson.Raw) (ExplainStats, error) {
	var stats ExplainStats

	fields := map[string]*int64{
		"nReturned":           &stats.NReturned,
		"totalKeysExamined":   &stats.TotalKeysExamined,
		"totalDocsExamined":   &stats.TotalDocsExamined,
		"executionTimeMillis": &stats.ExecutionTimeMillis,
	}
	for name, dst := range fields {
		val, err := raw.LookupErr("executionStats", name)
		if err != nil {
			return ExplainStats{}, fmt.Errorf("explain output missing executionStats.%s: %w", name, err)
		}
		n, ok := val.AsInt64OK()
		if !ok {
			return ExplainStats{}, fmt.Errorf("executionStats.%s is not numeric", name)
		}
		*dst = n
	}
	return stats, nil
}
