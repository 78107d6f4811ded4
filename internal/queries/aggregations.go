package queries

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/models"
)

// AvgPriceByGenre groups all books by genre, computing the mean price and
// document count per group, sorted by mean price descending.
func AvgPriceByGenre(ctx context.Context, coll *mongo.Collection) ([]models.GenreStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$genre"},
			{Key: "avgPrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "avgPrice", Value: -1}}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate avg price by genre: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []models.GenreStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("decode genre stats: %w", err)
	}
	return stats, nil
}

// AuthorWithMostBooks returns the single author owning the most books. When
// several authors share the maximum count the winner is whichever group the
// server emits first; no secondary sort key is applied. An empty collection
// yields mongo.ErrNoDocuments.
func AuthorWithMostBooks(ctx context.Context, coll *mongo.Collection) (models.AuthorCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$author"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: 1}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.AuthorCount{}, fmt.Errorf("aggregate author with most books: %w", err)
	}
	defer cursor.Close(ctx)

	var top []models.AuthorCount
	if err := cursor.All(ctx, &top); err != nil {
		return models.AuthorCount{}, fmt.Errorf("decode author counts: %w", err)
	}
	if len(top) == 0 {
		return models.AuthorCount{}, mongo.ErrNoDocuments
	}
	return top[0], nil
}

// GroupByDecade buckets books by publication decade (floor(published_year/10)
// times 10, computed server-side), counting per bucket, sorted by decade
// ascending.
func GroupByDecade(ctx context.Context, coll *mongo.Collection) ([]models.DecadeCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$multiply", Value: bson.A{
				bson.D{{Key: "$floor", Value: bson.D{{Key: "$divide", Value: bson.A{"$published_year", 10}}}}},
				10,
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate by decade: %w", err)
	}
	defer cursor.Close(ctx)

	var decades []models.DecadeCount
	if err := cursor.All(ctx, &decades); err != nil {
		return nil, fmt.Errorf("decode decade counts: %w", err)
	}
	return decades, nil
}
