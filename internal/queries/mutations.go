package queries

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UpdateOutcome reports how many documents an update matched and modified.
// Zero matches is a normal outcome, not an error.
type UpdateOutcome struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// UpdatePrice sets the price of at most one book located by exact title match.
func UpdatePrice(ctx context.Context, coll *mongo.Collection, title string, newPrice float64) (UpdateOutcome, error) {
	result, err := coll.UpdateOne(
		ctx,
		bson.M{"title": title},
		bson.M{"$set": bson.M{"price": newPrice}},
	)
	if err != nil {
		return UpdateOutcome{}, fmt.Errorf("update price of %q: %w", title, err)
	}
	return UpdateOutcome{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

// DeleteByTitle removes at most one book located by exact title match and
// returns the deleted count (0 if the title is absent).
func DeleteByTitle(ctx context.Context, coll *mongo.Collection, title string) (int64, error) {
	result, err := coll.DeleteOne(ctx, bson.M{"title": title})
	if err != nil {
		return 0, fmt.Errorf("delete %q: %w", title, err)
	}
	return result.DeletedCount, nil
}
