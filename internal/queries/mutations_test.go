package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/queries"
)

func TestUpdatePrice(t *testing.T) {
	mt := newMockMT(t)

	mt.Run("existing title reports matched=1 modified=1", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		outcome, err := queries.UpdatePrice(context.Background(), mt.Coll, "1984", 12.49)
		require.NoError(mt, err)
		require.EqualValues(mt, 1, outcome.Matched)
		require.EqualValues(mt, 1, outcome.Modified)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		require.Equal(mt, "update", started.CommandName)
	})

	mt.Run("absent title is a zero-match no-op, not an error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		outcome, err := queries.UpdatePrice(context.Background(), mt.Coll, "No Such Book", 5)
		require.NoError(mt, err)
		require.EqualValues(mt, 0, outcome.Matched)
		require.EqualValues(mt, 0, outcome.Modified)
	})

	mt.Run("server error propagates", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		_, err := queries.UpdatePrice(context.Background(), mt.Coll, "1984", 12.49)
		require.Error(mt, err)
		require.Contains(mt, err.Error(), "update price")
	})
}

func TestDeleteByTitle(t *testing.T) {
	mt := newMockMT(t)

	mt.Run("existing title deletes exactly one document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "acknowledged", Value: true},
			bson.E{Key: "n", Value: 1},
		))

		deleted, err := queries.DeleteByTitle(context.Background(), mt.Coll, "Moby Dick")
		require.NoError(mt, err)
		require.EqualValues(mt, 1, deleted)
	})

	mt.Run("repeating the delete reports zero, idempotent absence", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "acknowledged", Value: true},
			bson.E{Key: "n", Value: 0},
		))

		deleted, err := queries.DeleteByTitle(context.Background(), mt.Coll, "Moby Dick")
		require.NoError(mt, err)
		require.EqualValues(mt, 0, deleted)
	})
}
