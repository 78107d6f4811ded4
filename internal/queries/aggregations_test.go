package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/queries"
)

func TestAvgPriceByGenre(t *testing.T) {
	mt := newMockMT(t)

	mt.Run("groups sorted by mean price descending", func(mt *mtest.T) {
		// Fixture: Fiction prices [10,20], Sci-Fi prices [30].
		mt.AddMockResponses(cursorBatches(
			bson.D{{Key: "_id", Value: "Sci-Fi"}, {Key: "avgPrice", Value: 30.0}, {Key: "count", Value: 1}},
			bson.D{{Key: "_id", Value: "Fiction"}, {Key: "avgPrice", Value: 15.0}, {Key: "count", Value: 2}},
		)...)

		stats, err := queries.AvgPriceByGenre(context.Background(), mt.Coll)
		require.NoError(mt, err)
		require.Len(mt, stats, 2)
		require.Equal(mt, "Sci-Fi", stats[0].Genre)
		require.Equal(mt, 30.0, stats[0].AvgPrice)
		require.Equal(mt, 1, stats[0].Count)
		require.Equal(mt, "Fiction", stats[1].Genre)
		require.Equal(mt, 15.0, stats[1].AvgPrice)
		require.Equal(mt, 2, stats[1].Count)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		require.Equal(mt, "aggregate", started.CommandName)
		pipeline := started.Command.Lookup("pipeline")
		require.Contains(mt, pipeline.String(), "$group")
		require.Contains(mt, pipeline.String(), "$avg")
	})
}

func TestAuthorWithMostBooks(t *testing.T) {
	mt := newMockMT(t)

	mt.Run("returns the single top group", func(mt *mtest.T) {
		mt.AddMockResponses(cursorBatches(
			bson.D{{Key: "_id", Value: "J.R.R. Tolkien"}, {Key: "count", Value: 2}},
		)...)

		top, err := queries.AuthorWithMostBooks(context.Background(), mt.Coll)
		require.NoError(mt, err)
		require.Equal(mt, "J.R.R. Tolkien", top.Author)
		require.Equal(mt, 2, top.Count)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		require.Contains(mt, started.Command.Lookup("pipeline").String(), "$limit")
	})

	mt.Run("empty collection yields ErrNoDocuments", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, booksNS, mtest.FirstBatch))

		_, err := queries.AuthorWithMostBooks(context.Background(), mt.Coll)
		require.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}

func TestGroupByDecade(t *testing.T) {
	mt := newMockMT(t)

	mt.Run("buckets land on decade boundaries sorted ascending", func(mt *mtest.T) {
		// 1987 belongs to 1980, 1990 to 1990.
		mt.AddMockResponses(cursorBatches(
			bson.D{{Key: "_id", Value: 1980}, {Key: "count", Value: 1}},
			bson.D{{Key: "_id", Value: 1990}, {Key: "count", Value: 1}},
		)...)

		decades, err := queries.GroupByDecade(context.Background(), mt.Coll)
		require.NoError(mt, err)
		require.Len(mt, decades, 2)
		require.Equal(mt, 1980, decades[0].Decade)
		require.Equal(mt, 1990, decades[1].Decade)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		pipeline := started.Command.Lookup("pipeline").String()
		require.Contains(mt, pipeline, "$floor")
		require.Contains(mt, pipeline, "$multiply")
	})
}
