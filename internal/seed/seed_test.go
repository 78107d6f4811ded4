package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/seed"
)

func TestSeed(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("clears the collection then inserts the fixture set", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(), // deleteMany
			mtest.CreateSuccessResponse(), // insertMany
		)

		n, err := seed.Seed(context.Background(), mt.Coll)
		require.NoError(mt, err)
		require.Equal(mt, len(seed.Books), n)

		del := mt.GetStartedEvent()
		require.NotNil(mt, del)
		require.Equal(mt, "delete", del.CommandName)

		ins := mt.GetStartedEvent()
		require.NotNil(mt, ins)
		require.Equal(mt, "insert", ins.CommandName)
	})
}

func TestFixtureShape(t *testing.T) {
	require.Len(t, seed.Books, 12)

	titles := make(map[string]bool, len(seed.Books))
	for _, b := range seed.Books {
		require.NotEmpty(t, b.Title)
		require.NotEmpty(t, b.Author)
		require.NotEmpty(t, b.Genre)
		require.Greater(t, b.Price, 0.0)
		require.False(t, titles[b.Title], "duplicate title %q", b.Title)
		titles[b.Title] = true
	}
}
