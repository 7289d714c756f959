package storage

import (
	"context"
	"testing"

	"github.com/ikolcov/masterblog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockMongoPersister(mt *mtest.T) *MongoPersister {
	return &MongoPersister{client: mt.Client, posts: mt.Coll}
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func postDoc(id int, title string) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "title", Value: title},
		{Key: "content", Value: "c"},
		{Key: "author", Value: "a"},
		{Key: "date_created", Value: "2024-01-01T00:00:00Z"},
	}
}

func commandNames(mt *mtest.T) []string {
	names := make([]string, 0)
	for _, started := range mt.GetAllStartedEvents() {
		names = append(names, started.CommandName)
	}
	return names
}

func TestMongoPersister_Load(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("decodes posts sorted by id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			postDoc(1, "A"),
			postDoc(3, "C"),
		))

		posts, err := newMockMongoPersister(mt).Load(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []models.Post{
			{Id: 1, Title: "A", Content: "c", Author: "a", DateCreated: "2024-01-01T00:00:00Z"},
			{Id: 3, Title: "C", Content: "c", Author: "a", DateCreated: "2024-01-01T00:00:00Z"},
		}, posts)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		assert.Equal(mt, int32(1), started.Command.Lookup("sort", "id").Int32())
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		posts, err := newMockMongoPersister(mt).Load(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, posts)
		assert.Empty(mt, posts)
	})

	mt.Run("undecodable document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "id", Value: "not-a-number"}},
		))

		_, err := newMockMongoPersister(mt).Load(context.Background())
		assert.ErrorContains(mt, err, "mongo decode post")
	})

	mt.Run("find fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))

		_, err := newMockMongoPersister(mt).Load(context.Background())
		assert.ErrorContains(mt, err, "mongo find posts")
	})
}

func TestMongoPersister_Save(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("upserts each post then drops stale ids", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
		)

		posts := []models.Post{{Id: 1, Title: "A"}, {Id: 2, Title: "B"}}
		require.NoError(mt, newMockMongoPersister(mt).Save(context.Background(), posts))

		assert.Equal(mt, []string{"update", "update", "delete"}, commandNames(mt))
		first := mt.GetAllStartedEvents()[0].Command
		assert.True(mt, first.Lookup("updates", "0", "upsert").Boolean())
		assert.Equal(mt, int32(1), first.Lookup("updates", "0", "q", "id").Int32())
	})

	mt.Run("failed upsert keeps existing documents", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key",
		}))

		err := newMockMongoPersister(mt).Save(context.Background(), []models.Post{{Id: 1}, {Id: 2}})
		assert.ErrorContains(mt, err, "mongo upsert post 1")

		assert.Equal(mt, []string{"update"}, commandNames(mt), "no delete may follow a failed upsert")
	})

	mt.Run("empty snapshot only deletes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		require.NoError(mt, newMockMongoPersister(mt).Save(context.Background(), nil))

		assert.Equal(mt, []string{"delete"}, commandNames(mt))
	})
}
