package storage

import (
	"context"
	"fmt"

	"github.com/ikolcov/masterblog/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPersister keeps one document per post, keyed by a unique id index.
type MongoPersister struct {
	client *mongo.Client
	posts  *mongo.Collection
}

func (p *MongoPersister) Load(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cur, err := p.posts.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo find posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := make([]models.Post, 0)
	for cur.Next(ctx) {
		var elem models.Post
		if err := cur.Decode(&elem); err != nil {
			return nil, fmt.Errorf("mongo decode post: %w", err)
		}
		posts = append(posts, elem)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}
	return posts, nil
}

// Save upserts every post by id and only then removes documents whose id is
// gone, so a failed write never leaves the collection emptier than before.
func (p *MongoPersister) Save(ctx context.Context, posts []models.Post) error {
	ids := make([]models.PostID, 0, len(posts))
	for _, post := range posts {
		filter := bson.D{{Key: "id", Value: post.Id}}
		if _, err := p.posts.ReplaceOne(ctx, filter, post, options.Replace().SetUpsert(true)); err != nil {
			return fmt.Errorf("mongo upsert post %d: %w", post.Id, err)
		}
		ids = append(ids, post.Id)
	}

	stale := bson.D{{Key: "id", Value: bson.D{{Key: "$nin", Value: ids}}}}
	if _, err := p.posts.DeleteMany(ctx, stale); err != nil {
		return fmt.Errorf("mongo delete stale posts: %w", err)
	}
	return nil
}

func (p *MongoPersister) Close(ctx context.Context) error {
	return p.client.Disconnect(ctx)
}

func NewMongoPersister(ctx context.Context, mongoUrl string, mongoDbName string) (*MongoPersister, error) {
	clientOptions := options.Client().ApplyURI(mongoUrl)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	posts := client.Database(mongoDbName).Collection("posts")
	if _, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo create index: %w", err)
	}

	return &MongoPersister{
		client: client,
		posts:  posts,
	}, nil
}
