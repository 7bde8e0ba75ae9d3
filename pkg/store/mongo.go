package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/friendgraph/pkg/cache"
	ferrors "github.com/matzehuels/friendgraph/pkg/errors"
	"github.com/matzehuels/friendgraph/pkg/network"
)

// MongoConfig configures [MongoStore].
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// userDoc is the stored form of one user.
type userDoc struct {
	Name    string   `bson:"_id"`
	Friends []string `bson:"friends"`
}

// MongoStore keeps one document per user in a collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings the primary, retrying
// transient failures.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, unavailable(err, "connect to mongodb")
	}

	err = cache.RetryWithBackoff(ctx, func() error {
		return cache.Retryable(client.Ping(ctx, readpref.Primary()))
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, unavailable(err, "ping mongodb")
	}

	return NewMongoStoreFromClient(client, cfg.Database, cfg.Collection), nil
}

// NewMongoStoreFromClient wraps an existing client. The store takes
// ownership of client and disconnects it in Close.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	def := DefaultConfig().Mongo
	if database == "" {
		database = def.Database
	}
	if collection == "" {
		collection = def.Collection
	}
	return &MongoStore{client: client, coll: client.Database(database).Collection(collection)}
}

// Load reads every user document, retrying transient failures. An empty
// collection loads as an empty graph.
func (s *MongoStore) Load(ctx context.Context) (*network.Graph, error) {
	var docs []userDoc
	err := cache.RetryWithBackoff(ctx, func() error {
		cur, err := s.coll.Find(ctx, bson.D{})
		if err != nil {
			return cache.Retryable(err)
		}
		docs = nil
		return cache.Retryable(cur.All(ctx, &docs))
	})
	if err != nil {
		return nil, unavailable(err, "read %s", s.coll.Name())
	}

	g := network.New()
	for _, d := range docs {
		if err := ferrors.ValidateUserName(d.Name); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeInvalidSnapshot, err, "document %q", d.Name)
		}
		g.SetFriends(d.Name, d.Friends)
	}
	return g, nil
}

// Save deletes the documents of users no longer present and upserts every
// other user, in one ordered bulk write.
func (s *MongoStore) Save(ctx context.Context, g *network.Graph) error {
	users := g.Users()
	models := make([]mongo.WriteModel, 0, len(users)+1)
	models = append(models, mongo.NewDeleteManyModel().
		SetFilter(bson.M{"_id": bson.M{"$nin": users}}))
	for _, u := range users {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": u}).
			SetReplacement(userDoc{Name: u, Friends: g.Friends(u)}).
			SetUpsert(true))
	}

	if _, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return unavailable(err, "write %s", s.coll.Name())
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
