package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	errs "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/graph"
)

const (
	DefaultMongoDatabase   = "spiderweb"
	DefaultMongoCollection = "graphs"

	connectTimeout = 10 * time.Second
)

// MongoConfig selects the MongoDB deployment and collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// graphDoc is the stored shape: {_id: name, graph: {...}, updated_at}.
type graphDoc struct {
	Name      string      `bson:"_id"`
	Graph     graph.Graph `bson:"graph"`
	UpdatedAt time.Time   `bson:"updated_at"`
}

// MongoStore keeps one document per graph.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to cfg.URI and pings the primary.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "connect mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context, name string) (graph.Graph, error) {
	if err := errs.ValidateName(name); err != nil {
		return graph.Graph{}, err
	}
	var doc graphDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return graph.Graph{}, errs.New(errs.ErrCodeNotFound, "graph %q not found", name)
	}
	if err != nil {
		return graph.Graph{}, errs.Wrap(errs.ErrCodeStorage, err, "load %s", name)
	}
	if doc.Graph.Nodes == nil {
		doc.Graph.Nodes = []graph.Node{}
	}
	if doc.Graph.Links == nil {
		doc.Graph.Links = []graph.Link{}
	}
	return doc.Graph, nil
}

func (s *MongoStore) Save(ctx context.Context, name string, g graph.Graph) error {
	if err := errs.ValidateName(name); err != nil {
		return err
	}
	doc := graphDoc{Name: name, Graph: g, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "save %s", name)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errs.ValidateName(name); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "delete %s", name)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "list graphs")
	}
	var docs []struct {
		Name string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "list graphs")
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
