package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crossred/crossred/pkg/retry"
)

// MongoStore persists runs to a MongoDB collection, for the HTTP API running
// with multiple instances sharing run history.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to uri and targets database.runs. The initial ping
// is retried with exponential backoff, since a freshly-started Mongo
// container may not be accepting connections yet.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := retry.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return retry.Retryable(err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("runs"),
	}, nil
}

type mongoRun struct {
	ID               string    `bson:"_id"`
	NumNodes         int       `bson:"num_nodes"`
	NumEdges         int       `bson:"num_edges"`
	InitialCrossings int       `bson:"initial_crossings"`
	FinalCrossings   int       `bson:"final_crossings"`
	Sweeps           int       `bson:"sweeps"`
	DurationNanos    int64     `bson:"duration_nanos"`
	Quality          string    `bson:"quality"`
	CreatedAt        time.Time `bson:"created_at"`
}

func toMongoRun(r *Run) mongoRun {
	return mongoRun{
		ID:               r.ID,
		NumNodes:         r.NumNodes,
		NumEdges:         r.NumEdges,
		InitialCrossings: r.InitialCrossings,
		FinalCrossings:   r.FinalCrossings,
		Sweeps:           r.Sweeps,
		DurationNanos:    int64(r.Duration),
		Quality:          r.Quality,
		CreatedAt:        r.CreatedAt,
	}
}

func fromMongoRun(m mongoRun) *Run {
	return &Run{
		ID:               m.ID,
		NumNodes:         m.NumNodes,
		NumEdges:         m.NumEdges,
		InitialCrossings: m.InitialCrossings,
		FinalCrossings:   m.FinalCrossings,
		Sweeps:           m.Sweeps,
		Duration:         time.Duration(m.DurationNanos),
		Quality:          m.Quality,
		CreatedAt:        m.CreatedAt,
	}
}

// Get retrieves a run by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Run, error) {
	var m mongoRun
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromMongoRun(m), nil
}

// Set upserts a run.
func (s *MongoStore) Set(ctx context.Context, run *Run) error {
	m := toMongoRun(run)
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": run.ID}, m, opts)
	return err
}

// Delete removes a run.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Cleanup removes runs older than maxAge.
func (s *MongoStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	_, err := s.collection.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	return err
}

// Close disconnects the underlying Mongo client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
