package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Harsh-cyber005/paisafy-server/logger"
	"go.uber.org/zap"
)

const (
	UserCollection        = "users"
	TransactionCollection = "transactions"
	JarCollection         = "jars"
	GoalCollection        = "goals"
	ChargeCollection      = "charges"
	JobCollection         = "jobs"
)

// Store owns the MongoDB client and the collection handles. It is created in
// main and injected into the handlers.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and prepares the indexes the queries rely on.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	logger.Get().Info("successfully connected to MongoDB", zap.String("database", database))
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		JobCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique},
		},
		TransactionCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "transactionDate", Value: -1}}},
			{Keys: bson.D{{Key: "chargeId", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		JarCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		GoalCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		ChargeCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("error creating indexes for %s: %w", name, err)
		}
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) {
	if err := s.client.Disconnect(ctx); err != nil {
		logger.Get().Error("failed to disconnect from MongoDB", zap.Error(err))
		return
	}
	logger.Get().Info("successfully disconnected from MongoDB")
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}
