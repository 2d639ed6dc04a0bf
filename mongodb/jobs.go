package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ClaimMonthlySync stamps the user's job row with the given month/year and
// reports whether this caller won the stamp. The filter only matches a job
// with a different stamp, and the unique userId index turns the losing
// upsert into a duplicate-key error, so at most one caller per user wins a
// given calendar month.
func (s *Store) ClaimMonthlySync(ctx context.Context, userID bson.ObjectID, month, year int) (bool, error) {
	filter := bson.M{
		"userId": userID,
		"$or": bson.A{
			bson.M{"lastUpdatedMonth": bson.M{"$ne": month}},
			bson.M{"lastUpdatedYear": bson.M{"$ne": year}},
		},
	}
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"lastUpdatedMonth": month,
			"lastUpdatedYear":  year,
			"updatedAt":        now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	res, err := s.collection(JobCollection).
		UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// A job with the current stamp already exists: synced this month.
			return false, nil
		}
		return false, fmt.Errorf("error claiming monthly sync: %w", err)
	}
	return res.ModifiedCount > 0 || res.UpsertedID != nil, nil
}

// SeedMonthlySync stamps the job row unconditionally, used when onboarding
// materializes the first recurring transactions itself.
func (s *Store) SeedMonthlySync(ctx context.Context, userID bson.ObjectID, month, year int) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"lastUpdatedMonth": month,
			"lastUpdatedYear":  year,
			"updatedAt":        now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	_, err := s.collection(JobCollection).
		UpdateOne(ctx, bson.M{"userId": userID}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("error seeding monthly sync: %w", err)
	}
	return nil
}
