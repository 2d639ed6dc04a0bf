package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Harsh-cyber005/paisafy-server/models"
)

func (s *Store) CreateJar(ctx context.Context, jar *models.Jar) error {
	now := time.Now()
	jar.CreatedAt = now
	jar.UpdatedAt = now

	res, err := s.collection(JarCollection).InsertOne(ctx, jar)
	if err != nil {
		return fmt.Errorf("error creating jar: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		jar.ID = id
	}
	return nil
}

func (s *Store) CreateJars(ctx context.Context, jars []*models.Jar) error {
	if len(jars) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]any, 0, len(jars))
	for _, jar := range jars {
		jar.CreatedAt = now
		jar.UpdatedAt = now
		docs = append(docs, jar)
	}
	if _, err := s.collection(JarCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error creating jars: %w", err)
	}
	return nil
}

func (s *Store) ListJars(ctx context.Context, userID bson.ObjectID) ([]models.Jar, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.collection(JarCollection).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing jars: %w", err)
	}

	jars := []models.Jar{}
	if err := cursor.All(ctx, &jars); err != nil {
		return nil, fmt.Errorf("error decoding jars: %w", err)
	}
	return jars, nil
}

func (s *Store) GetJar(ctx context.Context, userID, jarID bson.ObjectID) (*models.Jar, error) {
	var jar models.Jar
	err := s.collection(JarCollection).
		FindOne(ctx, bson.M{"_id": jarID, "userId": userID}).
		Decode(&jar)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching jar: %w", err)
	}
	return &jar, nil
}

func (s *Store) UpdateJar(ctx context.Context, userID, jarID bson.ObjectID, fields bson.M) (*models.Jar, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var jar models.Jar
	err := s.collection(JarCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": jarID, "userId": userID}, bson.M{"$set": fields}, opts).
		Decode(&jar)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating jar: %w", err)
	}
	return &jar, nil
}

// DepositToJar adds amount to the jar balance in a single update.
func (s *Store) DepositToJar(ctx context.Context, userID, jarID bson.ObjectID, amount float64) (*models.Jar, error) {
	update := bson.M{
		"$inc": bson.M{"amountSaved": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var jar models.Jar
	err := s.collection(JarCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": jarID, "userId": userID}, update, opts).
		Decode(&jar)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error depositing to jar: %w", err)
	}
	return &jar, nil
}

// WithdrawFromJar decrements the balance only when it covers the amount; the
// balance check lives in the filter so concurrent withdrawals cannot
// overdraw.
func (s *Store) WithdrawFromJar(ctx context.Context, userID, jarID bson.ObjectID, amount float64) (*models.Jar, error) {
	filter := bson.M{
		"_id":         jarID,
		"userId":      userID,
		"amountSaved": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{"amountSaved": -amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var jar models.Jar
	err := s.collection(JarCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&jar)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error withdrawing from jar: %w", err)
	}
	return &jar, nil
}

func (s *Store) DeleteJar(ctx context.Context, userID, jarID bson.ObjectID) (bool, error) {
	res, err := s.collection(JarCollection).DeleteOne(ctx, bson.M{"_id": jarID, "userId": userID})
	if err != nil {
		return false, fmt.Errorf("error deleting jar: %w", err)
	}
	return res.DeletedCount > 0, nil
}
