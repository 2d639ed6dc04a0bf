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

func (s *Store) CreateGoal(ctx context.Context, goal *models.Goal) error {
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	if goal.Status == "" {
		goal.Status = models.GoalStatusInProgress
	}

	res, err := s.collection(GoalCollection).InsertOne(ctx, goal)
	if err != nil {
		return fmt.Errorf("error creating goal: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		goal.ID = id
	}
	return nil
}

func (s *Store) CreateGoals(ctx context.Context, goals []*models.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]any, 0, len(goals))
	for _, goal := range goals {
		goal.CreatedAt = now
		goal.UpdatedAt = now
		if goal.Status == "" {
			goal.Status = models.GoalStatusInProgress
		}
		docs = append(docs, goal)
	}
	if _, err := s.collection(GoalCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error creating goals: %w", err)
	}
	return nil
}

func (s *Store) ListGoals(ctx context.Context, userID bson.ObjectID) ([]models.Goal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "targetDate", Value: 1}})
	cursor, err := s.collection(GoalCollection).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing goals: %w", err)
	}

	goals := []models.Goal{}
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("error decoding goals: %w", err)
	}
	return goals, nil
}

func (s *Store) GetGoal(ctx context.Context, userID, goalID bson.ObjectID) (*models.Goal, error) {
	var goal models.Goal
	err := s.collection(GoalCollection).
		FindOne(ctx, bson.M{"_id": goalID, "userId": userID}).
		Decode(&goal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching goal: %w", err)
	}
	return &goal, nil
}

func (s *Store) UpdateGoal(ctx context.Context, userID, goalID bson.ObjectID, fields bson.M) (*models.Goal, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var goal models.Goal
	err := s.collection(GoalCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": goalID, "userId": userID}, bson.M{"$set": fields}, opts).
		Decode(&goal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating goal: %w", err)
	}
	return &goal, nil
}

// ContributeToGoal adds amount to an in-progress goal and flips it to
// Completed when the new balance reaches the target, all in one update
// pipeline. Returns nil when the goal is missing or already completed.
func (s *Store) ContributeToGoal(ctx context.Context, userID, goalID bson.ObjectID, amount float64) (*models.Goal, error) {
	filter := bson.M{
		"_id":    goalID,
		"userId": userID,
		"status": models.GoalStatusInProgress,
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"amountSaved": bson.M{"$add": bson.A{"$amountSaved", amount}},
			"updatedAt":   time.Now(),
		}}},
		{{Key: "$set", Value: bson.M{
			"status": bson.M{"$cond": bson.A{
				bson.M{"$gte": bson.A{"$amountSaved", "$targetAmount"}},
				models.GoalStatusCompleted,
				models.GoalStatusInProgress,
			}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var goal models.Goal
	err := s.collection(GoalCollection).FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&goal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error contributing to goal: %w", err)
	}
	return &goal, nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID, goalID bson.ObjectID) (bool, error) {
	res, err := s.collection(GoalCollection).DeleteOne(ctx, bson.M{"_id": goalID, "userId": userID})
	if err != nil {
		return false, fmt.Errorf("error deleting goal: %w", err)
	}
	return res.DeletedCount > 0, nil
}
