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

func (s *Store) CreateCharge(ctx context.Context, charge *models.UpcomingCharge) error {
	now := time.Now()
	charge.CreatedAt = now
	charge.UpdatedAt = now
	if charge.Status == "" {
		charge.Status = models.ChargeStatusUpcoming
	}

	res, err := s.collection(ChargeCollection).InsertOne(ctx, charge)
	if err != nil {
		return fmt.Errorf("error creating charge: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		charge.ID = id
	}
	return nil
}

// SweepOverdueCharges moves a user's unpaid, past-due Upcoming charges to
// Due. Runs before every charge read.
func (s *Store) SweepOverdueCharges(ctx context.Context, userID bson.ObjectID, now time.Time) error {
	filter := bson.M{
		"userId":  userID,
		"dueDate": bson.M{"$lt": now},
		"isPaid":  false,
		"status":  models.ChargeStatusUpcoming,
	}
	update := bson.M{"$set": bson.M{
		"status":    models.ChargeStatusDue,
		"updatedAt": now,
	}}
	if _, err := s.collection(ChargeCollection).UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("error sweeping overdue charges: %w", err)
	}
	return nil
}

func (s *Store) ListChargesByStatus(ctx context.Context, userID bson.ObjectID, status models.ChargeStatus) ([]models.UpcomingCharge, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}})
	cursor, err := s.collection(ChargeCollection).
		Find(ctx, bson.M{"userId": userID, "status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing charges: %w", err)
	}

	charges := []models.UpcomingCharge{}
	if err := cursor.All(ctx, &charges); err != nil {
		return nil, fmt.Errorf("error decoding charges: %w", err)
	}
	return charges, nil
}

func (s *Store) UpdateCharge(ctx context.Context, userID, chargeID bson.ObjectID, fields bson.M) (*models.UpcomingCharge, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var charge models.UpcomingCharge
	err := s.collection(ChargeCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": chargeID, "userId": userID}, bson.M{"$set": fields}, opts).
		Decode(&charge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating charge: %w", err)
	}
	return &charge, nil
}

// SetChargePaid flips the paid flag. Unpaid charges land back on Upcoming or
// Due depending on the due date.
func (s *Store) SetChargePaid(ctx context.Context, userID, chargeID bson.ObjectID, paid bool, now time.Time) (*models.UpcomingCharge, error) {
	var update any
	if paid {
		update = bson.M{"$set": bson.M{
			"isPaid":    true,
			"status":    models.ChargeStatusPaid,
			"updatedAt": now,
		}}
	} else {
		// Unpaid status depends on the due date, so compute it in the update
		// pipeline rather than reading first.
		update = mongo.Pipeline{
			{{Key: "$set", Value: bson.M{
				"isPaid": false,
				"status": bson.M{"$cond": bson.A{
					bson.M{"$lt": bson.A{"$dueDate", now}},
					models.ChargeStatusDue,
					models.ChargeStatusUpcoming,
				}},
				"updatedAt": now,
			}}},
		}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var charge models.UpcomingCharge
	err := s.collection(ChargeCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": chargeID, "userId": userID}, update, opts).
		Decode(&charge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating charge paid state: %w", err)
	}
	return &charge, nil
}

func (s *Store) DeleteCharge(ctx context.Context, userID, chargeID bson.ObjectID) (bool, error) {
	res, err := s.collection(ChargeCollection).
		DeleteOne(ctx, bson.M{"_id": chargeID, "userId": userID})
	if err != nil {
		return false, fmt.Errorf("error deleting charge: %w", err)
	}
	return res.DeletedCount > 0, nil
}
