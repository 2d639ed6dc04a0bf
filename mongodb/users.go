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

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.IncomeSources == nil {
		user.IncomeSources = []models.IncomeSource{}
	}
	if user.RecurringExpenses == nil {
		user.RecurringExpenses = []models.RecurringExpense{}
	}

	res, err := s.collection(UserCollection).InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// IsDuplicateKey reports whether err is a unique-index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection(UserCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &user, nil
}

// GetUserByEmailAndOTP matches a user holding the given unexpired OTP.
func (s *Store) GetUserByEmailAndOTP(ctx context.Context, email, otp string) (*models.User, error) {
	filter := bson.M{
		"email":      email,
		"otp":        otp,
		"otpExpires": bson.M{"$gt": time.Now()},
	}

	var user models.User
	err := s.collection(UserCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching user by otp: %w", err)
	}
	return &user, nil
}

func (s *Store) SetUserOTP(ctx context.Context, email, otp string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"otp":        otp,
		"otpExpires": expires,
		"updatedAt":  time.Now(),
	}}
	_, err := s.collection(UserCollection).UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("error storing otp: %w", err)
	}
	return nil
}

func (s *Store) ClearUserOTP(ctx context.Context, email string) error {
	update := bson.M{
		"$unset": bson.M{"otp": "", "otpExpires": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	_, err := s.collection(UserCollection).UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("error clearing otp: %w", err)
	}
	return nil
}

// UpdateUserProfile applies the given profile fields and returns the updated
// user.
func (s *Store) UpdateUserProfile(ctx context.Context, email string, fields bson.M) (*models.User, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.collection(UserCollection).
		FindOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": fields}, opts).
		Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating user profile: %w", err)
	}
	return &user, nil
}

func (s *Store) AddIncomeSource(ctx context.Context, email string, source models.IncomeSource) (*models.User, error) {
	update := bson.M{
		"$push": bson.M{"incomeSources": source},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return s.findAndUpdateUser(ctx, bson.M{"email": email}, update)
}

func (s *Store) UpdateIncomeSource(ctx context.Context, email, sourceID string, fields bson.M) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set["incomeSources.$."+k] = v
	}
	filter := bson.M{"email": email, "incomeSources._id": sourceID}
	return s.findAndUpdateUser(ctx, filter, bson.M{"$set": set})
}

func (s *Store) DeleteIncomeSource(ctx context.Context, email, sourceID string) (*models.User, error) {
	filter := bson.M{"email": email, "incomeSources._id": sourceID}
	update := bson.M{
		"$pull": bson.M{"incomeSources": bson.M{"_id": sourceID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return s.findAndUpdateUser(ctx, filter, update)
}

func (s *Store) AddRecurringExpense(ctx context.Context, email string, expense models.RecurringExpense) (*models.User, error) {
	update := bson.M{
		"$push": bson.M{"recurringExpenses": expense},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return s.findAndUpdateUser(ctx, bson.M{"email": email}, update)
}

func (s *Store) UpdateRecurringExpense(ctx context.Context, email, expenseID string, fields bson.M) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set["recurringExpenses.$."+k] = v
	}
	filter := bson.M{"email": email, "recurringExpenses._id": expenseID}
	return s.findAndUpdateUser(ctx, filter, bson.M{"$set": set})
}

func (s *Store) DeleteRecurringExpense(ctx context.Context, email, expenseID string) (*models.User, error) {
	filter := bson.M{"email": email, "recurringExpenses._id": expenseID}
	update := bson.M{
		"$pull": bson.M{"recurringExpenses": bson.M{"_id": expenseID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return s.findAndUpdateUser(ctx, filter, update)
}

// ReplaceFinancialProfile overwrites the onboarding-owned profile fields in
// one update.
func (s *Store) ReplaceFinancialProfile(ctx context.Context, email string, monthlyIncome float64, incomeType models.IncomeType, sources []models.IncomeSource, expenses []models.RecurringExpense, financeTips bool) (*models.User, error) {
	update := bson.M{"$set": bson.M{
		"monthlyIncome":     monthlyIncome,
		"incomeType":        incomeType,
		"incomeSources":     sources,
		"recurringExpenses": expenses,
		"financeTipsOptIn":  financeTips,
		"onboardingDone":    true,
		"updatedAt":         time.Now(),
	}}
	return s.findAndUpdateUser(ctx, bson.M{"email": email}, update)
}

func (s *Store) findAndUpdateUser(ctx context.Context, filter, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.collection(UserCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return &user, nil
}
