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

// TransactionFilter narrows a transaction listing. Zero values mean "any".
type TransactionFilter struct {
	Type  models.TransactionType
	Month int
	Year  int
}

func (f TransactionFilter) query(userID bson.ObjectID) bson.M {
	query := bson.M{"userId": userID}
	if f.Type != "" {
		query["type"] = f.Type
	}
	if f.Month > 0 && f.Year > 0 {
		start, end := MonthRange(f.Year, f.Month)
		query["transactionDate"] = bson.M{"$gte": start, "$lte": end}
	}
	return query
}

// MonthRange returns the inclusive bounds of a calendar month.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

func (s *Store) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	now := time.Now()
	txn.CreatedAt = now
	txn.UpdatedAt = now
	if txn.TransactionDate.IsZero() {
		txn.TransactionDate = now
	}

	res, err := s.collection(TransactionCollection).InsertOne(ctx, txn)
	if err != nil {
		return fmt.Errorf("error creating transaction: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		txn.ID = id
	}
	return nil
}

func (s *Store) CreateTransactions(ctx context.Context, txns []*models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]any, 0, len(txns))
	for _, txn := range txns {
		txn.CreatedAt = now
		txn.UpdatedAt = now
		if txn.TransactionDate.IsZero() {
			txn.TransactionDate = now
		}
		docs = append(docs, txn)
	}

	if _, err := s.collection(TransactionCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error creating transactions: %w", err)
	}
	return nil
}

// ListTransactions returns one page of a user's transactions, newest first,
// along with the total match count.
func (s *Store) ListTransactions(ctx context.Context, userID bson.ObjectID, filter TransactionFilter, page, limit int) ([]models.Transaction, int64, error) {
	query := filter.query(userID)
	coll := s.collection(TransactionCollection)

	opts := options.Find().
		SetSort(bson.D{{Key: "transactionDate", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing transactions: %w", err)
	}

	transactions := []models.Transaction{}
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, 0, fmt.Errorf("error decoding transactions: %w", err)
	}

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting transactions: %w", err)
	}
	return transactions, total, nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, txnID bson.ObjectID) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.collection(TransactionCollection).
		FindOne(ctx, bson.M{"_id": txnID, "userId": userID}).
		Decode(&txn)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching transaction: %w", err)
	}
	return &txn, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, userID, txnID bson.ObjectID, fields bson.M) (*models.Transaction, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var txn models.Transaction
	err := s.collection(TransactionCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": txnID, "userId": userID}, bson.M{"$set": fields}, opts).
		Decode(&txn)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating transaction: %w", err)
	}
	return &txn, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, txnID bson.ObjectID) (bool, error) {
	res, err := s.collection(TransactionCollection).
		DeleteOne(ctx, bson.M{"_id": txnID, "userId": userID})
	if err != nil {
		return false, fmt.Errorf("error deleting transaction: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteTransactionByCharge removes the transaction linked to a charge.
func (s *Store) DeleteTransactionByCharge(ctx context.Context, userID, chargeID bson.ObjectID) error {
	_, err := s.collection(TransactionCollection).
		DeleteMany(ctx, bson.M{"userId": userID, "chargeId": chargeID})
	if err != nil {
		return fmt.Errorf("error deleting charge transaction: %w", err)
	}
	return nil
}

// SummarizeTransactions totals a user's income and expenses for one month.
// Recurring types count into their base buckets.
func (s *Store) SummarizeTransactions(ctx context.Context, userID bson.ObjectID, year, month int) (*models.TransactionSummary, error) {
	start, end := MonthRange(year, month)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"userId":          userID,
			"transactionDate": bson.M{"$gte": start, "$lte": end},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$type",
			"totalAmount": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := s.collection(TransactionCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error summarizing transactions: %w", err)
	}

	var rows []struct {
		Type        models.TransactionType `bson:"_id"`
		TotalAmount float64                `bson:"totalAmount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding summary: %w", err)
	}

	summary := &models.TransactionSummary{}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome, models.TransactionTypeRecurringIncome:
			summary.TotalIncome += row.TotalAmount
		case models.TransactionTypeExpense, models.TransactionTypeRecurringExpense:
			summary.TotalExpense += row.TotalAmount
		}
	}
	return summary, nil
}

// SpendingTrend groups the current month's expenses by day of month.
func (s *Store) SpendingTrend(ctx context.Context, userID bson.ObjectID, now time.Time) ([]models.TrendPoint, error) {
	start, end := MonthRange(now.Year(), int(now.Month()))

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"userId":          userID,
			"type":            models.TransactionTypeExpense,
			"transactionDate": bson.M{"$gte": start, "$lte": end},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":         bson.M{"$dayOfMonth": "$transactionDate"},
			"totalAmount": bson.M{"$sum": "$amount"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := s.collection(TransactionCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating spending trend: %w", err)
	}

	var rows []struct {
		Day         int     `bson:"_id"`
		TotalAmount float64 `bson:"totalAmount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding spending trend: %w", err)
	}

	byDay := make(map[int]float64, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row.TotalAmount
	}

	daysInMonth := end.Day()
	trend := make([]models.TrendPoint, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		trend = append(trend, models.TrendPoint{
			Day:    fmt.Sprintf("%d", day),
			Amount: byDay[day],
		})
	}
	return trend, nil
}
