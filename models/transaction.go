package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TransactionType string

const (
	TransactionTypeIncome           TransactionType = "Income"
	TransactionTypeExpense          TransactionType = "Expense"
	TransactionTypeRecurringIncome  TransactionType = "RecurringIncome"
	TransactionTypeRecurringExpense TransactionType = "RecurringExpense"
)

// Transaction is an immutable financial event attributed to exactly one user.
// ChargeID and JarID link transactions produced as side effects of paying a
// charge or moving money in a jar, so the producing entity can find them
// again without matching on description text.
type Transaction struct {
	ID              bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID          bson.ObjectID   `bson:"userId" json:"userId"`
	Amount          float64         `bson:"amount" json:"amount"`
	Type            TransactionType `bson:"type" json:"type"`
	Category        string          `bson:"category" json:"category"`
	Description     string          `bson:"description,omitempty" json:"description,omitempty"`
	ChargeID        *bson.ObjectID  `bson:"chargeId,omitempty" json:"chargeId,omitempty"`
	JarID           *bson.ObjectID  `bson:"jarId,omitempty" json:"jarId,omitempty"`
	TransactionDate time.Time       `bson:"transactionDate" json:"transactionDate"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// TransactionSummary is the per-month income/expense rollup.
type TransactionSummary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
}

// TrendPoint is one day of the current-month spending trend.
type TrendPoint struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}
