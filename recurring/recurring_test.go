package recurring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Harsh-cyber005/paisafy-server/models"
)

func testUser() *models.User {
	return &models.User{
		ID:            bson.NewObjectID(),
		Email:         "john@x.com",
		MonthlyIncome: 50000,
		IncomeSources: []models.IncomeSource{
			{ID: "s1", SourceName: "Freelance", Amount: 8000},
			{ID: "s2", SourceName: "Dividends", Amount: 2000},
		},
		RecurringExpenses: []models.RecurringExpense{
			{ID: "e1", ExpenseName: "Rent", Amount: 15000},
			{ID: "e2", ExpenseName: "Internet", Amount: 800},
		},
	}
}

func TestBuildMonthlyTransactions(t *testing.T) {
	user := testUser()
	now := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)

	txns := BuildMonthlyTransactions(user, now)
	require.Len(t, txns, 2)

	income := txns[0]
	assert.Equal(t, models.TransactionTypeRecurringIncome, income.Type)
	assert.Equal(t, 60000.0, income.Amount)
	assert.Equal(t, user.ID, income.UserID)
	assert.Equal(t, now, income.TransactionDate)

	expense := txns[1]
	assert.Equal(t, models.TransactionTypeRecurringExpense, expense.Type)
	assert.Equal(t, 15800.0, expense.Amount)
	assert.Equal(t, user.ID, expense.UserID)
}

func TestBuildMonthlyTransactionsSkipsZeroSides(t *testing.T) {
	now := time.Now()

	user := testUser()
	user.RecurringExpenses = nil
	txns := BuildMonthlyTransactions(user, now)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TransactionTypeRecurringIncome, txns[0].Type)

	user = testUser()
	user.MonthlyIncome = 0
	user.IncomeSources = nil
	txns = BuildMonthlyTransactions(user, now)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TransactionTypeRecurringExpense, txns[0].Type)

	txns = BuildMonthlyTransactions(&models.User{ID: bson.NewObjectID()}, now)
	assert.Empty(t, txns)
}
