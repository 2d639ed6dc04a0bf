package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnpaidStatus(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, ChargeStatusDue, UnpaidStatus(now.Add(-time.Hour), now))
	assert.Equal(t, ChargeStatusUpcoming, UnpaidStatus(now.Add(time.Hour), now))
	assert.Equal(t, ChargeStatusUpcoming, UnpaidStatus(now, now))
}

func TestUserProfileTotals(t *testing.T) {
	user := &User{
		MonthlyIncome: 1000,
		IncomeSources: []IncomeSource{
			{SourceName: "Freelance", Amount: 200},
			{SourceName: "Dividends", Amount: 50},
		},
		RecurringExpenses: []RecurringExpense{
			{ExpenseName: "Rent", Amount: 400},
		},
	}

	assert.Equal(t, 250.0, user.SideIncome())
	assert.Equal(t, 400.0, user.RecurringExpenseTotal())

	empty := &User{}
	assert.Zero(t, empty.SideIncome())
	assert.Zero(t, empty.RecurringExpenseTotal())
}
