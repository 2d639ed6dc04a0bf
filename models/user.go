package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IncomeType string

const (
	IncomeTypeMonthly   IncomeType = "Monthly"
	IncomeTypeIrregular IncomeType = "Irregular"
)

// IncomeSource is an owned sub-document of User, addressed by a generated id.
type IncomeSource struct {
	ID         string  `bson:"_id" json:"_id"`
	SourceName string  `bson:"sourceName" json:"sourceName"`
	Amount     float64 `bson:"amount" json:"amount"`
}

// RecurringExpense is an owned sub-document of User, addressed by a generated id.
type RecurringExpense struct {
	ID          string  `bson:"_id" json:"_id"`
	ExpenseName string  `bson:"expenseName" json:"expenseName"`
	Amount      float64 `bson:"amount" json:"amount"`
}

// User is the account identity plus the financial profile. Password and OTP
// fields never serialize to JSON.
type User struct {
	ID                bson.ObjectID      `bson:"_id,omitempty" json:"_id"`
	FullName          string             `bson:"fullName" json:"fullName"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password" json:"-"`
	OTP               string             `bson:"otp,omitempty" json:"-"`
	OTPExpires        *time.Time         `bson:"otpExpires,omitempty" json:"-"`
	MonthlyIncome     float64            `bson:"monthlyIncome" json:"monthlyIncome"`
	IncomeType        IncomeType         `bson:"incomeType" json:"incomeType"`
	IncomeSources     []IncomeSource     `bson:"incomeSources" json:"incomeSources"`
	RecurringExpenses []RecurringExpense `bson:"recurringExpenses" json:"recurringExpenses"`
	FinanceTipsOptIn  bool               `bson:"financeTipsOptIn" json:"financeTipsOptIn"`
	OnboardingDone    bool               `bson:"onboardingDone" json:"onboardingDone"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SideIncome sums the user's additional income sources.
func (u *User) SideIncome() float64 {
	var total float64
	for _, s := range u.IncomeSources {
		total += s.Amount
	}
	return total
}

// RecurringExpenseTotal sums the user's standing recurring expenses.
func (u *User) RecurringExpenseTotal() float64 {
	var total float64
	for _, e := range u.RecurringExpenses {
		total += e.Amount
	}
	return total
}
