package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ChargeStatus string

const (
	ChargeStatusUpcoming ChargeStatus = "Upcoming"
	ChargeStatusDue      ChargeStatus = "Due"
	ChargeStatusPaid     ChargeStatus = "Paid"
)

// UpcomingCharge is a scheduled bill. Unpaid charges sweep from Upcoming to
// Due once the due date passes; marking one paid records a linked
// Transaction.
type UpcomingCharge struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     bson.ObjectID `bson:"userId" json:"userId"`
	ChargeName string        `bson:"chargeName" json:"chargeName"`
	Field      string        `bson:"field" json:"field"`
	DueDate    time.Time     `bson:"dueDate" json:"dueDate"`
	Amount     float64       `bson:"amount" json:"amount"`
	IsPaid     bool          `bson:"isPaid" json:"isPaid"`
	Status     ChargeStatus  `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// UnpaidStatus picks the status an unpaid charge should carry given its due
// date.
func UnpaidStatus(dueDate, now time.Time) ChargeStatus {
	if dueDate.Before(now) {
		return ChargeStatusDue
	}
	return ChargeStatusUpcoming
}
