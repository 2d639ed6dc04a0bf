package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Jar is a named savings bucket funded by explicit deposits and withdrawals.
// AmountSaved never goes negative; withdrawals are checked against the
// balance inside the store update itself.
type Jar struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      bson.ObjectID `bson:"userId" json:"userId"`
	JarName     string        `bson:"jarName" json:"jarName"`
	GoalAmount  float64       `bson:"goalAmount" json:"goalAmount"`
	AmountSaved float64       `bson:"amountSaved" json:"amountSaved"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
