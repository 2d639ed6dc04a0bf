package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "In Progress"
	GoalStatusCompleted  GoalStatus = "Completed"
)

// Goal tracks progress toward a target amount by a target date. Status flips
// to Completed exactly when AmountSaved reaches TargetAmount and never
// reverts on its own.
type Goal struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID       bson.ObjectID `bson:"userId" json:"userId"`
	GoalName     string        `bson:"goalName" json:"goalName"`
	TargetAmount float64       `bson:"targetAmount" json:"targetAmount"`
	AmountSaved  float64       `bson:"amountSaved" json:"amountSaved"`
	TargetDate   time.Time     `bson:"targetDate" json:"targetDate"`
	Status       GoalStatus    `bson:"status" json:"status"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}
