package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Job marks the last calendar month for which a user's recurring incomes and
// expenses were materialized into transactions. One per user.
type Job struct {
	ID               bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID           bson.ObjectID `bson:"userId" json:"userId"`
	LastUpdatedMonth int           `bson:"lastUpdatedMonth" json:"lastUpdatedMonth"`
	LastUpdatedYear  int           `bson:"lastUpdatedYear" json:"lastUpdatedYear"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}
