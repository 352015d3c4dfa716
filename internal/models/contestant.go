package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contestant represents a person who can win at most one prize in a session.
// Contestants are created at import time and never mutated; eligibility is
// derived (no Winner record references them yet), never stored.
type Contestant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ImportResult summarises a contestant CSV import.
type ImportResult struct {
	TotalRows int      `json:"totalRows"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}
