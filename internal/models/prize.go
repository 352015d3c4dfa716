package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize represents a prize offered within a session. Quantity is fixed at
// creation time; the number of units still undrawn is derived from winner
// counts, never stored.
type Prize struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// PrizeWithRemaining is a prize together with its recomputed remaining count,
// as returned by prize listings.
type PrizeWithRemaining struct {
	Prize
	Remaining int `json:"remaining"`
}
