package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Draw represents one randomized selection event against a prize. A draw has
// no internal states: it is created complete together with its winners, or
// not at all.
type Draw struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	PrizeID   primitive.ObjectID `bson:"prizeId" json:"prizeId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// DrawRequest is the payload for running a draw. Quantity is validated by
// the engine so that zero and negative values report the same
// invalid-quantity error as out-of-range ones.
type DrawRequest struct {
	PrizeID  string `json:"prizeId" binding:"required"`
	Quantity int    `json:"quantity"`
}

// PrizeSnapshot is the prize identity as observed by a draw.
type PrizeSnapshot struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// DrawWinner is one selected contestant in a draw result.
type DrawWinner struct {
	ContestantID primitive.ObjectID `json:"contestantId"`
	Name         string             `json:"name"`
	PrizeName    string             `json:"prizeName"`
}

// DrawResult is the response produced by a successful draw. Winner order
// carries no meaning beyond "selected in this draw".
type DrawResult struct {
	DrawID            primitive.ObjectID `json:"drawId"`
	SessionID         primitive.ObjectID `json:"sessionId"`
	Prize             PrizeSnapshot      `json:"prize"`
	RequestedQuantity int                `json:"requestedQuantity"`
	EligibleBefore    int                `json:"eligibleBefore"`
	Winners           []DrawWinner       `json:"winners"`
	CreatedAt         time.Time          `json:"createdAt"`
}
