package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Winner links one contestant to one draw. The record is immutable and
// permanently consumes the contestant's eligibility: the winners collection
// carries a unique index on contestantId, so a contestant can hold at most
// one Winner record ever.
//
// PrizeName and ContestantName are copied at draw time so that later renames
// do not alter historical reports.
type Winner struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID      primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	DrawID         primitive.ObjectID `bson:"drawId" json:"drawId"`
	PrizeID        primitive.ObjectID `bson:"prizeId" json:"prizeId"`
	ContestantID   primitive.ObjectID `bson:"contestantId" json:"contestantId"`
	ContestantName string             `bson:"contestantName" json:"contestantName"`
	PrizeName      string             `bson:"prizeName" json:"prizeName"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// DrawWithWinners pairs a draw with its winners for presentation polling.
type DrawWithWinners struct {
	Draw    Draw      `json:"draw"`
	Winners []*Winner `json:"winners"`
}

// SessionResults is the payload polled by presentation screens.
type SessionResults struct {
	Session       Session            `json:"session"`
	EligibleCount int                `json:"eligibleCount"`
	Draws         []*DrawWithWinners `json:"draws"`
}
