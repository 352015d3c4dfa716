package mongodb

import (
	"context"

	"github.com/prizeroom/doorprize-backend/internal/models"
	"github.com/prizeroom/doorprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WinnerRepository implements the repositories.WinnerRepository interface
type WinnerRepository struct {
	collection *mongo.Collection
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *mongo.Database) *WinnerRepository {
	return &WinnerRepository{
		collection: db.Collection("winners"),
	}
}

// EnsureIndexes creates the unique index on contestantId. This index is the
// enforcement point for the at-most-one-prize-per-contestant invariant: a
// concurrent draw that selects an already-consumed contestant fails here at
// commit time.
func (r *WinnerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "contestantId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateMany inserts winner records. Returns repositories.ErrDuplicateKey when
// any contestant already holds a winner record; inside a transaction the
// caller's rollback discards any partial inserts.
func (r *WinnerRepository) CreateMany(ctx context.Context, winners []*models.Winner) error {
	if len(winners) == 0 {
		return nil
	}
	docs := make([]interface{}, len(winners))
	for i, w := range winners {
		docs[i] = w
	}
	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// FindByDraw finds winners of a draw
func (r *WinnerRepository) FindByDraw(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"drawId": drawID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// FindBySession finds all winners in a session
func (r *WinnerRepository) FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Winner, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// CountByPrize counts winners produced by all draws against a prize
func (r *WinnerRepository) CountByPrize(ctx context.Context, prizeID primitive.ObjectID) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"prizeId": prizeID})
	return int(n), err
}

// DeleteBySession deletes all winners in a session
func (r *WinnerRepository) DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	return err
}
