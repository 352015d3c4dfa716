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

// ContestantRepository implements the repositories.ContestantRepository interface
type ContestantRepository struct {
	collection *mongo.Collection
}

// NewContestantRepository creates a new ContestantRepository
func NewContestantRepository(db *mongo.Database) *ContestantRepository {
	return &ContestantRepository{
		collection: db.Collection("contestants"),
	}
}

// EnsureIndexes creates the compound unique index on (sessionId, name).
// Uniqueness here is on the exact name; case-insensitive dedup happens at the
// application layer during import.
func (r *ContestantRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create creates a new contestant
func (r *ContestantRepository) Create(ctx context.Context, contestant *models.Contestant) error {
	res, err := r.collection.InsertOne(ctx, contestant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		return err
	}
	contestant.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// CreateMany creates contestants in bulk
func (r *ContestantRepository) CreateMany(ctx context.Context, contestants []*models.Contestant) error {
	if len(contestants) == 0 {
		return nil
	}
	docs := make([]interface{}, len(contestants))
	for i, c := range contestants {
		docs[i] = c
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

// FindBySession finds all contestants in a session, sorted by name
func (r *ContestantRepository) FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error) {
	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var contestants []*models.Contestant
	if err := cursor.All(ctx, &contestants); err != nil {
		return nil, err
	}
	return contestants, nil
}

// eligiblePipeline matches contestants in the session with no winner record.
func eligiblePipeline(sessionID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"sessionId": sessionID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "winners",
			"localField":   "_id",
			"foreignField": "contestantId",
			"as":           "wins",
		}}},
		{{Key: "$match", Value: bson.M{"wins": bson.M{"$size": 0}}}},
	}
}

// FindEligible finds contestants in the session that have no linked winner
func (r *ContestantRepository) FindEligible(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error) {
	cursor, err := r.collection.Aggregate(ctx, eligiblePipeline(sessionID))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var contestants []*models.Contestant
	if err := cursor.All(ctx, &contestants); err != nil {
		return nil, err
	}
	return contestants, nil
}

// CountEligible counts contestants in the session that have no linked winner
func (r *ContestantRepository) CountEligible(ctx context.Context, sessionID primitive.ObjectID) (int, error) {
	pipeline := append(eligiblePipeline(sessionID), bson.D{{Key: "$count", Value: "eligible"}})
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Eligible int `bson:"eligible"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Eligible, nil
}

// CountBySession counts all contestants in a session
func (r *ContestantRepository) CountBySession(ctx context.Context, sessionID primitive.ObjectID) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"sessionId": sessionID})
	return int(n), err
}

// DeleteBySession deletes all contestants in a session
func (r *ContestantRepository) DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	return err
}
