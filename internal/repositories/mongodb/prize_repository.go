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

// PrizeRepository implements the repositories.PrizeRepository interface
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) repositories.PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("prizes"),
	}
}

// Create creates a new prize
func (r *PrizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	res, err := r.collection.InsertOne(ctx, prize)
	if err != nil {
		return err
	}
	prize.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a prize by ID within a session. A prize belonging to a
// different session is not found.
func (r *PrizeRepository) FindByID(ctx context.Context, sessionID, prizeID primitive.ObjectID) (*models.Prize, error) {
	var prize models.Prize
	err := r.collection.FindOne(ctx, bson.M{"_id": prizeID, "sessionId": sessionID}).Decode(&prize)
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

// FindBySession finds all prizes in a session, in creation order
func (r *PrizeRepository) FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Prize, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prizes []*models.Prize
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	return prizes, nil
}

// DeleteBySession deletes all prizes in a session
func (r *PrizeRepository) DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	return err
}
