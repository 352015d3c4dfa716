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

// OrganizerRepository implements the repositories.OrganizerRepository interface
type OrganizerRepository struct {
	collection *mongo.Collection
}

// NewOrganizerRepository creates a new OrganizerRepository
func NewOrganizerRepository(db *mongo.Database) *OrganizerRepository {
	return &OrganizerRepository{
		collection: db.Collection("organizers"),
	}
}

// EnsureIndexes creates the unique index on email
func (r *OrganizerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create creates a new organizer account
func (r *OrganizerRepository) Create(ctx context.Context, organizer *models.Organizer) error {
	res, err := r.collection.InsertOne(ctx, organizer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		return err
	}
	organizer.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByEmail finds an organizer by email
func (r *OrganizerRepository) FindByEmail(ctx context.Context, email string) (*models.Organizer, error) {
	var organizer models.Organizer
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&organizer)
	if err != nil {
		return nil, err
	}
	return &organizer, nil
}

// FindByID finds an organizer by ID
func (r *OrganizerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Organizer, error) {
	var organizer models.Organizer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&organizer)
	if err != nil {
		return nil, err
	}
	return &organizer, nil
}
