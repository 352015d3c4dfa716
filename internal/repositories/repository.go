package repositories

import (
	"context"
	"errors"

	"github.com/prizeroom/doorprize-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicateKey is returned by repositories when a write violates a unique
// index. The winner repository returns it when a contestant already holds a
// winner record; the contestant repository when a name is already taken in
// the session.
var ErrDuplicateKey = errors.New("duplicate key")

// TxRunner runs a function inside a single store transaction. The function's
// reads and writes either all commit or all roll back. Implementations pass a
// transaction-bound context to fn; repositories called with that context take
// part in the transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SessionRepository defines session data operations.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error)
	FindAll(ctx context.Context) ([]*models.Session, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ContestantRepository defines contestant data operations. FindEligible and
// CountEligible consider a contestant eligible iff no winner record
// references it.
type ContestantRepository interface {
	Create(ctx context.Context, contestant *models.Contestant) error
	CreateMany(ctx context.Context, contestants []*models.Contestant) error
	FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error)
	FindEligible(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error)
	CountEligible(ctx context.Context, sessionID primitive.ObjectID) (int, error)
	CountBySession(ctx context.Context, sessionID primitive.ObjectID) (int, error)
	DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error
}

// PrizeRepository defines prize data operations. Lookups are session-scoped
// so a prize id from another session behaves as not found.
type PrizeRepository interface {
	Create(ctx context.Context, prize *models.Prize) error
	FindByID(ctx context.Context, sessionID, prizeID primitive.ObjectID) (*models.Prize, error)
	FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Prize, error)
	DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error
}

// DrawRepository defines draw data operations.
type DrawRepository interface {
	Create(ctx context.Context, draw *models.Draw) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Draw, error)
	DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error
}

// WinnerRepository defines winner data operations. CreateMany must fail with
// ErrDuplicateKey when any inserted winner references a contestant that
// already holds a winner record.
type WinnerRepository interface {
	CreateMany(ctx context.Context, winners []*models.Winner) error
	FindByDraw(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error)
	FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Winner, error)
	CountByPrize(ctx context.Context, prizeID primitive.ObjectID) (int, error)
	DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) error
}

// OrganizerRepository defines organizer account operations.
type OrganizerRepository interface {
	Create(ctx context.Context, organizer *models.Organizer) error
	FindByEmail(ctx context.Context, email string) (*models.Organizer, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Organizer, error)
}
