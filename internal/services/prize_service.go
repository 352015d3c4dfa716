package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prizeroom/doorprize-backend/internal/models"
	"github.com/prizeroom/doorprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// PrizeService manages prizes within a session.
type PrizeService interface {
	CreatePrize(ctx context.Context, sessionID primitive.ObjectID, name string, quantity int) (*models.Prize, error)
	GetPrizes(ctx context.Context, sessionID primitive.ObjectID) ([]*models.PrizeWithRemaining, error)
	Remaining(ctx context.Context, sessionID, prizeID primitive.ObjectID) (int, error)
}

var _ PrizeService = (*PrizeServiceImpl)(nil)

// PrizeServiceImpl handles prize creation and the derived remaining count
type PrizeServiceImpl struct {
	sessionRepo    repositories.SessionRepository
	prizeRepo      repositories.PrizeRepository
	contestantRepo repositories.ContestantRepository
	winnerRepo     repositories.WinnerRepository
}

// NewPrizeService creates a new PrizeServiceImpl
func NewPrizeService(
	sessionRepo repositories.SessionRepository,
	prizeRepo repositories.PrizeRepository,
	contestantRepo repositories.ContestantRepository,
	winnerRepo repositories.WinnerRepository,
) *PrizeServiceImpl {
	return &PrizeServiceImpl{
		sessionRepo:    sessionRepo,
		prizeRepo:      prizeRepo,
		contestantRepo: contestantRepo,
		winnerRepo:     winnerRepo,
	}
}

// CreatePrize creates a prize. Quantity must be at least 1 and no larger than
// the number of currently-eligible contestants. The bound is a point-in-time
// check at creation only; it is not re-validated by later draws.
func (s *PrizeServiceImpl) CreatePrize(ctx context.Context, sessionID primitive.ObjectID, name string, quantity int) (*models.Prize, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrEmptyPrizeName
	}
	if quantity < 1 {
		return nil, models.ErrInvalidQuantity
	}
	if _, err := s.sessionRepo.FindByID(ctx, sessionID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	eligible, err := s.contestantRepo.CountEligible(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count eligible contestants: %w", err)
	}
	if quantity > eligible {
		return nil, models.ErrQuantityExceedsEligible
	}

	prize := &models.Prize{
		SessionID: sessionID,
		Name:      name,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		return nil, fmt.Errorf("failed to create prize: %w", err)
	}
	slog.Info("Prize created", "sessionId", sessionID, "prizeId", prize.ID, "name", name, "quantity", quantity)
	return prize, nil
}

// GetPrizes lists a session's prizes with their remaining counts recomputed
// from winner rows.
func (s *PrizeServiceImpl) GetPrizes(ctx context.Context, sessionID primitive.ObjectID) ([]*models.PrizeWithRemaining, error) {
	if _, err := s.sessionRepo.FindByID(ctx, sessionID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	prizes, err := s.prizeRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}
	out := make([]*models.PrizeWithRemaining, 0, len(prizes))
	for _, p := range prizes {
		won, err := s.winnerRepo.CountByPrize(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count winners for prize %s: %w", p.ID.Hex(), err)
		}
		out = append(out, &models.PrizeWithRemaining{
			Prize:     *p,
			Remaining: p.Quantity - won,
		})
	}
	return out, nil
}

// Remaining recomputes a prize's undrawn unit count from scratch.
func (s *PrizeServiceImpl) Remaining(ctx context.Context, sessionID, prizeID primitive.ObjectID) (int, error) {
	prize, err := s.prizeRepo.FindByID(ctx, sessionID, prizeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, models.ErrPrizeNotFound
		}
		return 0, fmt.Errorf("failed to load prize: %w", err)
	}
	won, err := s.winnerRepo.CountByPrize(ctx, prizeID)
	if err != nil {
		return 0, fmt.Errorf("failed to count winners: %w", err)
	}
	return prize.Quantity - won, nil
}
