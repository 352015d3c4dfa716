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

// SessionService manages door-prize sessions.
type SessionService interface {
	CreateSession(ctx context.Context, name string) (*models.Session, error)
	GetSession(ctx context.Context, id primitive.ObjectID) (*models.Session, error)
	GetAllSessions(ctx context.Context) ([]*models.Session, error)
	DeleteSession(ctx context.Context, id primitive.ObjectID) error
	GetSessionResults(ctx context.Context, id primitive.ObjectID) (*models.SessionResults, error)
}

var _ SessionService = (*SessionServiceImpl)(nil)

// SessionServiceImpl handles session lifecycle and results
type SessionServiceImpl struct {
	sessionRepo    repositories.SessionRepository
	contestantRepo repositories.ContestantRepository
	prizeRepo      repositories.PrizeRepository
	drawRepo       repositories.DrawRepository
	winnerRepo     repositories.WinnerRepository
	txRunner       repositories.TxRunner
}

// NewSessionService creates a new SessionServiceImpl
func NewSessionService(
	sessionRepo repositories.SessionRepository,
	contestantRepo repositories.ContestantRepository,
	prizeRepo repositories.PrizeRepository,
	drawRepo repositories.DrawRepository,
	winnerRepo repositories.WinnerRepository,
	txRunner repositories.TxRunner,
) *SessionServiceImpl {
	return &SessionServiceImpl{
		sessionRepo:    sessionRepo,
		contestantRepo: contestantRepo,
		prizeRepo:      prizeRepo,
		drawRepo:       drawRepo,
		winnerRepo:     winnerRepo,
		txRunner:       txRunner,
	}
}

// CreateSession creates a new session.
func (s *SessionServiceImpl) CreateSession(ctx context.Context, name string) (*models.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrEmptySessionName
	}
	session := &models.Session{
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	slog.Info("Session created", "sessionId", session.ID, "name", name)
	return session, nil
}

// GetSession retrieves a session by ID.
func (s *SessionServiceImpl) GetSession(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to retrieve session: %w", err)
	}
	return session, nil
}

// GetAllSessions lists all sessions, newest first.
func (s *SessionServiceImpl) GetAllSessions(ctx context.Context) ([]*models.Session, error) {
	sessions, err := s.sessionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// DeleteSession deletes a session and cascades to its contestants, prizes,
// draws and winners in one transaction.
func (s *SessionServiceImpl) DeleteSession(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetSession(ctx, id); err != nil {
		return err
	}
	err := s.txRunner.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.winnerRepo.DeleteBySession(txCtx, id); err != nil {
			return err
		}
		if err := s.drawRepo.DeleteBySession(txCtx, id); err != nil {
			return err
		}
		if err := s.prizeRepo.DeleteBySession(txCtx, id); err != nil {
			return err
		}
		if err := s.contestantRepo.DeleteBySession(txCtx, id); err != nil {
			return err
		}
		return s.sessionRepo.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	slog.Info("Session deleted", "sessionId", id)
	return nil
}

// GetSessionResults assembles the payload polled by presentation screens:
// the session, its current eligible count, and all draws (newest first) with
// their winners.
func (s *SessionServiceImpl) GetSessionResults(ctx context.Context, id primitive.ObjectID) (*models.SessionResults, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	eligible, err := s.contestantRepo.CountEligible(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count eligible contestants: %w", err)
	}
	draws, err := s.drawRepo.FindBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list draws: %w", err)
	}
	results := &models.SessionResults{
		Session:       *session,
		EligibleCount: eligible,
		Draws:         make([]*models.DrawWithWinners, 0, len(draws)),
	}
	for _, draw := range draws {
		winners, err := s.winnerRepo.FindByDraw(ctx, draw.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load winners for draw %s: %w", draw.ID.Hex(), err)
		}
		results.Draws = append(results.Draws, &models.DrawWithWinners{
			Draw:    *draw,
			Winners: winners,
		})
	}
	return results, nil
}
