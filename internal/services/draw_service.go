package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prizeroom/doorprize-backend/internal/models"
	"github.com/prizeroom/doorprize-backend/internal/repositories"
	"github.com/prizeroom/doorprize-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// DrawService runs randomized winner selection for a prize within a session.
type DrawService interface {
	RunDraw(ctx context.Context, sessionID, prizeID primitive.ObjectID, quantity int) (*models.DrawResult, error)
	GetDraw(ctx context.Context, drawID primitive.ObjectID) (*models.Draw, error)
	GetDrawWinners(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error)
	GetSessionDraws(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Draw, error)
}

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl handles draw execution and lookup
type DrawServiceImpl struct {
	sessionRepo    repositories.SessionRepository
	prizeRepo      repositories.PrizeRepository
	contestantRepo repositories.ContestantRepository
	drawRepo       repositories.DrawRepository
	winnerRepo     repositories.WinnerRepository
	txRunner       repositories.TxRunner
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(
	sessionRepo repositories.SessionRepository,
	prizeRepo repositories.PrizeRepository,
	contestantRepo repositories.ContestantRepository,
	drawRepo repositories.DrawRepository,
	winnerRepo repositories.WinnerRepository,
	txRunner repositories.TxRunner,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		sessionRepo:    sessionRepo,
		prizeRepo:      prizeRepo,
		contestantRepo: contestantRepo,
		drawRepo:       drawRepo,
		winnerRepo:     winnerRepo,
		txRunner:       txRunner,
	}
}

// RunDraw executes one randomized winner assignment: it shuffles the eligible
// pool with an unbiased Fisher-Yates shuffle, takes the first quantity
// contestants, and records one Draw plus one Winner per selection in a single
// transaction. The Winner rows copy the prize name as of now.
//
// Quantity is validated against the eligible pool only, not against the
// prize's remaining undrawn units; checking remaining before invoking the
// engine is the caller's job.
//
// If a concurrent draw consumed one of the selected contestants first, the
// unique index on winners rejects the insert at commit, the whole draw rolls
// back, and ErrContestantAlreadyWon is returned. The engine never retries;
// the caller must re-read eligibility and resubmit.
func (s *DrawServiceImpl) RunDraw(ctx context.Context, sessionID, prizeID primitive.ObjectID, quantity int) (*models.DrawResult, error) {
	if quantity < 1 {
		return nil, models.ErrInvalidQuantity
	}

	if _, err := s.sessionRepo.FindByID(ctx, sessionID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	prize, err := s.prizeRepo.FindByID(ctx, sessionID, prizeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrPrizeNotFound
		}
		return nil, fmt.Errorf("failed to load prize: %w", err)
	}

	var result *models.DrawResult
	err = s.txRunner.WithTransaction(ctx, func(txCtx context.Context) error {
		// Eligibility is read inside the transaction that performs the
		// write. A concurrent draw can still race between commits; the
		// unique index on winners.contestantId settles it.
		eligible, err := s.contestantRepo.FindEligible(txCtx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to load eligible contestants: %w", err)
		}
		if quantity > len(eligible) {
			return models.ErrQuantityExceedsEligible
		}

		utils.Shuffle(eligible)
		selected := eligible[:quantity]

		now := time.Now()
		draw := &models.Draw{
			SessionID: sessionID,
			PrizeID:   prize.ID,
			CreatedAt: now,
		}
		if err := s.drawRepo.Create(txCtx, draw); err != nil {
			return fmt.Errorf("failed to create draw: %w", err)
		}

		winners := make([]*models.Winner, 0, quantity)
		for _, c := range selected {
			winners = append(winners, &models.Winner{
				SessionID:      sessionID,
				DrawID:         draw.ID,
				PrizeID:        prize.ID,
				ContestantID:   c.ID,
				ContestantName: c.Name,
				PrizeName:      prize.Name,
				CreatedAt:      now,
			})
		}
		if err := s.winnerRepo.CreateMany(txCtx, winners); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return models.ErrContestantAlreadyWon
			}
			return fmt.Errorf("failed to create winner records: %w", err)
		}

		resultWinners := make([]models.DrawWinner, 0, quantity)
		for _, w := range winners {
			resultWinners = append(resultWinners, models.DrawWinner{
				ContestantID: w.ContestantID,
				Name:         w.ContestantName,
				PrizeName:    w.PrizeName,
			})
		}
		result = &models.DrawResult{
			DrawID:            draw.ID,
			SessionID:         sessionID,
			Prize:             models.PrizeSnapshot{ID: prize.ID, Name: prize.Name},
			RequestedQuantity: quantity,
			EligibleBefore:    len(eligible),
			Winners:           resultWinners,
			CreatedAt:         now,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrContestantAlreadyWon) {
			slog.Warn("Draw lost commit race, rolled back", "sessionId", sessionID, "prizeId", prizeID)
		}
		return nil, err
	}

	slog.Info("Draw executed", "drawId", result.DrawID, "sessionId", sessionID,
		"prize", prize.Name, "winners", len(result.Winners), "eligibleBefore", result.EligibleBefore)
	return result, nil
}

// GetDraw retrieves a draw by ID.
func (s *DrawServiceImpl) GetDraw(ctx context.Context, drawID primitive.ObjectID) (*models.Draw, error) {
	draw, err := s.drawRepo.FindByID(ctx, drawID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrDrawNotFound
		}
		return nil, fmt.Errorf("failed to retrieve draw: %w", err)
	}
	return draw, nil
}

// GetDrawWinners retrieves all winners for a specific draw.
func (s *DrawServiceImpl) GetDrawWinners(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error) {
	if _, err := s.GetDraw(ctx, drawID); err != nil {
		return nil, err
	}
	winners, err := s.winnerRepo.FindByDraw(ctx, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve winners: %w", err)
	}
	return winners, nil
}

// GetSessionDraws retrieves all draws in a session, newest first.
func (s *DrawServiceImpl) GetSessionDraws(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Draw, error) {
	if _, err := s.sessionRepo.FindByID(ctx, sessionID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	draws, err := s.drawRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve draws: %w", err)
	}
	return draws, nil
}
