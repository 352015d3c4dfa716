package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prizeroom/doorprize-backend/internal/models"
	"github.com/prizeroom/doorprize-backend/internal/repositories"
	"github.com/prizeroom/doorprize-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// ContestantService manages the contestant list of a session.
type ContestantService interface {
	AddContestant(ctx context.Context, sessionID primitive.ObjectID, name string) (*models.Contestant, error)
	ImportCSV(ctx context.Context, sessionID primitive.ObjectID, r io.Reader) (*models.ImportResult, error)
	GetContestants(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error)
	GetEligibleContestants(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error)
	CountEligible(ctx context.Context, sessionID primitive.ObjectID) (int, error)
}

var _ ContestantService = (*ContestantServiceImpl)(nil)

// ContestantServiceImpl handles contestant creation and import
type ContestantServiceImpl struct {
	sessionRepo    repositories.SessionRepository
	contestantRepo repositories.ContestantRepository
}

// NewContestantService creates a new ContestantServiceImpl
func NewContestantService(
	sessionRepo repositories.SessionRepository,
	contestantRepo repositories.ContestantRepository,
) *ContestantServiceImpl {
	return &ContestantServiceImpl{
		sessionRepo:    sessionRepo,
		contestantRepo: contestantRepo,
	}
}

func (s *ContestantServiceImpl) requireSession(ctx context.Context, sessionID primitive.ObjectID) error {
	if _, err := s.sessionRepo.FindByID(ctx, sessionID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ErrSessionNotFound
		}
		return fmt.Errorf("failed to load session: %w", err)
	}
	return nil
}

// AddContestant adds a single contestant. Names that differ only in case or
// surrounding whitespace from an existing contestant are rejected.
func (s *ContestantServiceImpl) AddContestant(ctx context.Context, sessionID primitive.ObjectID, name string) (*models.Contestant, error) {
	name = utils.CleanName(name)
	if name == "" {
		return nil, models.ErrEmptyContestantName
	}
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	existing, err := s.contestantRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contestants: %w", err)
	}
	key := utils.NameKey(name)
	for _, c := range existing {
		if utils.NameKey(c.Name) == key {
			return nil, models.ErrDuplicateContestant
		}
	}

	contestant := &models.Contestant{
		SessionID: sessionID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.contestantRepo.Create(ctx, contestant); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, models.ErrDuplicateContestant
		}
		return nil, fmt.Errorf("failed to create contestant: %w", err)
	}
	return contestant, nil
}

// ImportCSV imports contestants from a CSV stream. The file may carry a
// header (a "Name" column is used if present) or be a bare one-column list.
// Duplicate names, case-insensitively, within the file or against existing
// contestants are counted as skipped rather than failing the import.
func (s *ContestantServiceImpl) ImportCSV(ctx context.Context, sessionID primitive.ObjectID, r io.Reader) (*models.ImportResult, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	existing, err := s.contestantRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contestants: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[utils.NameKey(c.Name)] = true
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	result := &models.ImportResult{Errors: []string{}}
	nameIdx := 0
	now := time.Now()
	var toCreate []*models.Contestant

	for rowNum := 0; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum+1, err))
			continue
		}
		if rowNum == 0 {
			if idx := utils.FindColumnIndex(row, []string{"Name", "Contestant", "Contestant Name"}); idx != -1 {
				nameIdx = idx
				continue // header row
			}
		}
		result.TotalRows++
		if nameIdx >= len(row) {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing name column", rowNum+1))
			continue
		}
		name := utils.CleanName(row[nameIdx])
		if name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: empty name", rowNum+1))
			continue
		}
		key := utils.NameKey(name)
		if seen[key] {
			result.Skipped++
			continue
		}
		seen[key] = true
		toCreate = append(toCreate, &models.Contestant{
			SessionID: sessionID,
			Name:      name,
			CreatedAt: now,
		})
	}

	if err := s.contestantRepo.CreateMany(ctx, toCreate); err != nil {
		return nil, fmt.Errorf("failed to import contestants: %w", err)
	}
	result.Created = len(toCreate)

	slog.Info("Contestants imported", "sessionId", sessionID,
		"created", result.Created, "skipped", result.Skipped, "errors", len(result.Errors))
	return result, nil
}

// GetContestants lists all contestants in a session.
func (s *ContestantServiceImpl) GetContestants(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}
	contestants, err := s.contestantRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contestants: %w", err)
	}
	return contestants, nil
}

// GetEligibleContestants lists contestants in a session with no winner record.
func (s *ContestantServiceImpl) GetEligibleContestants(ctx context.Context, sessionID primitive.ObjectID) ([]*models.Contestant, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}
	contestants, err := s.contestantRepo.FindEligible(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible contestants: %w", err)
	}
	return contestants, nil
}

// CountEligible counts eligible contestants in a session.
func (s *ContestantServiceImpl) CountEligible(ctx context.Context, sessionID primitive.ObjectID) (int, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return 0, err
	}
	n, err := s.contestantRepo.CountEligible(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to count eligible contestants: %w", err)
	}
	return n, nil
}
