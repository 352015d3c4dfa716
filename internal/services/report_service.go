package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/prizeroom/doorprize-backend/internal/models"
	"github.com/prizeroom/doorprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportService renders winner reports for a session.
type ReportService interface {
	WinnersCSV(ctx context.Context, sessionID primitive.ObjectID) ([]byte, error)
	WinnersText(ctx context.Context, sessionID primitive.ObjectID) (string, error)
}

var _ ReportService = (*ReportServiceImpl)(nil)

// ReportServiceImpl renders winner reports from stored winner rows. Winners
// carry denormalized names, so reports stay correct after prize renames.
type ReportServiceImpl struct {
	sessionService SessionService
	winnerRepo     repositories.WinnerRepository
}

// NewReportService creates a new ReportServiceImpl
func NewReportService(sessionService SessionService, winnerRepo repositories.WinnerRepository) *ReportServiceImpl {
	return &ReportServiceImpl{
		sessionService: sessionService,
		winnerRepo:     winnerRepo,
	}
}

// sessionWinners loads a session's winners sorted by contestant name. Sorting
// is a display concern; draw order within a winner list has no meaning.
func (s *ReportServiceImpl) sessionWinners(ctx context.Context, sessionID primitive.ObjectID) (*models.Session, []*models.Winner, error) {
	session, err := s.sessionService.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	winners, err := s.winnerRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load winners: %w", err)
	}
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].ContestantName < winners[j].ContestantName
	})
	return session, winners, nil
}

// WinnersCSV renders the session's winners as CSV.
func (s *ReportServiceImpl) WinnersCSV(ctx context.Context, sessionID primitive.ObjectID) ([]byte, error) {
	_, winners, err := s.sessionWinners(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Contestant", "Prize", "Won At"}); err != nil {
		return nil, err
	}
	for _, winner := range winners {
		record := []string{
			winner.ContestantName,
			winner.PrizeName,
			winner.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WinnersText renders the session's winners as a plain-text report.
func (s *ReportServiceImpl) WinnersText(ctx context.Context, sessionID primitive.ObjectID) (string, error) {
	session, winners, err := s.sessionWinners(ctx, sessionID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Winners for %s\n", session.Name)
	if len(winners) == 0 {
		buf.WriteString("No winners yet.\n")
		return buf.String(), nil
	}
	for _, winner := range winners {
		fmt.Fprintf(&buf, "%s: %s\n", winner.ContestantName, winner.PrizeName)
	}
	return buf.String(), nil
}
