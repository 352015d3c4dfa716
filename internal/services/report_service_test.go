package services

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/prizeroom/doorprize-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newReportFixture(t *testing.T) (*memStore, *ReportServiceImpl) {
	t.Helper()
	store := newMemStore()
	sessionService := NewSessionService(
		store.sessionRepo(),
		store.contestantRepo(),
		store.prizeRepo(),
		store.drawRepo(),
		store.winnerRepo(),
		newMemTxRunner(store),
	)
	return store, NewReportService(sessionService, store.winnerRepo())
}

func seedWinner(t *testing.T, store *memStore, sessionID primitive.ObjectID, contestant, prize string) {
	t.Helper()
	require.NoError(t, store.winnerRepo().CreateMany(context.Background(), []*models.Winner{{
		SessionID:      sessionID,
		DrawID:         primitive.NewObjectID(),
		PrizeID:        primitive.NewObjectID(),
		ContestantID:   primitive.NewObjectID(),
		ContestantName: contestant,
		PrizeName:      prize,
	}}))
}

func TestWinnersCSV(t *testing.T) {
	store, svc := newReportFixture(t)
	session := store.addSession("Meetup")
	seedWinner(t, store, session.ID, "Bob", "Mug")
	seedWinner(t, store, session.ID, "Alice", "Espresso Machine")

	data, err := svc.WinnersCSV(context.Background(), session.ID)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Contestant", "Prize", "Won At"}, records[0])

	// Rows are sorted by contestant name.
	assert.Equal(t, "Alice", records[1][0])
	assert.Equal(t, "Espresso Machine", records[1][1])
	assert.Equal(t, "Bob", records[2][0])
}

func TestWinnersText(t *testing.T) {
	store, svc := newReportFixture(t)
	session := store.addSession("Meetup")
	seedWinner(t, store, session.ID, "Alice", "Mug")

	text, err := svc.WinnersText(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "Winners for Meetup")
	assert.Contains(t, text, "Alice: Mug")
}

func TestWinnersText_Empty(t *testing.T) {
	store, svc := newReportFixture(t)
	session := store.addSession("Meetup")

	text, err := svc.WinnersText(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "No winners yet.")
}

func TestWinnersCSV_SessionNotFound(t *testing.T) {
	_, svc := newReportFixture(t)
	_, err := svc.WinnersCSV(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}
