package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prizeroom/doorprize-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubSessionService struct {
	session *models.Session
	err     error
}

func (s *stubSessionService) CreateSession(ctx context.Context, name string) (*models.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubSessionService) GetSession(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubSessionService) GetAllSessions(ctx context.Context) ([]*models.Session, error) {
	return []*models.Session{s.session}, nil
}

func (s *stubSessionService) DeleteSession(ctx context.Context, id primitive.ObjectID) error {
	return s.err
}

func (s *stubSessionService) GetSessionResults(ctx context.Context, id primitive.ObjectID) (*models.SessionResults, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.SessionResults{Session: *s.session}, nil
}

func newSessionRouter(svc *stubSessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewSessionHandler(svc)
	router.POST("/sessions", h.CreateSession)
	router.GET("/sessions/:id", h.GetSessionByID)
	router.GET("/sessions/:id/results", h.GetSessionResults)
	return router
}

func TestCreateSessionHandler(t *testing.T) {
	session := &models.Session{ID: primitive.NewObjectID(), Name: "Meetup"}
	router := newSessionRouter(&stubSessionService{session: session})

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"name":"Meetup"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Meetup")
}

func TestCreateSessionHandler_MissingName(t *testing.T) {
	router := newSessionRouter(&stubSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSessionHandler_Statuses(t *testing.T) {
	router := newSessionRouter(&stubSessionService{err: models.ErrSessionNotFound})

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/sessions/not-hex", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSessionResultsHandler(t *testing.T) {
	session := &models.Session{ID: primitive.NewObjectID(), Name: "Meetup"}
	router := newSessionRouter(&stubSessionService{session: session})

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+session.ID.Hex()+"/results", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "eligibleCount")
}
