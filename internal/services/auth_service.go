package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prizeroom/doorprize-backend/internal/models"
	"github.com/prizeroom/doorprize-backend/internal/repositories"
	"github.com/prizeroom/doorprize-backend/pkg/jwt"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// AuthService defines the interface for organizer authentication
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Organizer, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles organizer registration and login
type AuthServiceImpl struct {
	organizerRepo repositories.OrganizerRepository
	tokenService  *jwt.TokenService
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(organizerRepo repositories.OrganizerRepository, tokenService *jwt.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		organizerRepo: organizerRepo,
		tokenService:  tokenService,
	}
}

// Register creates an organizer account with a bcrypt-hashed password.
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.Organizer, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	organizer := &models.Organizer{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}
	if err := s.organizerRepo.Create(ctx, organizer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create organizer: %w", err)
	}

	slog.Info("Organizer registered", "organizerId", organizer.ID, "email", email)
	return organizer, nil
}

// Login verifies credentials and issues a JWT.
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	organizer, err := s.organizerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load organizer: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(organizer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.Issue(organizer.ID.Hex(), organizer.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
