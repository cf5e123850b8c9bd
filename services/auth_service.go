package services

import (
	"context"
	"net/http"
	"time"

	apperrors "github.com/shoppyglobe/shoppyglobe-api/errors"
	"github.com/shoppyglobe/shoppyglobe-api/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	logger *zap.Logger
}

func NewAuthService(users UserStore, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a new user. The password is stored as a salted bcrypt
// hash, never verbatim.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation("Username and password are required")
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Registration failed", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Registration failed", err)
	}

	user := &models.User{
		Username:  username,
		Password:  string(hashedPassword),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent registrations for the same username can both pass
		// the pre-check; the unique index decides the winner.
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Registration failed", err)
	}

	s.logger.Info("user registered", zap.String("username", username))
	return user, nil
}

// Login authenticates a user and issues a token. Unknown username and wrong
// password fail identically so the response cannot be used to enumerate
// usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.Validation("Username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", apperrors.New(http.StatusInternalServerError, "Login failed", err)
	}
	if user == nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", apperrors.New(http.StatusInternalServerError, "Login failed", err)
	}
	return token, nil
}
