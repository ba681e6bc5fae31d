// Package auth implements registration, login, and the token middleware's
// user resolution.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/config"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

const minPasswordLength = 8

// UserStore is the user persistence surface the service needs.
type UserStore interface {
	InsertUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// CodeRedeemer is the slice of the access-code service used during
// registration.
type CodeRedeemer interface {
	Validate(ctx context.Context, code string) (*models.AccessCode, error)
	Redeem(ctx context.Context, code string, userID string) (*models.AccessCode, error)
}

// RegisterInput carries a signup request. AccessCode is optional; without
// one the account is a farmer.
type RegisterInput struct {
	Email      string `json:"email" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	AccessCode string `json:"access_code"`
}

// LoginResult is the issued session.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// Service implements the account lifecycle.
type Service struct {
	users  UserStore
	codes  CodeRedeemer
	cfg    config.AuthConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new auth service instance.
func NewService(users UserStore, codes CodeRedeemer, cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, codes: codes, cfg: cfg, logger: logger, now: time.Now}
}

// Register creates an account. When an access code is supplied it is
// validated up front and redeemed right after the insert, so the stored user
// carries the capability flag and the RegisteredBy link.
func (s *Service) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	if email == "" || username == "" {
		return models.User{}, fmt.Errorf("email and username are required: %w", apperrors.ErrBadRequest)
	}
	if len(input.Password) < minPasswordLength {
		return models.User{}, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, apperrors.ErrBadRequest)
	}

	if input.AccessCode != "" {
		// Check before inserting so a bad code does not leave an orphan
		// farmer account behind. Single-use is still guaranteed by the
		// conditional consume below.
		if _, err := s.codes.Validate(ctx, input.AccessCode); err != nil {
			return models.User{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.users.InsertUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	if input.AccessCode != "" {
		consumed, err := s.codes.Redeem(ctx, input.AccessCode, created.ID.Hex())
		if err != nil {
			return models.User{}, err
		}
		switch consumed.Type {
		case models.AccessCodeWorker:
			created.IsWorker = true
		case models.AccessCodeVet:
			created.IsVet = true
		}
		created.RegisteredBy = consumed.GeneratedBy
	}

	s.logger.Info("user registered",
		zap.String("user_id", created.ID.Hex()),
		zap.Bool("is_worker", created.IsWorker),
		zap.Bool("is_vet", created.IsVet))
	return created, nil
}

// Login verifies credentials, stamps the login time, and issues a token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("invalid credentials: %w", apperrors.ErrBadRequest)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, fmt.Errorf("invalid credentials: %w", apperrors.ErrBadRequest)
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID.Hex(), now); err != nil {
		s.logger.Warn("failed to stamp last login", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}
	user.LastLogin = now

	token, expiresAt, err := IssueToken(user.ID.Hex(), s.cfg)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

// ResolveActor loads the user behind a token subject and projects the
// request-scoped claims. Used by the auth middleware on every request so
// capability changes take effect immediately.
func (s *Service) ResolveActor(ctx context.Context, userID string) (models.Actor, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.Actor{}, err
	}
	return models.ActorFrom(*user), nil
}
