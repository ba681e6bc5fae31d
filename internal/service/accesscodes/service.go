// Package accesscodes implements the single-use invitation flow that binds
// staff accounts to a farmer.
package accesscodes

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
	codeTTL      = 30 * 24 * time.Hour
)

// Store is the access-code persistence surface the service needs.
type Store interface {
	InsertAccessCode(ctx context.Context, code models.AccessCode) (models.AccessCode, error)
	FindUnusedCode(ctx context.Context, code string) (*models.AccessCode, error)
	ConsumeCode(ctx context.Context, code string, userID string, now time.Time) (*models.AccessCode, error)
	ListCodesByFarmer(ctx context.Context, farmerID string) ([]models.AccessCode, error)
}

// UserStore is the slice of the user store needed to stamp redeemed
// capabilities.
type UserStore interface {
	AttachCapability(ctx context.Context, userID string, codeType models.AccessCodeType, farmerID string) error
}

// GenerateInput carries a farmer's invitation request.
type GenerateInput struct {
	IsWorker bool   `json:"is_worker"`
	IsVet    bool   `json:"is_vet"`
	Name     string `json:"name"`
}

// Service implements code generation, validation, and redemption.
type Service struct {
	store  Store
	users  UserStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new access-code service instance.
func NewService(store Store, users UserStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, users: users, logger: logger, now: time.Now}
}

// Generate issues a fresh single-use code on behalf of a farmer. Exactly one
// capability flag must be requested.
func (s *Service) Generate(ctx context.Context, actor models.Actor, input GenerateInput) (models.AccessCode, error) {
	if !actor.IsFarmer() {
		return models.AccessCode{}, fmt.Errorf("only farmers can issue access codes: %w", apperrors.ErrForbidden)
	}
	if input.IsWorker == input.IsVet {
		return models.AccessCode{}, fmt.Errorf("exactly one of worker or vet must be requested: %w", apperrors.ErrBadRequest)
	}
	if input.Name == "" {
		return models.AccessCode{}, fmt.Errorf("invitation name must not be empty: %w", apperrors.ErrBadRequest)
	}

	codeType := models.AccessCodeWorker
	if input.IsVet {
		codeType = models.AccessCodeVet
	}

	now := s.now().UTC()
	code := models.AccessCode{
		Type:        codeType,
		Name:        input.Name,
		GeneratedBy: actor.ID,
		ExpiresAt:   now.Add(codeTTL),
		CreatedAt:   now,
	}

	// The code column is unique; retry on the unlikely collision.
	for attempt := 0; attempt < 3; attempt++ {
		token, err := randomCode(codeLength)
		if err != nil {
			return models.AccessCode{}, fmt.Errorf("generate code token: %w", err)
		}
		code.Code = token

		created, err := s.store.InsertAccessCode(ctx, code)
		if err == nil {
			s.logger.Info("access code issued",
				zap.String("farmer_id", actor.ID),
				zap.String("type", string(codeType)))
			return created, nil
		}
		if !isConflict(err) {
			return models.AccessCode{}, err
		}
	}
	return models.AccessCode{}, fmt.Errorf("could not generate a unique access code")
}

// Validate checks a code without mutating it: unknown or already-used codes
// are not found, expired codes are rejected.
func (s *Service) Validate(ctx context.Context, code string) (*models.AccessCode, error) {
	found, err := s.store.FindUnusedCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if found.Expired(s.now().UTC()) {
		return nil, fmt.Errorf("access code expired at %s: %w", found.ExpiresAt.Format(time.RFC3339), apperrors.ErrBadRequest)
	}
	return found, nil
}

// Redeem consumes a code for the given user and stamps the capability flag
// plus the ownership link. The store-level consume is a single conditional
// update, so two concurrent redemptions of the same code resolve to one
// winner; the loser sees not-found.
func (s *Service) Redeem(ctx context.Context, code string, userID string) (*models.AccessCode, error) {
	now := s.now().UTC()

	// Validate first to surface the expiry error distinctly.
	if _, err := s.Validate(ctx, code); err != nil {
		return nil, err
	}

	consumed, err := s.store.ConsumeCode(ctx, code, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.users.AttachCapability(ctx, userID, consumed.Type, consumed.GeneratedBy); err != nil {
		return nil, fmt.Errorf("attach capability after redemption: %w", err)
	}

	s.logger.Info("access code redeemed",
		zap.String("user_id", userID),
		zap.String("farmer_id", consumed.GeneratedBy),
		zap.String("type", string(consumed.Type)))
	return consumed, nil
}

// List returns the codes the farmer has issued.
func (s *Service) List(ctx context.Context, actor models.Actor) ([]models.AccessCode, error) {
	if !actor.IsFarmer() {
		return nil, fmt.Errorf("only farmers can list access codes: %w", apperrors.ErrForbidden)
	}
	return s.store.ListCodesByFarmer(ctx, actor.ID)
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func isConflict(err error) bool {
	return errors.Is(err, apperrors.ErrConflict)
}
