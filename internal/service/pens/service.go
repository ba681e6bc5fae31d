// Package pens implements farmer-owned pen management. Staff read pens
// through their registering farmer but never mutate them.
package pens

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
	"github.com/mamadbah2/farmtrack/internal/service/scope"
)

// Store is the pen persistence surface the service needs.
type Store interface {
	InsertPen(ctx context.Context, pen models.Pen) (models.Pen, error)
	FindPenByID(ctx context.Context, id string) (*models.Pen, error)
	ListPensByOwner(ctx context.Context, ownerID string) ([]models.Pen, error)
	UpdatePen(ctx context.Context, pen models.Pen) error
	DeletePen(ctx context.Context, id string) error
}

// Service implements scoped pen CRUD.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new pen service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Create registers a new pen under the acting farmer.
func (s *Service) Create(ctx context.Context, actor models.Actor, pen models.Pen) (models.Pen, error) {
	if !scope.CanMutatePen(actor) {
		return models.Pen{}, fmt.Errorf("staff cannot manage pens: %w", apperrors.ErrForbidden)
	}

	if pen.Status == "" {
		pen.Status = models.PenActive
	}
	if err := pen.Validate(); err != nil {
		return models.Pen{}, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrBadRequest)
	}

	pen.Owner = actor.ID
	pen.CreatedAt = s.now().UTC()

	created, err := s.store.InsertPen(ctx, pen)
	if err != nil {
		return models.Pen{}, err
	}

	s.logger.Info("pen created", zap.String("pen_id", created.ID.Hex()), zap.String("owner", actor.ID))
	return created, nil
}

// List returns the pens visible to the actor: a farmer's own, or the
// registering farmer's for staff.
func (s *Service) List(ctx context.Context, actor models.Actor) ([]models.Pen, error) {
	owner, err := scope.PenOwner(actor)
	if err != nil {
		return nil, err
	}
	return s.store.ListPensByOwner(ctx, owner)
}

// Get returns one pen if it is visible to the actor.
func (s *Service) Get(ctx context.Context, actor models.Actor, id string) (*models.Pen, error) {
	pen, err := s.store.FindPenByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := scope.PenOwner(actor)
	if err != nil {
		return nil, err
	}
	if pen.Owner != owner {
		return nil, fmt.Errorf("pen belongs to another farm: %w", apperrors.ErrForbidden)
	}
	return pen, nil
}

// Update replaces the mutable fields of a farmer's own pen.
func (s *Service) Update(ctx context.Context, actor models.Actor, id string, updated models.Pen) (*models.Pen, error) {
	if !scope.CanMutatePen(actor) {
		return nil, fmt.Errorf("staff cannot manage pens: %w", apperrors.ErrForbidden)
	}

	existing, err := s.store.FindPenByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Owner != actor.ID {
		return nil, fmt.Errorf("pen belongs to another farm: %w", apperrors.ErrForbidden)
	}

	updated.ID = existing.ID
	updated.Owner = existing.Owner
	updated.CreatedAt = existing.CreatedAt
	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrBadRequest)
	}

	if err := s.store.UpdatePen(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a farmer's own pen.
func (s *Service) Delete(ctx context.Context, actor models.Actor, id string) error {
	if !scope.CanMutatePen(actor) {
		return fmt.Errorf("staff cannot manage pens: %w", apperrors.ErrForbidden)
	}

	existing, err := s.store.FindPenByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Owner != actor.ID {
		return fmt.Errorf("pen belongs to another farm: %w", apperrors.ErrForbidden)
	}

	return s.store.DeletePen(ctx, id)
}
