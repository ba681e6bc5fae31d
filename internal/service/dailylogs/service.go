// Package dailylogs implements scoped CRUD over staff field entries.
package dailylogs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
	"github.com/mamadbah2/farmtrack/internal/service/scope"
)

// Store is the daily-log persistence surface the service needs.
type Store interface {
	InsertDailyLog(ctx context.Context, log models.DailyLog) (models.DailyLog, error)
	FindDailyLogByID(ctx context.Context, id string) (*models.DailyLog, error)
	ListDailyLogsByOwners(ctx context.Context, ownerIDs []string, start, end time.Time) ([]models.DailyLog, error)
	UpdateDailyLog(ctx context.Context, log models.DailyLog) error
	DeleteDailyLog(ctx context.Context, id string) error
}

// PenStore resolves pen references so an entry cannot point at another
// farm's pen.
type PenStore interface {
	FindPenByID(ctx context.Context, id string) (*models.Pen, error)
}

// Service implements scoped daily-log CRUD.
type Service struct {
	store  Store
	pens   PenStore
	team   scope.TeamDirectory
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new daily-log service instance.
func NewService(store Store, pens PenStore, team scope.TeamDirectory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, pens: pens, team: team, logger: logger, now: time.Now}
}

// Create persists a field entry owned by the actor after validating the
// counts and the pen reference.
func (s *Service) Create(ctx context.Context, actor models.Actor, log models.DailyLog) (models.DailyLog, error) {
	if _, err := scope.RecordOwners(actor, nil); err != nil {
		return models.DailyLog{}, err
	}

	if err := log.Validate(); err != nil {
		return models.DailyLog{}, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrBadRequest)
	}

	pen, err := s.pens.FindPenByID(ctx, log.PenID)
	if err != nil {
		return models.DailyLog{}, err
	}
	visibleOwner, err := scope.PenOwner(actor)
	if err != nil {
		return models.DailyLog{}, err
	}
	if pen.Owner != visibleOwner {
		return models.DailyLog{}, fmt.Errorf("pen belongs to another farm: %w", apperrors.ErrForbidden)
	}

	log.Owner = actor.ID
	log.CreatedAt = s.now().UTC()

	created, err := s.store.InsertDailyLog(ctx, log)
	if err != nil {
		return models.DailyLog{}, err
	}

	s.logger.Info("daily log created",
		zap.String("log_id", created.ID.Hex()),
		zap.String("pen_id", created.PenID),
		zap.String("owner", actor.ID))
	return created, nil
}

// List returns every field entry visible to the actor, date-ascending.
func (s *Service) List(ctx context.Context, actor models.Actor) ([]models.DailyLog, error) {
	teamIDs, err := scope.TeamFor(ctx, s.team, actor)
	if err != nil {
		return nil, err
	}
	owners, err := scope.RecordOwners(actor, teamIDs)
	if err != nil {
		return nil, err
	}
	return s.store.ListDailyLogsByOwners(ctx, owners, time.Time{}, time.Time{})
}

// Get returns one field entry if it is visible to the actor.
func (s *Service) Get(ctx context.Context, actor models.Actor, id string) (*models.DailyLog, error) {
	log, err := s.store.FindDailyLogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, log.Owner); err != nil {
		return nil, err
	}
	return log, nil
}

// Update replaces the mutable values of a visible field entry.
func (s *Service) Update(ctx context.Context, actor models.Actor, id string, updated models.DailyLog) (*models.DailyLog, error) {
	existing, err := s.store.FindDailyLogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, existing.Owner); err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.Owner = existing.Owner
	updated.CreatedAt = existing.CreatedAt
	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrBadRequest)
	}

	if err := s.store.UpdateDailyLog(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a visible field entry.
func (s *Service) Delete(ctx context.Context, actor models.Actor, id string) error {
	existing, err := s.store.FindDailyLogByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actor, existing.Owner); err != nil {
		return err
	}
	return s.store.DeleteDailyLog(ctx, id)
}

func (s *Service) authorize(ctx context.Context, actor models.Actor, ownerID string) error {
	teamIDs, err := scope.TeamFor(ctx, s.team, actor)
	if err != nil {
		return err
	}
	if !scope.Allows(actor, teamIDs, ownerID) {
		return fmt.Errorf("daily log belongs to another farm: %w", apperrors.ErrForbidden)
	}
	return nil
}
