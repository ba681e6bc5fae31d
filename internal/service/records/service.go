// Package records implements scoped CRUD over feed and medicine purchase
// records.
package records

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
	"github.com/mamadbah2/farmtrack/internal/service/scope"
)

// Store is the record persistence surface the service needs.
type Store interface {
	InsertRecord(ctx context.Context, record models.Record) (models.Record, error)
	FindRecordByID(ctx context.Context, id string) (*models.Record, error)
	ListRecordsByOwners(ctx context.Context, ownerIDs []string, start, end time.Time) ([]models.Record, error)
	UpdateRecord(ctx context.Context, record models.Record) error
	DeleteRecord(ctx context.Context, id string) error
}

// Service implements scoped record CRUD.
type Service struct {
	store  Store
	team   scope.TeamDirectory
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new record service instance.
func NewService(store Store, team scope.TeamDirectory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, team: team, logger: logger, now: time.Now}
}

// Create persists a purchase record owned by the actor. Unlinked staff
// accounts fail closed before anything is written.
func (s *Service) Create(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error) {
	if _, err := scope.RecordOwners(actor, nil); err != nil {
		return models.Record{}, err
	}

	if err := record.Validate(); err != nil {
		return models.Record{}, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrBadRequest)
	}

	record.Owner = actor.ID
	record.CreatedAt = s.now().UTC()

	created, err := s.store.InsertRecord(ctx, record)
	if err != nil {
		return models.Record{}, err
	}

	s.logger.Info("record created",
		zap.String("record_id", created.ID.Hex()),
		zap.String("type", string(created.RecordType)),
		zap.String("owner", actor.ID))
	return created, nil
}

// List returns every record visible to the actor, date-ascending.
func (s *Service) List(ctx context.Context, actor models.Actor) ([]models.Record, error) {
	teamIDs, err := scope.TeamFor(ctx, s.team, actor)
	if err != nil {
		return nil, err
	}
	owners, err := scope.RecordOwners(actor, teamIDs)
	if err != nil {
		return nil, err
	}
	return s.store.ListRecordsByOwners(ctx, owners, time.Time{}, time.Time{})
}

// Get returns one record if it is visible to the actor.
func (s *Service) Get(ctx context.Context, actor models.Actor, id string) (*models.Record, error) {
	record, err := s.store.FindRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, record.Owner); err != nil {
		return nil, err
	}
	return record, nil
}

// Update replaces the mutable fields of a visible record. Farmers may edit
// team entries; staff only their own.
func (s *Service) Update(ctx context.Context, actor models.Actor, id string, updated models.Record) (*models.Record, error) {
	existing, err := s.store.FindRecordByID(ctx, id)
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

	if err := s.store.UpdateRecord(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a visible record.
func (s *Service) Delete(ctx context.Context, actor models.Actor, id string) error {
	existing, err := s.store.FindRecordByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actor, existing.Owner); err != nil {
		return err
	}
	return s.store.DeleteRecord(ctx, id)
}

func (s *Service) authorize(ctx context.Context, actor models.Actor, ownerID string) error {
	teamIDs, err := scope.TeamFor(ctx, s.team, actor)
	if err != nil {
		return err
	}
	if !scope.Allows(actor, teamIDs, ownerID) {
		return fmt.Errorf("record belongs to another farm: %w", apperrors.ErrForbidden)
	}
	return nil
}
