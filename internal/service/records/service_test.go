package records

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

type fakeRecordStore struct {
	records map[string]*models.Record
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: make(map[string]*models.Record)}
}

func (f *fakeRecordStore) InsertRecord(_ context.Context, record models.Record) (models.Record, error) {
	record.ID = primitive.NewObjectID()
	stored := record
	f.records[record.ID.Hex()] = &stored
	return record, nil
}

func (f *fakeRecordStore) FindRecordByID(_ context.Context, id string) (*models.Record, error) {
	record, exists := f.records[id]
	if !exists {
		return nil, fmt.Errorf("find record %s: %w", id, apperrors.ErrNotFound)
	}
	copied := *record
	return &copied, nil
}

func (f *fakeRecordStore) ListRecordsByOwners(_ context.Context, ownerIDs []string, _, _ time.Time) ([]models.Record, error) {
	var out []models.Record
	for _, record := range f.records {
		for _, owner := range ownerIDs {
			if record.Owner == owner {
				out = append(out, *record)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRecordStore) UpdateRecord(_ context.Context, record models.Record) error {
	stored, exists := f.records[record.ID.Hex()]
	if !exists {
		return fmt.Errorf("update record: %w", apperrors.ErrNotFound)
	}
	*stored = record
	return nil
}

func (f *fakeRecordStore) DeleteRecord(_ context.Context, id string) error {
	if _, exists := f.records[id]; !exists {
		return fmt.Errorf("delete record: %w", apperrors.ErrNotFound)
	}
	delete(f.records, id)
	return nil
}

type fakeTeam map[string][]string

func (f fakeTeam) TeamMemberIDs(_ context.Context, farmerID string) ([]string, error) {
	return f[farmerID], nil
}

func feedRecord() models.Record {
	return models.Record{
		RecordType: models.RecordFeed,
		FeedType:   "layer mash",
		QuantityKg: 50,
		Price:      450000,
		Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateStampsOwner(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewService(store, fakeTeam{}, nil)
	farmer := models.Actor{ID: "farmer-1"}

	created, err := svc.Create(context.Background(), farmer, feedRecord())
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", created.Owner)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateFailsClosedForUnlinkedWorker(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewService(store, fakeTeam{}, nil)
	orphan := models.Actor{ID: "worker-1", IsWorker: true}

	_, err := svc.Create(context.Background(), orphan, feedRecord())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Empty(t, store.records)
}

func TestCreateRejectsInvalidRecord(t *testing.T) {
	svc := NewService(newFakeRecordStore(), fakeTeam{}, nil)
	farmer := models.Actor{ID: "farmer-1"}

	record := feedRecord()
	record.QuantityKg = 0
	_, err := svc.Create(context.Background(), farmer, record)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestListScopesToTeam(t *testing.T) {
	store := newFakeRecordStore()
	team := fakeTeam{"farmer-1": {"worker-1"}}
	svc := NewService(store, team, nil)

	worker := models.Actor{ID: "worker-1", IsWorker: true, RegisteredBy: "farmer-1"}
	stranger := models.Actor{ID: "farmer-2"}
	_, err := svc.Create(context.Background(), worker, feedRecord())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), stranger, feedRecord())
	require.NoError(t, err)

	records, err := svc.List(context.Background(), models.Actor{ID: "farmer-1"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "worker-1", records[0].Owner)
}

func TestFarmerEditsTeamRecord(t *testing.T) {
	store := newFakeRecordStore()
	team := fakeTeam{"farmer-1": {"worker-1"}}
	svc := NewService(store, team, nil)

	worker := models.Actor{ID: "worker-1", IsWorker: true, RegisteredBy: "farmer-1"}
	created, err := svc.Create(context.Background(), worker, feedRecord())
	require.NoError(t, err)

	updated := feedRecord()
	updated.Price = 500000
	result, err := svc.Update(context.Background(), models.Actor{ID: "farmer-1"}, created.ID.Hex(), updated)
	require.NoError(t, err)
	assert.Equal(t, float64(500000), result.Price)
	// Ownership stays with the worker who entered it.
	assert.Equal(t, "worker-1", result.Owner)
}

func TestWorkerCannotTouchFarmerRecord(t *testing.T) {
	store := newFakeRecordStore()
	team := fakeTeam{"farmer-1": {"worker-1"}}
	svc := NewService(store, team, nil)

	created, err := svc.Create(context.Background(), models.Actor{ID: "farmer-1"}, feedRecord())
	require.NoError(t, err)

	worker := models.Actor{ID: "worker-1", IsWorker: true, RegisteredBy: "farmer-1"}
	_, err = svc.Get(context.Background(), worker, created.ID.Hex())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.Delete(context.Background(), worker, created.ID.Hex())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDeleteOwnRecord(t *testing.T) {
	store := newFakeRecordStore()
	svc := NewService(store, fakeTeam{}, nil)
	farmer := models.Actor{ID: "farmer-1"}

	created, err := svc.Create(context.Background(), farmer, feedRecord())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), farmer, created.ID.Hex()))
	err = svc.Delete(context.Background(), farmer, created.ID.Hex())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
