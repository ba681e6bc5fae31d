package pens

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

type fakePenStore struct {
	pens map[string]*models.Pen
}

func newFakePenStore() *fakePenStore {
	return &fakePenStore{pens: make(map[string]*models.Pen)}
}

func (f *fakePenStore) InsertPen(_ context.Context, pen models.Pen) (models.Pen, error) {
	pen.ID = primitive.NewObjectID()
	stored := pen
	f.pens[pen.ID.Hex()] = &stored
	return pen, nil
}

func (f *fakePenStore) FindPenByID(_ context.Context, id string) (*models.Pen, error) {
	pen, exists := f.pens[id]
	if !exists {
		return nil, fmt.Errorf("find pen %s: %w", id, apperrors.ErrNotFound)
	}
	copied := *pen
	return &copied, nil
}

func (f *fakePenStore) ListPensByOwner(_ context.Context, ownerID string) ([]models.Pen, error) {
	var out []models.Pen
	for _, pen := range f.pens {
		if pen.Owner == ownerID {
			out = append(out, *pen)
		}
	}
	return out, nil
}

func (f *fakePenStore) UpdatePen(_ context.Context, pen models.Pen) error {
	stored, exists := f.pens[pen.ID.Hex()]
	if !exists {
		return fmt.Errorf("update pen: %w", apperrors.ErrNotFound)
	}
	*stored = pen
	return nil
}

func (f *fakePenStore) DeletePen(_ context.Context, id string) error {
	if _, exists := f.pens[id]; !exists {
		return fmt.Errorf("delete pen: %w", apperrors.ErrNotFound)
	}
	delete(f.pens, id)
	return nil
}

func validPen() models.Pen {
	return models.Pen{Name: "Pen A", BirdCount: 120, Type: models.PenLayers}
}

func TestCreateStampsOwnerAndDefaults(t *testing.T) {
	store := newFakePenStore()
	svc := NewService(store, nil)
	farmer := models.Actor{ID: "farmer-1"}

	created, err := svc.Create(context.Background(), farmer, validPen())
	require.NoError(t, err)

	assert.Equal(t, "farmer-1", created.Owner)
	assert.Equal(t, models.PenActive, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateForbiddenForStaff(t *testing.T) {
	svc := NewService(newFakePenStore(), nil)
	worker := models.Actor{ID: "worker-1", IsWorker: true, RegisteredBy: "farmer-1"}

	_, err := svc.Create(context.Background(), worker, validPen())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCreateRejectsInvalidBirdCount(t *testing.T) {
	svc := NewService(newFakePenStore(), nil)
	farmer := models.Actor{ID: "farmer-1"}

	pen := validPen()
	pen.BirdCount = 0
	_, err := svc.Create(context.Background(), farmer, pen)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestStaffReadsFarmersPens(t *testing.T) {
	store := newFakePenStore()
	svc := NewService(store, nil)
	farmer := models.Actor{ID: "farmer-1"}

	created, err := svc.Create(context.Background(), farmer, validPen())
	require.NoError(t, err)

	worker := models.Actor{ID: "worker-1", IsWorker: true, RegisteredBy: "farmer-1"}
	pens, err := svc.List(context.Background(), worker)
	require.NoError(t, err)
	require.Len(t, pens, 1)
	assert.Equal(t, created.ID, pens[0].ID)

	got, err := svc.Get(context.Background(), worker, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestStaffCannotMutatePens(t *testing.T) {
	store := newFakePenStore()
	svc := NewService(store, nil)
	farmer := models.Actor{ID: "farmer-1"}

	created, err := svc.Create(context.Background(), farmer, validPen())
	require.NoError(t, err)

	// Even though the worker can read this pen, mutation is farmer-only.
	worker := models.Actor{ID: "worker-1", IsWorker: true, RegisteredBy: "farmer-1"}
	_, err = svc.Update(context.Background(), worker, created.ID.Hex(), validPen())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.Delete(context.Background(), worker, created.ID.Hex())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestFarmerCannotTouchAnotherFarmersPen(t *testing.T) {
	store := newFakePenStore()
	svc := NewService(store, nil)

	created, err := svc.Create(context.Background(), models.Actor{ID: "farmer-1"}, validPen())
	require.NoError(t, err)

	other := models.Actor{ID: "farmer-2"}
	_, err = svc.Get(context.Background(), other, created.ID.Hex())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Update(context.Background(), other, created.ID.Hex(), validPen())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.Delete(context.Background(), other, created.ID.Hex())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUnlinkedStaffCannotListPens(t *testing.T) {
	svc := NewService(newFakePenStore(), nil)
	unlinked := models.Actor{ID: "worker-1", IsWorker: true}

	_, err := svc.List(context.Background(), unlinked)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
