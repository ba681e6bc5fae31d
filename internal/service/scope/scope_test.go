package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

func TestRecordOwnersFarmerSeesTeam(t *testing.T) {
	farmer := models.Actor{ID: "farmer-1"}
	team := []string{"worker-1", "vet-1"}

	owners, err := RecordOwners(farmer, team)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"farmer-1", "worker-1", "vet-1"}, owners)
}

func TestRecordOwnersStaffSeesOnlySelf(t *testing.T) {
	worker := models.Actor{ID: "worker-1", IsWorker: true, RegisteredBy: "farmer-1"}

	owners, err := RecordOwners(worker, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"worker-1"}, owners)
}

func TestRecordOwnersUnlinkedStaffFailsClosed(t *testing.T) {
	// A worker flag without a RegisteredBy link means the code was never
	// redeemed; visibility must be denied, not defaulted open.
	worker := models.Actor{ID: "worker-1", IsWorker: true}

	_, err := RecordOwners(worker, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	vet := models.Actor{ID: "vet-1", IsVet: true}
	_, err = RecordOwners(vet, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestRecordOwnersMissingActorID(t *testing.T) {
	_, err := RecordOwners(models.Actor{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestPenOwner(t *testing.T) {
	farmer := models.Actor{ID: "farmer-1"}
	owner, err := PenOwner(farmer)
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", owner)

	worker := models.Actor{ID: "worker-1", IsWorker: true, RegisteredBy: "farmer-1"}
	owner, err = PenOwner(worker)
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", owner)

	unlinked := models.Actor{ID: "worker-2", IsWorker: true}
	_, err = PenOwner(unlinked)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCanMutatePen(t *testing.T) {
	assert.True(t, CanMutatePen(models.Actor{ID: "farmer-1"}))
	assert.False(t, CanMutatePen(models.Actor{ID: "worker-1", IsWorker: true, RegisteredBy: "farmer-1"}))
	assert.False(t, CanMutatePen(models.Actor{ID: "vet-1", IsVet: true, RegisteredBy: "farmer-1"}))
}

func TestAllows(t *testing.T) {
	farmer := models.Actor{ID: "farmer-1"}
	team := []string{"worker-1"}

	assert.True(t, Allows(farmer, team, "farmer-1"))
	assert.True(t, Allows(farmer, team, "worker-1"))
	assert.False(t, Allows(farmer, team, "stranger"))

	worker := models.Actor{ID: "worker-1", IsWorker: true, RegisteredBy: "farmer-1"}
	assert.True(t, Allows(worker, nil, "worker-1"))
	assert.False(t, Allows(worker, nil, "farmer-1"))
	assert.False(t, Allows(worker, nil, "worker-2"))
}
