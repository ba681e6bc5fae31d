// Package scope implements the ownership visibility rules shared by every
// service. Each queryable entity belongs to a farm: the farmer plus the
// workers and vets that farmer registered. The functions here are pure; the
// farmer->staff adjacency is resolved once per request by the caller and
// passed in.
package scope

import (
	"fmt"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

// RecordOwners returns the set of owner ids whose records and daily logs the
// actor may read. Farmers see their own entries plus every team member's;
// staff see only their own. A staff account without a RegisteredBy link has
// not redeemed a code yet and fails closed.
func RecordOwners(actor models.Actor, teamIDs []string) ([]string, error) {
	if actor.ID == "" {
		return nil, fmt.Errorf("actor id missing: %w", apperrors.ErrForbidden)
	}

	if actor.IsFarmer() {
		owners := make([]string, 0, len(teamIDs)+1)
		owners = append(owners, actor.ID)
		owners = append(owners, teamIDs...)
		return owners, nil
	}

	if actor.RegisteredBy == "" {
		return nil, fmt.Errorf("staff account not linked to a farm: %w", apperrors.ErrForbidden)
	}
	return []string{actor.ID}, nil
}

// PenOwner returns the single owner id whose pens the actor may read. Pens
// belong to farmers only; staff read through their registering farmer.
func PenOwner(actor models.Actor) (string, error) {
	if actor.ID == "" {
		return "", fmt.Errorf("actor id missing: %w", apperrors.ErrForbidden)
	}

	if actor.IsFarmer() {
		return actor.ID, nil
	}

	if actor.RegisteredBy == "" {
		return "", fmt.Errorf("staff account not linked to a farm: %w", apperrors.ErrForbidden)
	}
	return actor.RegisteredBy, nil
}

// CanMutatePen reports whether the actor may create, update, or delete pens.
// Staff never can, regardless of the pen's owner.
func CanMutatePen(actor models.Actor) bool {
	return actor.IsFarmer()
}

// Allows reports whether an already-fetched entity with the given owner is
// visible to the actor under the record scoping rule.
func Allows(actor models.Actor, teamIDs []string, ownerID string) bool {
	owners, err := RecordOwners(actor, teamIDs)
	if err != nil {
		return false
	}
	for _, id := range owners {
		if id == ownerID {
			return true
		}
	}
	return false
}
