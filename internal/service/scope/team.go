package scope

import (
	"context"

	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

// TeamDirectory resolves the farmer->staff adjacency.
type TeamDirectory interface {
	TeamMemberIDs(ctx context.Context, farmerID string) ([]string, error)
}

// TeamFor fetches the actor's team member ids when the actor is a farmer.
// Staff actors have no team of their own, so the lookup is skipped.
func TeamFor(ctx context.Context, dir TeamDirectory, actor models.Actor) ([]string, error) {
	if !actor.IsFarmer() {
		return nil, nil
	}
	return dir.TeamMemberIDs(ctx, actor.ID)
}
