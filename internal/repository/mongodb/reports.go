package mongodb

import (
	"context"
	"fmt"

	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

// SaveDailyReport persists one farm's daily roll-up.
func (r *Repository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	if _, err := r.collection(reportsCollection).InsertOne(ctx, report); err != nil {
		return fmt.Errorf("insert daily report: %w", mapError(err))
	}
	return nil
}
